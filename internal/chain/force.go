package chain

import (
	"github.com/puzzlecoin/puzzlechain/pkg/block"
	"github.com/puzzlecoin/puzzlechain/pkg/codec"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

// ForceBlock assembles a candidate block (§4.10): up to txs_per_block
// pending transactions ordered by descending fee, a coinbase paying
// mining_reward plus their summed fees to minerAddress, and linkage to the
// current head (or the zero values, for an empty chain). The returned
// block carries no puzzle solution; the caller derives one from
// blk.Seed() and submits it back through AddBlock.
func (c *Chain) ForceBlock(minerAddress string, now int64) *block.Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	config := c.idx.Config()
	selected := c.pool.SelectForBlock(config.TxsPerBlock)

	var totalFees uint64
	txs := make([]*tx.Tx, 0, len(selected)+1)
	for _, s := range selected {
		totalFees += uint64(s.Fee)
	}

	reward := tx.Amount(uint64(config.MiningReward) + totalFees)
	coinbase := &tx.Tx{
		Inputs:    []tx.Input{{PrevTxHash: tx.CoinbasePrevTxHash}},
		Outputs:   []tx.Output{{Address: minerAddress, Amount: reward}},
		Timestamp: now,
	}
	coinbase.AssignOutputInputHashes()
	txs = append(txs, coinbase)
	for _, s := range selected {
		txs = append(txs, s.Tx)
	}

	head := c.headLocked()
	var index uint64
	prevHash := codec.Hash{}
	if head != nil {
		index = head.Index + 1
		prevHash = head.Hash()
	}

	return block.New(index, prevHash, txs, now)
}
