package chain

import (
	"github.com/puzzlecoin/puzzlechain/internal/utxo"
	"github.com/puzzlecoin/puzzlechain/pkg/block"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

// rolloverBlock applies an accepted block to the UTXO index and mempool
// (§4.8): confirmed transactions leave the mempool, their outputs become
// spendable, and the inputs they consumed stop being spendable. Difficulty
// rises by one per rolled-over block; rollbackBlock does not lower it, so
// after a reorg it has advanced further than block_index.
func (c *Chain) rolloverBlock(blk *block.Block) {
	c.blocks = append(c.blocks, blk)
	c.idx.SetBlockIndex(int64(blk.Index))
	c.idx.IncrementDifficulty()

	for _, t := range blk.Txs {
		txHash := t.Hash()
		c.pool.Remove(txHash)
		c.idx.StoreTx(txHash, t)

		for _, out := range t.Outputs {
			c.idx.AddUnspent(out.Address, utxo.Unspent{
				TxHash:      txHash,
				OutputIndex: out.Index,
				OutputHash:  out.Hash(),
				Amount:      out.Amount,
			})
		}
		for _, in := range t.Inputs {
			if in.IsCoinbase() {
				continue
			}
			removeSpentInput(c.idx, in)
		}
	}

	if c.observer.OnNewBlock != nil {
		c.observer.OnNewBlock(blk)
	}
}

// rollbackBlock reverses rolloverBlock for the current head (§4.9): pops
// the head, unwinds its UTXO effects, and re-queues its non-coinbase
// transactions in the mempool with their recomputed fee. The coinbase is
// never re-queued — it isn't a pending wallet transaction, it's the reward
// for a block that no longer exists.
func (c *Chain) rollbackBlock() {
	head := c.headLocked()
	if head == nil {
		return
	}
	c.blocks = c.blocks[:len(c.blocks)-1]
	c.idx.SetBlockIndex(c.idx.BlockIndex() - 1)

	for i, t := range head.Txs {
		for _, out := range t.Outputs {
			c.idx.RemoveUnspent(out.Address, out.Hash())
		}

		if i == 0 {
			continue
		}

		var removedOut, restoredIn uint64
		for _, out := range t.Outputs {
			removedOut += uint64(out.Amount)
		}
		for _, in := range t.Inputs {
			if in.IsCoinbase() {
				continue
			}
			restoredIn += uint64(restoreSpentInput(c.idx, in))
		}
		fee := tx.Amount(restoredIn - removedOut)
		c.pool.Reinsert(t, fee)
	}

	if c.observer.OnPrevBlock != nil {
		c.observer.OnPrevBlock(head)
	}
}

// removeSpentInput looks up the output a non-coinbase input consumed and
// removes it from the unspent index.
func removeSpentInput(idx *utxo.Index, in tx.Input) {
	prevHash, err := parseTxHash(in.PrevTxHash)
	if err != nil {
		return
	}
	prevTx, ok := idx.Tx(prevHash)
	if !ok || int(in.OutputIndex) >= len(prevTx.Outputs) {
		return
	}
	out := prevTx.Outputs[in.OutputIndex]
	idx.RemoveUnspent(out.Address, out.Hash())
}

// restoreSpentInput reverses removeSpentInput, re-adding the output an
// input had consumed, and returns its amount for fee recomputation.
func restoreSpentInput(idx *utxo.Index, in tx.Input) tx.Amount {
	prevHash, err := parseTxHash(in.PrevTxHash)
	if err != nil {
		return 0
	}
	prevTx, ok := idx.Tx(prevHash)
	if !ok || int(in.OutputIndex) >= len(prevTx.Outputs) {
		return 0
	}
	out := prevTx.Outputs[in.OutputIndex]
	idx.AddUnspent(out.Address, utxo.Unspent{
		TxHash:      prevHash,
		OutputIndex: in.OutputIndex,
		OutputHash:  out.Hash(),
		Amount:      out.Amount,
	})
	return out.Amount
}
