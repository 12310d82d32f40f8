// Package blockverify orchestrates the checks a candidate block must pass
// before Chain will append it: puzzle solution, per-transaction validity,
// reward accounting, and linkage to the current head.
package blockverify

import (
	"github.com/puzzlecoin/puzzlechain/internal/consensus"
	"github.com/puzzlecoin/puzzlechain/internal/utxo"
	"github.com/puzzlecoin/puzzlechain/pkg/block"
	"github.com/puzzlecoin/puzzlechain/pkg/chainerr"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

// TxVerifier validates a single transaction against a UTXO index snapshot.
// Satisfied by *internal/txverify.Verifier.
type TxVerifier interface {
	VerifyTx(t *tx.Tx, idx *utxo.Index) (tx.Amount, error)
}

// Verifier is the BlockVerifier of §4.6.
type Verifier struct {
	engine     consensus.Engine
	txVerifier TxVerifier
}

// New constructs a Verifier.
func New(engine consensus.Engine, txVerifier TxVerifier) *Verifier {
	return &Verifier{engine: engine, txVerifier: txVerifier}
}

// Verify checks blk against idx and, if head is non-nil, against head's
// linkage. A *chainerr.Error with Code == BlockOutOfChain is recoverable:
// the caller (Chain) should route it to fork resolution rather than reject
// outright.
func (v *Verifier) Verify(head *block.Block, blk *block.Block, idx *utxo.Index) error {
	if err := blk.Validate(); err != nil {
		return chainerr.Wrap(chainerr.MalformedRecord, "block structure", err)
	}

	config := idx.Config()
	if err := v.engine.VerifySolution(config.Difficulty, blk.Seed().String(), blk.PuzzleSolution); err != nil {
		return chainerr.Wrap(chainerr.InvalidPuzzle, "puzzle solution", err)
	}

	totalBlockReward := uint64(config.MiningReward)
	for _, t := range blk.Txs[1:] {
		fee, err := v.txVerifier.VerifyTx(t, idx)
		if err != nil {
			return err
		}
		totalBlockReward += uint64(fee)
	}

	totalRewardOut, ok := blk.Txs[0].TotalOutputValue()
	if !ok {
		return chainerr.New(chainerr.MalformedRecord, "coinbase output amounts overflow")
	}
	if uint64(totalRewardOut) != totalBlockReward {
		return chainerr.Newf(chainerr.BadReward, "coinbase pays %d, expected %d", totalRewardOut, totalBlockReward)
	}

	if head != nil {
		if head.Index >= blk.Index {
			return chainerr.OutOfChain(chainerr.WrongIndex, "block index does not advance the chain")
		}
		if head.Hash() != blk.PrevHash {
			return chainerr.OutOfChain(chainerr.WrongPrev, "block does not link to current head")
		}
		if head.Timestamp > blk.Timestamp {
			return chainerr.OutOfChain(chainerr.BlockFromPast, "block timestamp precedes head")
		}
	}

	return nil
}
