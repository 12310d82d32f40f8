package block

import (
	"errors"
	"fmt"

	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

// Structural validation errors.
var (
	ErrNoTransactions      = errors.New("block has no transactions")
	ErrZeroTimestamp       = errors.New("block timestamp is zero")
	ErrNoCoinbase          = errors.New("first transaction must be coinbase")
	ErrMultipleCoinbase    = errors.New("multiple coinbase transactions in block")
	ErrDuplicateBlockInput = errors.New("duplicate input across transactions in block")
)

// Validate checks block structure and internal consistency. It does not
// verify the puzzle solution or per-tx UTXO validity; those are the job of
// BlockVerifier.
func (b *Block) Validate() error {
	if b.Timestamp == 0 {
		return ErrZeroTimestamp
	}
	if len(b.Txs) == 0 {
		return ErrNoTransactions
	}
	if !isCoinbase(b.Txs[0]) {
		return ErrNoCoinbase
	}
	for i, t := range b.Txs[1:] {
		if isCoinbase(t) {
			return fmt.Errorf("tx %d: %w", i+1, ErrMultipleCoinbase)
		}
	}

	for i, t := range b.Txs {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tx %d: %w", i, err)
		}
	}

	allInputs := make(map[string]int)
	for i, t := range b.Txs {
		for _, in := range t.Inputs {
			if in.IsCoinbase() {
				continue
			}
			key := fmt.Sprintf("%s:%d", in.PrevTxHash, in.OutputIndex)
			if prevTx, exists := allInputs[key]; exists {
				return fmt.Errorf("tx %d: %w: %s also spent in tx %d", i, ErrDuplicateBlockInput, key, prevTx)
			}
			allInputs[key] = i
		}
	}

	return nil
}

func isCoinbase(t *tx.Tx) bool {
	return len(t.Inputs) == 1 && t.Inputs[0].IsCoinbase()
}
