package tx

import (
	"errors"
	"fmt"
)

// Structural validation errors (UTXO-aware checks live in internal/txverify).
var (
	ErrNoInputs       = errors.New("transaction has no inputs")
	ErrNoOutputs      = errors.New("transaction has no outputs")
	ErrDuplicateInput = errors.New("duplicate input")
	ErrZeroOutput     = errors.New("output amount is zero")
	ErrOutputOverflow = errors.New("output amounts overflow")
	ErrMissingAddress = errors.New("input missing address")
	ErrMissingSig     = errors.New("input missing signature")
)

type inputKey struct {
	prevTxHash  string
	outputIndex uint32
}

// Validate checks structural shape only: at least one input/output, no
// duplicate inputs, non-coinbase inputs carry an address and signature,
// and outputs sum without overflow. It does not consult the UTXO index.
func (t *Tx) Validate() error {
	if len(t.Inputs) == 0 {
		return ErrNoInputs
	}
	if len(t.Outputs) == 0 {
		return ErrNoOutputs
	}

	seen := make(map[inputKey]bool, len(t.Inputs))
	for i, in := range t.Inputs {
		if in.IsCoinbase() {
			continue
		}
		key := inputKey{in.PrevTxHash, in.OutputIndex}
		if seen[key] {
			return fmt.Errorf("input %d: %w", i, ErrDuplicateInput)
		}
		seen[key] = true

		if in.Address == "" {
			return fmt.Errorf("input %d: %w", i, ErrMissingAddress)
		}
		if len(in.Signature) == 0 {
			return fmt.Errorf("input %d: %w", i, ErrMissingSig)
		}
	}

	if _, ok := t.TotalOutputValue(); !ok {
		return ErrOutputOverflow
	}
	for i, out := range t.Outputs {
		if out.Amount == 0 {
			return fmt.Errorf("output %d: %w", i, ErrZeroOutput)
		}
	}

	return nil
}
