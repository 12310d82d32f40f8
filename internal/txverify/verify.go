// Package txverify validates a transaction against a UTXO index snapshot:
// signature checks, double-spend detection, and balance accounting.
package txverify

import (
	"github.com/puzzlecoin/puzzlechain/internal/utxo"
	"github.com/puzzlecoin/puzzlechain/pkg/address"
	"github.com/puzzlecoin/puzzlechain/pkg/chainerr"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

// Verifier checks transactions against a UTXO index. It carries no state of
// its own; every call is a pure function of (t, idx).
type Verifier struct{}

// New constructs a Verifier.
func New() *Verifier {
	return &Verifier{}
}

// VerifyTx validates t against idx and returns the fee it pays
// (total_in - total_out). Per §4.5: a coinbase input at position 0 credits
// the configured mining reward without further checks; every other input
// must reference an unspent, correctly-signed prior output.
func (v *Verifier) VerifyTx(t *tx.Tx, idx *utxo.Index) (tx.Amount, error) {
	var totalIn uint64

	for i, in := range t.Inputs {
		if i == 0 && in.IsCoinbase() {
			totalIn += uint64(idx.Config().MiningReward)
			continue
		}

		prevHash, err := parseTxHash(in.PrevTxHash)
		if err != nil {
			return 0, chainerr.Wrap(chainerr.MalformedRecord, "input prev_tx_hash", err)
		}
		prevTx, ok := idx.Tx(prevHash)
		if !ok || int(in.OutputIndex) >= len(prevTx.Outputs) {
			return 0, chainerr.Newf(chainerr.OutputNotFound, "tx %s output %d", in.PrevTxHash, in.OutputIndex)
		}
		output := prevTx.Outputs[in.OutputIndex]
		outputHash := output.Hash()

		if !idx.IsUnspent(output.Address, outputHash) {
			return 0, chainerr.Newf(chainerr.DoubleSpend, "tx %s output %d already spent", in.PrevTxHash, in.OutputIndex)
		}

		pub, err := address.PublicKeyFromBase64(output.Address)
		if err != nil {
			return 0, chainerr.Wrap(chainerr.BadSignature, "malformed pubkey in output address", err)
		}
		msg := in.SigningMessage()
		if !address.Verify(msg, in.Signature, pub) {
			return 0, chainerr.Newf(chainerr.BadSignature, "input %d", i)
		}

		totalIn += uint64(output.Amount)
	}

	totalOut, ok := t.TotalOutputValue()
	if !ok {
		return 0, chainerr.New(chainerr.MalformedRecord, "output amounts overflow")
	}
	if totalIn < uint64(totalOut) {
		return 0, chainerr.Newf(chainerr.InsufficientFunds, "in=%d out=%d", totalIn, totalOut)
	}

	return tx.Amount(totalIn - uint64(totalOut)), nil
}
