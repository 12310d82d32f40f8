// Package tx defines the Input, Output, and Tx records and their canonical
// hashing rules.
package tx

import (
	"encoding/base64"
	"encoding/binary"

	"github.com/puzzlecoin/puzzlechain/pkg/codec"
)

// CoinbasePrevTxHash is the sentinel prev_tx_hash value marking a coinbase
// input.
const CoinbasePrevTxHash = "COINBASE"

// AmountScale is the fixed-point scale for Amount: 1 coin = AmountScale
// units (Open Question #2).
const AmountScale = 10_000_000

// Amount is a fixed-point integer amount at AmountScale.
type Amount uint64

// Input references a previous output it spends (or is the block's coinbase
// mint) and carries the signature authorizing the spend.
type Input struct {
	PrevTxHash  string // hex tx hash, or CoinbasePrevTxHash
	OutputIndex uint32
	Address     string // base64-encoded public key (Open Question #4)
	Index       uint32 // always 0 in practice; kept for wire compatibility
	Signature   []byte // raw 64-byte r||s ECDSA signature, base64 on the wire
}

// IsCoinbase reports whether this input mints the block reward rather than
// spending a prior output.
func (in Input) IsCoinbase() bool {
	return in.PrevTxHash == CoinbasePrevTxHash
}

// SigningMessage builds prev_tx_hash || output_index || address || index,
// the exact message an input's signature covers.
func (in Input) SigningMessage() []byte {
	buf := make([]byte, 0, len(in.PrevTxHash)+4+len(in.Address)+4)
	buf = append(buf, []byte(in.PrevTxHash)...)
	buf = appendUint32(buf, in.OutputIndex)
	buf = append(buf, []byte(in.Address)...)
	buf = appendUint32(buf, in.Index)
	return buf
}

func (in Input) serialized() []byte {
	buf := make([]byte, 0, len(in.PrevTxHash)+4+len(in.Address)+len(in.Signature)+4)
	buf = append(buf, []byte(in.PrevTxHash)...)
	buf = appendUint32(buf, in.OutputIndex)
	buf = append(buf, []byte(in.Address)...)
	buf = append(buf, in.Signature...)
	buf = appendUint32(buf, in.Index)
	return buf
}

// Hash computes the input hash: a double-hash over
// prev_tx_hash || output_index || address || signature || index.
func (in Input) Hash() codec.Hash {
	return codec.DoubleHash(in.serialized())
}

// Output pays an amount to an address (base64 public key). InputHash is
// back-filled from the enclosing transaction so that otherwise-identical
// coinbase outputs differ across blocks.
type Output struct {
	Address   string
	Amount    Amount
	Index     uint32
	InputHash codec.Hash
}

// Hash computes the output hash: a double-hash over
// amount || index || address || input_hash.
func (o Output) Hash() codec.Hash {
	buf := make([]byte, 0, 8+4+len(o.Address)+32)
	buf = appendUint64(buf, uint64(o.Amount))
	buf = appendUint32(buf, o.Index)
	buf = append(buf, []byte(o.Address)...)
	buf = append(buf, o.InputHash[:]...)
	return codec.DoubleHash(buf)
}

// Tx is an ordered list of inputs and outputs confirmed (or pending) at a
// given timestamp.
type Tx struct {
	Inputs    []Input
	Outputs   []Output
	Timestamp int64
}

// AssignOutputInputHashes computes the shared input_hash back-filled into
// every output (spec §3 Tx: "input_hash for outputs = SHA256(hex-digest-
// of-serialized-inputs || timestamp)") and stores it on each output. Must
// be called before Output.Hash()/Tx.Hash() are relied upon.
func (t *Tx) AssignOutputInputHashes() {
	h := t.outputsInputHash()
	for i := range t.Outputs {
		t.Outputs[i].InputHash = h
		t.Outputs[i].Index = uint32(i)
	}
}

func (t *Tx) outputsInputHash() codec.Hash {
	var serialized []byte
	for _, in := range t.Inputs {
		serialized = append(serialized, in.serialized()...)
	}
	digest := codec.Sum256(serialized)
	preimage := append([]byte(digest.String()), timestampBytes(t.Timestamp)...)
	return codec.Sum256(preimage)
}

// Hash computes tx.hash: a double-hash over the list of input hashes, the
// list of (amount, address, index) output tuples, and the timestamp.
func (t *Tx) Hash() codec.Hash {
	var buf []byte
	for _, in := range t.Inputs {
		h := in.Hash()
		buf = append(buf, h[:]...)
	}
	for _, out := range t.Outputs {
		buf = appendUint64(buf, uint64(out.Amount))
		buf = append(buf, []byte(out.Address)...)
		buf = appendUint32(buf, out.Index)
	}
	buf = append(buf, timestampBytes(t.Timestamp)...)
	return codec.DoubleHash(buf)
}

// TotalOutputValue sums all output amounts, rejecting overflow.
func (t *Tx) TotalOutputValue() (Amount, bool) {
	var total uint64
	for _, o := range t.Outputs {
		next := total + uint64(o.Amount)
		if next < total {
			return 0, false
		}
		total = next
	}
	return Amount(total), true
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func appendUint64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

func timestampBytes(ts int64) []byte {
	return appendUint64(nil, uint64(ts))
}

// EncodeSignature renders a raw signature as base64 for the wire format.
func EncodeSignature(sig []byte) string {
	return base64.StdEncoding.EncodeToString(sig)
}

// DecodeSignature parses a base64 wire signature.
func DecodeSignature(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
