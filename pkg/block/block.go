// Package block defines the Block record, its canonical hashing, and
// structural validation.
package block

import (
	"github.com/puzzlecoin/puzzlechain/pkg/codec"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

// Block is the unit of consensus: an index, a link to its predecessor, its
// transactions, a timestamp, and the puzzle solution that authorizes it.
type Block struct {
	Index          uint64
	PrevHash       codec.Hash
	Txs            []*tx.Tx
	Timestamp      int64
	PuzzleSolution string // base64-of-JSON encoded solved Board

	merkleRoot     *codec.Hash
	hash           *codec.Hash
}

// New constructs a Block. Callers must have already called
// AssignOutputInputHashes on every tx.
func New(index uint64, prevHash codec.Hash, txs []*tx.Tx, timestamp int64) *Block {
	return &Block{Index: index, PrevHash: prevHash, Txs: txs, Timestamp: timestamp}
}

// MerkleRoot computes (and caches) the Merkle root over transaction hashes.
func (b *Block) MerkleRoot() codec.Hash {
	if b.merkleRoot != nil {
		return *b.merkleRoot
	}
	hashes := make([]codec.Hash, len(b.Txs))
	for i, t := range b.Txs {
		hashes[i] = t.Hash()
	}
	root := codec.MerkleRoot(hashes)
	b.merkleRoot = &root
	return root
}

// InvalidateCache clears the cached Merkle root and hash; must be called
// after mutating Txs, Index, PrevHash, Timestamp, or PuzzleSolution.
func (b *Block) InvalidateCache() {
	b.merkleRoot = nil
	b.hash = nil
}

// Seed returns the puzzle seed: a hash of the block's content excluding its
// puzzle solution, so miners can precompute it before solving.
// seed = SHA256(merkle_root || prev_hash || index || timestamp).
func (b *Block) Seed() codec.Hash {
	root := b.MerkleRoot()
	buf := make([]byte, 0, 32+32+8+8)
	buf = append(buf, root[:]...)
	buf = append(buf, b.PrevHash[:]...)
	buf = appendUint64(buf, b.Index)
	buf = appendUint64(buf, uint64(b.Timestamp))
	return codec.Sum256(buf)
}

// Hash computes (and caches) the block hash:
// SHA256(hex(SHA256(merkle_root || prev_hash || index || puzzle_solution || timestamp))).
func (b *Block) Hash() codec.Hash {
	if b.hash != nil {
		return *b.hash
	}
	root := b.MerkleRoot()
	buf := make([]byte, 0, 32+32+8+len(b.PuzzleSolution)+8)
	buf = append(buf, root[:]...)
	buf = append(buf, b.PrevHash[:]...)
	buf = appendUint64(buf, b.Index)
	buf = append(buf, []byte(b.PuzzleSolution)...)
	buf = appendUint64(buf, uint64(b.Timestamp))
	h := codec.DoubleHash(buf)
	b.hash = &h
	return h
}

// WinningAddress returns the recipient of txs[0].outputs[0], the block's
// coinbase reward, iff txs[0].inputs[0] is the coinbase input.
func (b *Block) WinningAddress() (string, bool) {
	if len(b.Txs) == 0 || !isCoinbase(b.Txs[0]) {
		return "", false
	}
	if len(b.Txs[0].Outputs) == 0 {
		return "", false
	}
	return b.Txs[0].Outputs[0].Address, true
}

func appendUint64(buf []byte, v uint64) []byte {
	var out [8]byte
	for i := 0; i < 8; i++ {
		out[7-i] = byte(v >> (8 * i))
	}
	return append(buf, out[:]...)
}
