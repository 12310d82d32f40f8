package block

import "github.com/puzzlecoin/puzzlechain/pkg/codec"

// ComputeMerkleRoot calculates the merkle root of transaction hashes.
func ComputeMerkleRoot(txHashes []codec.Hash) codec.Hash {
	return codec.MerkleRoot(txHashes)
}
