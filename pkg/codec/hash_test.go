package codec

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoubleHashReencodesHexBetweenStages(t *testing.T) {
	data := []byte("hello")
	first := sha256.Sum256(data)
	want := sha256.Sum256([]byte(hex.EncodeToString(first[:])))
	require.Equal(t, Hash(want), DoubleHash(data))
}

func TestDoubleHashIsNotRawDoubleHash(t *testing.T) {
	data := []byte("hello")
	first := sha256.Sum256(data)
	rawDouble := sha256.Sum256(first[:])
	require.NotEqual(t, Hash(rawDouble), DoubleHash(data))
}

func TestMerkleRootSingleAndEmpty(t *testing.T) {
	require.Equal(t, Hash{}, MerkleRoot(nil))
	h := Sum256([]byte("a"))
	require.Equal(t, h, MerkleRoot([]Hash{h}))
}

func TestMerkleRootOddCountDuplicatesLast(t *testing.T) {
	a, b, c := Sum256([]byte("a")), Sum256([]byte("b")), Sum256([]byte("c"))
	got := MerkleRoot([]Hash{a, b, c})
	want := MerkleRoot([]Hash{a, b, c, c})
	require.Equal(t, want, got)
}
