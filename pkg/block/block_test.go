package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/puzzlecoin/puzzlechain/pkg/codec"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

func coinbaseTx(address string, amount tx.Amount, ts int64) *tx.Tx {
	t := &tx.Tx{
		Inputs:    []tx.Input{{PrevTxHash: tx.CoinbasePrevTxHash}},
		Outputs:   []tx.Output{{Address: address, Amount: amount}},
		Timestamp: ts,
	}
	t.AssignOutputInputHashes()
	return t
}

func spendTx(prevHash codec.Hash, from, to string, amount tx.Amount, ts int64) *tx.Tx {
	t := &tx.Tx{
		Inputs: []tx.Input{{
			PrevTxHash: prevHash.String(),
			Address:    from,
			Signature:  []byte("sig"),
		}},
		Outputs:   []tx.Output{{Address: to, Amount: amount}},
		Timestamp: ts,
	}
	t.AssignOutputInputHashes()
	return t
}

func TestMerkleRootCachedAndStable(t *testing.T) {
	b := New(1, codec.Hash{}, []*tx.Tx{coinbaseTx("miner==", 100, 1000)}, 1001)
	r1 := b.MerkleRoot()
	r2 := b.MerkleRoot()
	require.Equal(t, r1, r2)
}

func TestInvalidateCacheRecomputesAfterMutation(t *testing.T) {
	b := New(1, codec.Hash{}, []*tx.Tx{coinbaseTx("miner==", 100, 1000)}, 1001)
	r1 := b.MerkleRoot()
	h1 := b.Hash()

	b.Txs = append(b.Txs, coinbaseTx("other==", 5, 1002))
	b.InvalidateCache()

	r2 := b.MerkleRoot()
	h2 := b.Hash()
	require.NotEqual(t, r1, r2)
	require.NotEqual(t, h1, h2)
}

func TestSeedIndependentOfPuzzleSolution(t *testing.T) {
	b1 := New(1, codec.Hash{}, []*tx.Tx{coinbaseTx("miner==", 100, 1000)}, 1001)
	b2 := New(1, codec.Hash{}, []*tx.Tx{coinbaseTx("miner==", 100, 1000)}, 1001)
	b2.PuzzleSolution = "some-solved-board-base64"

	require.Equal(t, b1.Seed(), b2.Seed())
	require.NotEqual(t, b1.Hash(), b2.Hash())
}

func TestWinningAddressFromCoinbase(t *testing.T) {
	b := New(1, codec.Hash{}, []*tx.Tx{coinbaseTx("miner==", 100, 1000)}, 1001)
	addr, ok := b.WinningAddress()
	require.True(t, ok)
	require.Equal(t, "miner==", addr)
}

func TestWinningAddressFalseWithoutCoinbase(t *testing.T) {
	b := New(1, codec.Hash{}, []*tx.Tx{spendTx(codec.Sum256([]byte("x")), "a==", "b==", 10, 1000)}, 1001)
	_, ok := b.WinningAddress()
	require.False(t, ok)
}
