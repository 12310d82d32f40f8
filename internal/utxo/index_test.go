package utxo

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/puzzlecoin/puzzlechain/pkg/codec"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

func testConfig() Config {
	return Config{MiningReward: 500 * tx.AmountScale, TxsPerBlock: 10, Difficulty: 1}
}

func TestNewIndexStartsEmpty(t *testing.T) {
	idx := New(testConfig())
	require.Equal(t, int64(-1), idx.BlockIndex())
	require.Equal(t, tx.Amount(0), idx.Balance("alice"))
}

func TestAddAndRemoveUnspentMaintainsI1(t *testing.T) {
	idx := New(testConfig())
	oh := codec.Sum256([]byte("output-1"))
	u := Unspent{TxHash: codec.Sum256([]byte("tx-1")), OutputIndex: 0, OutputHash: oh, Amount: 1000}

	idx.AddUnspent("alice", u)
	require.True(t, idx.IsUnspent("alice", oh))
	require.Equal(t, tx.Amount(1000), idx.Balance("alice"))

	got, ok := idx.RemoveUnspent("alice", oh)
	require.True(t, ok)
	require.Equal(t, u, got)
	require.False(t, idx.IsUnspent("alice", oh))
	require.Equal(t, tx.Amount(0), idx.Balance("alice"))
}

func TestRemoveUnspentMissingReturnsFalse(t *testing.T) {
	idx := New(testConfig())
	_, ok := idx.RemoveUnspent("alice", codec.Sum256([]byte("nope")))
	require.False(t, ok)
}

func TestBalanceSumsMultipleOutputs(t *testing.T) {
	idx := New(testConfig())
	idx.AddUnspent("alice", Unspent{OutputHash: codec.Sum256([]byte("a")), Amount: 100})
	idx.AddUnspent("alice", Unspent{OutputHash: codec.Sum256([]byte("b")), Amount: 250})
	idx.AddUnspent("bob", Unspent{OutputHash: codec.Sum256([]byte("c")), Amount: 10})

	require.Equal(t, tx.Amount(350), idx.Balance("alice"))
	require.Equal(t, tx.Amount(10), idx.Balance("bob"))
	require.Equal(t, tx.Amount(360), idx.TotalUnspent())
}

func TestStoreAndLookupTx(t *testing.T) {
	idx := New(testConfig())
	txn := &tx.Tx{Outputs: []tx.Output{{Address: "a==", Amount: 5}}}
	h := codec.Sum256([]byte("whatever"))
	idx.StoreTx(h, txn)

	got, ok := idx.Tx(h)
	require.True(t, ok)
	require.Same(t, txn, got)

	idx.ForgetTx(h)
	_, ok = idx.Tx(h)
	require.False(t, ok)
}

func TestIncrementDifficulty(t *testing.T) {
	idx := New(testConfig())
	require.Equal(t, int64(1), idx.Config().Difficulty)
	idx.IncrementDifficulty()
	require.Equal(t, int64(2), idx.Config().Difficulty)
}

func TestUnspentsForOwner(t *testing.T) {
	idx := New(testConfig())
	idx.AddUnspent("alice", Unspent{OutputHash: codec.Sum256([]byte("a")), Amount: 100})
	idx.AddUnspent("alice", Unspent{OutputHash: codec.Sum256([]byte("b")), Amount: 250})

	got := idx.Unspents("alice")
	require.Len(t, got, 2)
}
