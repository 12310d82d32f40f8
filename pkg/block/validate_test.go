package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/puzzlecoin/puzzlechain/pkg/codec"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

func validBlock() *Block {
	return New(1, codec.Hash{}, []*tx.Tx{coinbaseTx("miner==", 100, 1000)}, 1001)
}

func TestValidateAcceptsWellFormedBlock(t *testing.T) {
	require.NoError(t, validBlock().Validate())
}

func TestValidateRejectsZeroTimestamp(t *testing.T) {
	b := validBlock()
	b.Timestamp = 0
	require.ErrorIs(t, b.Validate(), ErrZeroTimestamp)
}

func TestValidateRejectsEmptyTxs(t *testing.T) {
	b := validBlock()
	b.Txs = nil
	require.ErrorIs(t, b.Validate(), ErrNoTransactions)
}

func TestValidateRejectsMissingCoinbase(t *testing.T) {
	b := validBlock()
	b.Txs = []*tx.Tx{spendTx(codec.Sum256([]byte("x")), "a==", "b==", 10, 1000)}
	require.ErrorIs(t, b.Validate(), ErrNoCoinbase)
}

func TestValidateRejectsCoinbaseNotFirst(t *testing.T) {
	b := validBlock()
	spend := spendTx(codec.Sum256([]byte("x")), "a==", "b==", 10, 1000)
	b.Txs = []*tx.Tx{spend, coinbaseTx("miner==", 100, 1001)}
	require.ErrorIs(t, b.Validate(), ErrNoCoinbase)
}

func TestValidateRejectsMultipleCoinbase(t *testing.T) {
	b := validBlock()
	b.Txs = append(b.Txs, coinbaseTx("other==", 5, 1002))
	require.ErrorIs(t, b.Validate(), ErrMultipleCoinbase)
}

func TestValidateRejectsMalformedTx(t *testing.T) {
	b := validBlock()
	b.Txs[0].Outputs = nil
	require.ErrorIs(t, b.Validate(), tx.ErrNoOutputs)
}

func TestValidateRejectsDuplicateInputAcrossTxs(t *testing.T) {
	prev := codec.Sum256([]byte("shared-prev"))
	spend1 := spendTx(prev, "a==", "b==", 10, 1000)
	spend2 := spendTx(prev, "a==", "c==", 5, 1001)

	b := New(1, codec.Hash{}, []*tx.Tx{coinbaseTx("miner==", 100, 999), spend1, spend2}, 1002)
	require.ErrorIs(t, b.Validate(), ErrDuplicateBlockInput)
}
