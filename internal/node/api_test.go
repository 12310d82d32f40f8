package node

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/puzzlecoin/puzzlechain/internal/blockverify"
	"github.com/puzzlecoin/puzzlechain/internal/chain"
	"github.com/puzzlecoin/puzzlechain/internal/consensus"
	"github.com/puzzlecoin/puzzlechain/internal/mempool"
	"github.com/puzzlecoin/puzzlechain/internal/txverify"
	"github.com/puzzlecoin/puzzlechain/internal/utxo"
	"github.com/puzzlecoin/puzzlechain/pkg/address"
	"github.com/puzzlecoin/puzzlechain/pkg/puzzle"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

func newAPI(config utxo.Config) *API {
	idx := utxo.New(config)
	tv := txverify.New()
	pool := mempool.New(tv)
	bv := blockverify.New(consensus.NewPuzzleEngine(), tv)
	c := chain.New(idx, pool, bv, chain.Observer{})
	return New(c, idx, pool)
}

func TestGetStatusEmptyChain(t *testing.T) {
	api := newAPI(utxo.Config{MiningReward: 500, TxsPerBlock: 10, Difficulty: 1})
	status := api.GetStatus()
	require.True(t, status.Empty)
	require.Nil(t, api.GetHead())
}

func TestForceBlockSolveAndSubmitAcceptsBlock(t *testing.T) {
	api := newAPI(utxo.Config{MiningReward: 500, TxsPerBlock: 10, Difficulty: 1})
	alicePriv, err := address.GenerateKey()
	require.NoError(t, err)
	alice := alicePriv.PublicKey().Base64()

	candidate, puzzleBytes := api.ForceBlock(alice)
	require.NotEmpty(t, puzzleBytes)

	gen, err := puzzle.DecodeGenerator(puzzleBytes)
	require.NoError(t, err)
	board, err := gen.GeneratePuzzle()
	require.NoError(t, err)
	solutionEncoded, err := board.Encode()
	require.NoError(t, err)

	result := api.SubmitSolution(candidate, solutionEncoded)
	require.True(t, result.Accepted)
	require.Equal(t, tx.Amount(500), api.GetUserBalance(alice))

	status := api.GetStatus()
	require.False(t, status.Empty)
	require.Equal(t, uint64(0), status.BlockIndex)
}

func TestAddTxRejectsInputWithUnknownPrevTx(t *testing.T) {
	api := newAPI(utxo.Config{MiningReward: 500, TxsPerBlock: 10, Difficulty: 1})
	bogus := &tx.Tx{
		Inputs: []tx.Input{{
			PrevTxHash: "deadbeef",
			Address:    "bad==",
			Signature:  []byte("sig"),
		}},
		Outputs:   []tx.Output{{Address: "dst==", Amount: 1}},
		Timestamp: 1000,
	}
	bogus.AssignOutputInputHashes()

	result := api.AddTx(bogus)
	require.False(t, result.Accepted)
	require.NotEmpty(t, result.Reason)
}
