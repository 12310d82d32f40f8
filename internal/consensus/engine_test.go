package consensus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/puzzlecoin/puzzlechain/pkg/puzzle"
)

func TestVerifySolutionAcceptsGeneratedPuzzle(t *testing.T) {
	e := NewPuzzleEngine()
	difficulty := int64(1)
	seed := "block-seed"

	board, err := puzzle.NewGenerator(difficulty, seed).GeneratePuzzle()
	require.NoError(t, err)
	encoded, err := board.Encode()
	require.NoError(t, err)

	require.NoError(t, e.VerifySolution(difficulty, seed, encoded))
}

func TestVerifySolutionRejectsWrongSeed(t *testing.T) {
	e := NewPuzzleEngine()
	difficulty := int64(1)

	board, err := puzzle.NewGenerator(difficulty, "seed-a").GeneratePuzzle()
	require.NoError(t, err)
	encoded, err := board.Encode()
	require.NoError(t, err)

	err = e.VerifySolution(difficulty, "seed-b", encoded)
	require.Error(t, err)
}

func TestVerifySolutionRejectsMalformedSolution(t *testing.T) {
	e := NewPuzzleEngine()
	err := e.VerifySolution(1, "seed", "not-valid-base64-json!!")
	require.Error(t, err)
}
