package puzzle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSolvedBoardIsValidAndSolved(t *testing.T) {
	b := NewSolvedBoard(9, "seed-one")
	require.True(t, b.Valid())
	require.True(t, b.Solved())
}

func TestGenerateSolvedBoardIsDeterministic(t *testing.T) {
	b1 := NewSolvedBoard(9, "same-seed")
	b2 := NewSolvedBoard(9, "same-seed")
	require.Equal(t, b1.Cells, b2.Cells)
}

func TestDifferentSeedsProduceDifferentBoards(t *testing.T) {
	b1 := NewSolvedBoard(9, "seed-a")
	b2 := NewSolvedBoard(9, "seed-b")
	require.NotEqual(t, b1.Cells, b2.Cells)
}

func TestBoxSizeNonSquareN(t *testing.T) {
	r, c := boxSize(8)
	require.Equal(t, 8, r*c)
	require.LessOrEqual(t, r*r, 8)
}

func TestIsValidSolutionAgreesOnNonHiddenCells(t *testing.T) {
	puzzle := NewSolvedBoard(9, "puzzle-seed")
	solution := &Board{N: puzzle.N, Seed: puzzle.Seed, Cells: deepCopy(puzzle.Cells)}
	require.True(t, puzzle.IsValidSolution(solution))
}

func TestIsValidSolutionRejectsMismatch(t *testing.T) {
	puzzle := NewSolvedBoard(9, "puzzle-seed-2")
	solution := &Board{N: puzzle.N, Seed: puzzle.Seed, Cells: deepCopy(puzzle.Cells)}
	solution.Cells[0][0] = solution.Cells[0][0]%9 + 1
	require.False(t, puzzle.IsValidSolution(solution))
}

func TestIsValidSolutionRejectsUnsolvedCandidate(t *testing.T) {
	puzzle := NewSolvedBoard(9, "seed-partial")
	candidate := &Board{N: puzzle.N, Seed: puzzle.Seed, Cells: deepCopy(puzzle.Cells)}
	candidate.Cells[0][0] = 0
	require.False(t, puzzle.IsValidSolution(candidate))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := NewSolvedBoard(9, "round-trip")
	encoded, err := b.Encode()
	require.NoError(t, err)
	decoded, err := DecodeBoard(encoded)
	require.NoError(t, err)
	require.Equal(t, b.N, decoded.N)
	require.Equal(t, b.Seed, decoded.Seed)
	require.Equal(t, b.Cells, decoded.Cells)
}

func TestHideSquaresRejectsTooMany(t *testing.T) {
	b := NewSolvedBoard(4, "small")
	err := b.HideSquares(17)
	require.ErrorIs(t, err, ErrTooManyHidden)
}

func deepCopy(cells [][]int) [][]int {
	out := make([][]int, len(cells))
	for i, row := range cells {
		out[i] = append([]int(nil), row...)
	}
	return out
}
