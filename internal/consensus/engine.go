// Package consensus defines the pluggable proof-of-puzzle verification
// engine consulted by BlockVerifier.
package consensus

import (
	"errors"

	"github.com/puzzlecoin/puzzlechain/pkg/puzzle"
)

// ErrInvalidSolution is returned when a submitted board does not solve the
// puzzle derived from a block's seed.
var ErrInvalidSolution = errors.New("consensus: puzzle solution does not match seed")

// Engine verifies that a submitted, encoded board solves the puzzle
// generated from (difficulty, seed).
type Engine interface {
	VerifySolution(difficulty int64, seed string, solutionEncoded string) error
}

// PuzzleEngine is the default Engine, backed by the deterministic Sudoku
// generator in pkg/puzzle.
type PuzzleEngine struct{}

// NewPuzzleEngine constructs the default Engine.
func NewPuzzleEngine() *PuzzleEngine {
	return &PuzzleEngine{}
}

// VerifySolution regenerates the puzzle for (difficulty, seed) and checks
// that solutionEncoded is a valid completion of it.
func (e *PuzzleEngine) VerifySolution(difficulty int64, seed string, solutionEncoded string) error {
	want, err := puzzle.NewGenerator(difficulty, seed).GeneratePuzzle()
	if err != nil {
		return err
	}
	got, err := puzzle.DecodeBoard(solutionEncoded)
	if err != nil {
		return err
	}
	if !want.IsValidSolution(got) {
		return ErrInvalidSolution
	}
	return nil
}
