package puzzle

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Generator produces a deterministic puzzle board from a (difficulty, seed)
// pair.
type Generator struct {
	Difficulty int64
	Seed       string
}

// NewGenerator constructs a Generator.
func NewGenerator(difficulty int64, seed string) *Generator {
	return &Generator{Difficulty: difficulty, Seed: seed}
}

// N returns the board size: the k-th composite number, where
// k = floor(log3(difficulty)), or 1 if difficulty <= 1. Only non-prime
// board sizes are used.
func (g *Generator) N() int {
	k := 1
	if g.Difficulty > 1 {
		k = int(math.Log(float64(g.Difficulty)) / math.Log(3))
	}
	return nthComposite(k)
}

// numHidden returns the number of cells hidden when generating a puzzle.
// Resolved per Open Question #1: the reference implementation computes a
// scaled value but never applies it, always hiding zero cells. This
// implementation preserves that observed behavior.
func (g *Generator) numHidden() int {
	return 0
}

// GeneratePuzzle generates the solved board and hides numHidden() cells,
// returning the puzzle board (solution cells zeroed out at hidden
// positions).
func (g *Generator) GeneratePuzzle() (*Board, error) {
	n := g.N()
	b := NewSolvedBoard(n, g.Seed)
	if err := b.HideSquares(g.numHidden()); err != nil {
		return nil, err
	}
	return b, nil
}

// Encode renders the generator parameters as "difficulty:seed" base64,
// matching the compact wire form used to hand a puzzle to an external
// miner alongside the candidate block.
func (g *Generator) Encode() string {
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%d:%s", g.Difficulty, g.Seed)))
}

// DecodeGenerator parses the "difficulty:seed" base64 wire form.
func DecodeGenerator(encoded string) (*Generator, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(string(raw), ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("puzzle: malformed generator encoding")
	}
	difficulty, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("puzzle: invalid difficulty: %w", err)
	}
	return &Generator{Difficulty: difficulty, Seed: parts[1]}, nil
}
