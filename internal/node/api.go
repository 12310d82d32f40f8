// Package node implements the NodeAPI façade of spec §6: the method
// surface an external transport layer (HTTP, WebSocket, CLI — all out of
// scope here) dispatches onto. A single mutex serializes every mutating
// call; queries take it too, since the underlying chain/utxo/mempool types
// already guard their own state and a consistent read across them needs
// the same lock.
package node

import (
	"sync"
	"time"

	"github.com/puzzlecoin/puzzlechain/internal/chain"
	"github.com/puzzlecoin/puzzlechain/internal/mempool"
	"github.com/puzzlecoin/puzzlechain/internal/utxo"
	"github.com/puzzlecoin/puzzlechain/pkg/block"
	"github.com/puzzlecoin/puzzlechain/pkg/puzzle"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

// API is the node's external surface, wiring Chain, the UTXO index, and
// the mempool behind the operations spec.md §6 names.
type API struct {
	mu sync.Mutex

	chain *chain.Chain
	idx   *utxo.Index
	pool  *mempool.Pool
}

// New constructs an API over an already-wired Chain/Index/Pool.
func New(c *chain.Chain, idx *utxo.Index, pool *mempool.Pool) *API {
	return &API{chain: c, idx: idx, pool: pool}
}

// AddTxResult is the result envelope of AddTx.
type AddTxResult struct {
	Accepted bool
	Reason   string
}

// AddTx validates and, if accepted, queues a transaction (§4.11).
func (a *API) AddTx(t *tx.Tx) AddTxResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.pool.Add(t, a.idx); err != nil {
		return AddTxResult{Accepted: false, Reason: err.Error()}
	}
	return AddTxResult{Accepted: true}
}

// AddBlockResult is the result envelope of AddBlock.
type AddBlockResult struct {
	Accepted bool
	Reorg    bool
	Reason   string
}

// AddBlock runs a fully-formed block through Chain.AddBlock (§4.7).
func (a *API) AddBlock(blk *block.Block) AddBlockResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	result, err := a.chain.AddBlock(blk)
	if err != nil {
		return AddBlockResult{Reason: err.Error()}
	}
	return AddBlockResult{Accepted: result.Accepted, Reorg: result.Reorg}
}

// ForceBlock assembles a candidate block for minerAddress and the puzzle
// bytes (§4.10) the caller must solve before calling SubmitSolution.
// Encoding is the base64 "difficulty:seed" wire form of pkg/puzzle.
func (a *API) ForceBlock(minerAddress string) (*block.Block, string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	candidate := a.chain.ForceBlock(minerAddress, time.Now().Unix())
	gen := puzzle.NewGenerator(a.idx.Config().Difficulty, candidate.Seed().String())
	return candidate, gen.Encode()
}

// SubmitSolution attaches a solved puzzle to a previously-assembled
// candidate and submits it through AddBlock.
func (a *API) SubmitSolution(candidate *block.Block, solutionEncoded string) AddBlockResult {
	candidate.PuzzleSolution = solutionEncoded
	candidate.InvalidateCache()
	return a.AddBlock(candidate)
}

// GetChain returns canonical blocks from index fromIndex onward, up to
// limit (0 means no limit), plus any buffered fork blocks if fewer than
// limit canonical blocks were returned.
func (a *API) GetChain(fromIndex uint64, limit int) []*block.Block {
	return a.chain.Blocks(fromIndex, limit)
}

// GetHead returns the current tip, or nil on an empty chain.
func (a *API) GetHead() *block.Block {
	return a.chain.Head()
}

// GetUserBalance sums every unspent output owned by address.
func (a *API) GetUserBalance(address string) tx.Amount {
	return a.idx.Balance(address)
}

// UnspentRecord is one spendable output as returned by GetUserUnspent.
type UnspentRecord struct {
	TxHash      string
	OutputIndex uint32
	OutputHash  string
	Amount      tx.Amount
}

// GetUserUnspent lists address's spendable outputs.
func (a *API) GetUserUnspent(address string) []UnspentRecord {
	unspents := a.idx.Unspents(address)
	out := make([]UnspentRecord, len(unspents))
	for i, u := range unspents {
		out[i] = UnspentRecord{
			TxHash:      u.TxHash.String(),
			OutputIndex: u.OutputIndex,
			OutputHash:  u.OutputHash.String(),
			Amount:      u.Amount,
		}
	}
	return out
}

// Status is the result of GetStatus.
type Status struct {
	Empty      bool
	BlockIndex uint64
	BlockHash  string
	PrevHash   string
	Timestamp  int64
}

// GetStatus reports the current head, or {Empty: true} for a fresh chain.
func (a *API) GetStatus() Status {
	head := a.chain.Head()
	if head == nil {
		return Status{Empty: true}
	}
	return Status{
		BlockIndex: head.Index,
		BlockHash:  head.Hash().String(),
		PrevHash:   head.PrevHash.String(),
		Timestamp:  head.Timestamp,
	}
}
