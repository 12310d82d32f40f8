// Package chain implements the blockchain state machine: block acceptance,
// bounded fork resolution, UTXO rollover/rollback, and candidate-block
// assembly.
package chain

import (
	"sync"

	"github.com/puzzlecoin/puzzlechain/internal/mempool"
	"github.com/puzzlecoin/puzzlechain/internal/utxo"
	"github.com/puzzlecoin/puzzlechain/pkg/block"
	"github.com/puzzlecoin/puzzlechain/pkg/chainerr"
	"github.com/puzzlecoin/puzzlechain/pkg/codec"
)

// BlockVerifier checks a candidate block against a UTXO index snapshot and,
// when head is non-nil, against head's linkage. Satisfied by
// *internal/blockverify.Verifier.
type BlockVerifier interface {
	Verify(head *block.Block, blk *block.Block, idx *utxo.Index) error
}

// Observer is notified as blocks are applied or reverted. Either field may
// be left nil; Chain checks before calling.
type Observer struct {
	OnNewBlock  func(blk *block.Block)
	OnPrevBlock func(blk *block.Block)
}

// Chain is the blockchain state machine of spec §3/§4.7-4.10: an ordered
// block sequence, a bounded set of competing fork tips, the UTXO index, and
// the mempool, all mutated under a single lock.
type Chain struct {
	mu sync.Mutex

	blocks     []*block.Block
	forkBlocks map[codec.Hash]*block.Block

	idx      *utxo.Index
	pool     *mempool.Pool
	verifier BlockVerifier
	observer Observer
}

// New constructs an empty Chain over idx and pool, verifying candidate
// blocks with verifier.
func New(idx *utxo.Index, pool *mempool.Pool, verifier BlockVerifier, observer Observer) *Chain {
	return &Chain{
		forkBlocks: make(map[codec.Hash]*block.Block),
		idx:        idx,
		pool:       pool,
		verifier:   verifier,
		observer:   observer,
	}
}

// Head returns the current chain tip, or nil if the chain is empty.
func (c *Chain) Head() *block.Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.headLocked()
}

func (c *Chain) headLocked() *block.Block {
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[len(c.blocks)-1]
}

// Blocks returns the canonical chain from index onward, up to limit blocks
// (limit <= 0 means no limit), per get_chain (§6).
func (c *Chain) Blocks(from uint64, limit int) []*block.Block {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*block.Block
	for _, blk := range c.blocks {
		if blk.Index < from {
			continue
		}
		out = append(out, blk)
		if limit > 0 && len(out) >= limit {
			return out
		}
	}
	if limit <= 0 || len(out) < limit {
		for _, blk := range c.forkBlocks {
			out = append(out, blk)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// Result describes the outcome of AddBlock.
type Result struct {
	Accepted bool
	Reorg    bool
	Buffered bool
}

// AddBlock runs blk through BlockVerifier against the current head and
// routes the outcome per §4.7: acceptance appends and rolls the block
// forward; a recoverable BlockOutOfChain either buffers a sibling of head
// or, if blk completes a buffered sibling's chain, replaces head with a
// one-block reorg; anything deeper, or a terminal verification failure, is
// rejected.
func (c *Chain) AddBlock(blk *block.Block) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	head := c.headLocked()
	if head != nil && blk.Hash() == head.Hash() {
		return Result{}, chainerr.New(chainerr.DuplicateBlock, "block already is head")
	}

	err := c.verifier.Verify(head, blk, c.idx)
	if err == nil {
		c.rolloverBlock(blk)
		c.forkBlocks = make(map[codec.Hash]*block.Block)
		return Result{Accepted: true}, nil
	}

	ce, ok := err.(*chainerr.Error)
	if !ok || ce.Code != chainerr.BlockOutOfChain {
		return Result{}, err
	}

	if head != nil && blk.PrevHash == head.PrevHash {
		c.forkBlocks[blk.Hash()] = blk
		return Result{Buffered: true}, nil
	}

	if sibling, ok := c.forkBlocks[blk.PrevHash]; ok {
		c.rollbackBlock()
		c.rolloverBlock(sibling)
		c.rolloverBlock(blk)
		c.forkBlocks = make(map[codec.Hash]*block.Block)
		return Result{Accepted: true, Reorg: true}, nil
	}

	return Result{}, chainerr.New(chainerr.ForkTooDeep, "block does not extend head or any buffered fork")
}
