// Package mempool manages unconfirmed transactions awaiting block inclusion:
// fee-ordered selection and a double-spend guard over reserved UTXOs.
package mempool

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/puzzlecoin/puzzlechain/internal/utxo"
	"github.com/puzzlecoin/puzzlechain/pkg/chainerr"
	"github.com/puzzlecoin/puzzlechain/pkg/codec"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

// Mempool errors.
var (
	ErrAlreadyExists = errors.New("transaction already in mempool")
	ErrReserved      = errors.New("input already reserved by a pending transaction")
)

// Verifier validates a transaction against a UTXO index snapshot and returns
// the fee it pays. Satisfied by *internal/txverify.Verifier; declared here,
// duck-typed, so this package does not import txverify.
type Verifier interface {
	VerifyTx(t *tx.Tx, idx *utxo.Index) (tx.Amount, error)
}

// reservation identifies a claimed (not yet confirmed) input.
type reservation struct {
	PrevTxHash  string
	OutputIndex uint32
}

type entry struct {
	tx  *tx.Tx
	fee tx.Amount
}

// Pool holds pending transactions, keyed by hash, plus the set of inputs
// they claim (I4).
type Pool struct {
	mu       sync.RWMutex
	verifier Verifier

	pending  map[codec.Hash]entry
	reserved map[reservation]codec.Hash // reservation -> holder tx hash
}

// New creates an empty mempool that validates incoming transactions with v.
func New(v Verifier) *Pool {
	return &Pool{
		verifier: v,
		pending:  make(map[codec.Hash]entry),
		reserved: make(map[reservation]codec.Hash),
	}
}

// Add validates t against idx and, if accepted, reserves its inputs and
// records its fee.
func (p *Pool) Add(t *tx.Tx, idx *utxo.Index) (tx.Amount, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	txHash := t.Hash()
	if _, exists := p.pending[txHash]; exists {
		return 0, chainerr.Wrap(chainerr.MempoolDuplicate, "tx "+txHash.String(), ErrAlreadyExists)
	}

	for i, in := range t.Inputs {
		if in.IsCoinbase() {
			continue
		}
		r := reservation{PrevTxHash: in.PrevTxHash, OutputIndex: in.OutputIndex}
		if holder, exists := p.reserved[r]; exists {
			return 0, chainerr.Wrap(chainerr.MempoolConflict, fmt.Sprintf("input %d held by %s", i, holder), ErrReserved)
		}
	}

	fee, err := p.verifier.VerifyTx(t, idx)
	if err != nil {
		return 0, err
	}

	for _, in := range t.Inputs {
		if in.IsCoinbase() {
			continue
		}
		r := reservation{PrevTxHash: in.PrevTxHash, OutputIndex: in.OutputIndex}
		p.reserved[r] = txHash
	}
	p.pending[txHash] = entry{tx: t, fee: fee}

	return fee, nil
}

// Remove drops a transaction and releases its reservations (used by
// rollover, where the tx is now confirmed).
func (p *Pool) Remove(txHash codec.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(txHash)
}

func (p *Pool) removeLocked(txHash codec.Hash) {
	e, exists := p.pending[txHash]
	if !exists {
		return
	}
	for _, in := range e.tx.Inputs {
		if in.IsCoinbase() {
			continue
		}
		delete(p.reserved, reservation{PrevTxHash: in.PrevTxHash, OutputIndex: in.OutputIndex})
	}
	delete(p.pending, txHash)
}

// Reinsert restores t to the pool with the given fee, re-reserving its
// inputs (used by rollback to undo a rollover's Remove).
func (p *Pool) Reinsert(t *tx.Tx, fee tx.Amount) {
	p.mu.Lock()
	defer p.mu.Unlock()

	txHash := t.Hash()
	p.pending[txHash] = entry{tx: t, fee: fee}
	for _, in := range t.Inputs {
		if in.IsCoinbase() {
			continue
		}
		p.reserved[reservation{PrevTxHash: in.PrevTxHash, OutputIndex: in.OutputIndex}] = txHash
	}
}

// Has reports whether a transaction is pending.
func (p *Pool) Has(txHash codec.Hash) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, exists := p.pending[txHash]
	return exists
}

// Count returns the number of pending transactions.
func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.pending)
}

// IsReserved reports whether (prevTxHash, outputIndex) is claimed by a
// pending transaction.
func (p *Pool) IsReserved(prevTxHash string, outputIndex uint32) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, exists := p.reserved[reservation{PrevTxHash: prevTxHash, OutputIndex: outputIndex}]
	return exists
}

// Selected pairs a pending transaction with the fee it pays, as returned by
// SelectForBlock.
type Selected struct {
	Tx  *tx.Tx
	Fee tx.Amount
}

// SelectForBlock returns up to limit pending transactions ordered by fee
// descending, ties broken by tx_hash ascending for determinism (§9 design
// note: the source's map-order tiebreak is replaced).
func (p *Pool) SelectForBlock(limit int) []Selected {
	p.mu.RLock()
	defer p.mu.RUnlock()

	type scored struct {
		hash codec.Hash
		e    entry
	}
	all := make([]scored, 0, len(p.pending))
	for h, e := range p.pending {
		all = append(all, scored{hash: h, e: e})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].e.fee != all[j].e.fee {
			return all[i].e.fee > all[j].e.fee
		}
		return all[i].hash.String() < all[j].hash.String()
	})

	if limit > len(all) || limit < 0 {
		limit = len(all)
	}
	out := make([]Selected, limit)
	for i := 0; i < limit; i++ {
		out[i] = Selected{Tx: all[i].e.tx, Fee: all[i].e.fee}
	}
	return out
}
