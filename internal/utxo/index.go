// Package utxo implements the in-memory unspent-output index: the set of
// spendable outputs grouped by owner, the running balance per owner, and the
// full transaction record lookup by hash. It is mutated only by chain
// rollover/rollback and read by the verifiers.
package utxo

import (
	"sync"

	"github.com/puzzlecoin/puzzlechain/pkg/codec"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

// Config holds the network parameters the index enforces and reports.
type Config struct {
	MiningReward tx.Amount
	TxsPerBlock  int
	Difficulty   int64
}

// Unspent describes one spendable output: enough to both key the owner's
// unspent set (by OutputHash, matching I1) and reconstruct the outpoint it
// was consumed from.
type Unspent struct {
	TxHash      codec.Hash
	OutputIndex uint32
	OutputHash  codec.Hash
	Amount      tx.Amount
}

// Index is the UTXO index owned by Chain. A zero Index is not usable; use
// New.
type Index struct {
	mu sync.RWMutex

	config     Config
	blockIndex int64 // -1 when the chain is empty

	transactions    map[codec.Hash]*tx.Tx
	unspentByOwner  map[string]map[codec.Hash]Unspent
	unspentAmounts  map[string]map[codec.Hash]tx.Amount
}

// New constructs an empty index at blockIndex -1 (no blocks yet).
func New(config Config) *Index {
	return &Index{
		config:         config,
		blockIndex:     -1,
		transactions:   make(map[codec.Hash]*tx.Tx),
		unspentByOwner: make(map[string]map[codec.Hash]Unspent),
		unspentAmounts: make(map[string]map[codec.Hash]tx.Amount),
	}
}

// Config returns the index's network parameters.
func (idx *Index) Config() Config {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.config
}

// IncrementDifficulty bumps the monotonic difficulty counter (§4.7: accepted
// blocks raise difficulty by exactly one).
func (idx *Index) IncrementDifficulty() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.config.Difficulty++
}

// BlockIndex returns the current head index, or -1 if the chain is empty.
func (idx *Index) BlockIndex() int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.blockIndex
}

// SetBlockIndex updates the current head index (I3).
func (idx *Index) SetBlockIndex(i int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.blockIndex = i
}

// StoreTx records a transaction under its hash so later inputs can resolve
// the output they spend.
func (idx *Index) StoreTx(txHash codec.Hash, t *tx.Tx) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.transactions[txHash] = t
}

// Tx looks up a previously stored transaction by hash.
func (idx *Index) Tx(txHash codec.Hash) (*tx.Tx, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	t, ok := idx.transactions[txHash]
	return t, ok
}

// AddUnspent marks an output as spendable by its owner.
func (idx *Index) AddUnspent(owner string, u Unspent) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.addUnspentLocked(owner, u)
}

func (idx *Index) addUnspentLocked(owner string, u Unspent) {
	byHash, ok := idx.unspentByOwner[owner]
	if !ok {
		byHash = make(map[codec.Hash]Unspent)
		idx.unspentByOwner[owner] = byHash
	}
	byHash[u.OutputHash] = u

	amounts, ok := idx.unspentAmounts[owner]
	if !ok {
		amounts = make(map[codec.Hash]tx.Amount)
		idx.unspentAmounts[owner] = amounts
	}
	amounts[u.OutputHash] = u.Amount
}

// RemoveUnspent retires an output from the owner's unspent set, returning
// the removed record and whether it was present.
func (idx *Index) RemoveUnspent(owner string, outputHash codec.Hash) (Unspent, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.removeUnspentLocked(owner, outputHash)
}

func (idx *Index) removeUnspentLocked(owner string, outputHash codec.Hash) (Unspent, bool) {
	byHash, ok := idx.unspentByOwner[owner]
	if !ok {
		return Unspent{}, false
	}
	u, ok := byHash[outputHash]
	if !ok {
		return Unspent{}, false
	}
	delete(byHash, outputHash)
	if len(byHash) == 0 {
		delete(idx.unspentByOwner, owner)
	}
	if amounts, ok := idx.unspentAmounts[owner]; ok {
		delete(amounts, outputHash)
		if len(amounts) == 0 {
			delete(idx.unspentAmounts, owner)
		}
	}
	return u, true
}

// IsUnspent reports whether (owner, outputHash) is currently spendable.
func (idx *Index) IsUnspent(owner string, outputHash codec.Hash) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	byHash, ok := idx.unspentByOwner[owner]
	if !ok {
		return false
	}
	_, ok = byHash[outputHash]
	return ok
}

// Balance sums all unspent amounts owned by owner.
func (idx *Index) Balance(owner string) tx.Amount {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var total uint64
	for _, amt := range idx.unspentAmounts[owner] {
		total += uint64(amt)
	}
	return tx.Amount(total)
}

// Unspents returns every unspent output owned by owner, in no particular
// order.
func (idx *Index) Unspents(owner string) []Unspent {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	byHash := idx.unspentByOwner[owner]
	out := make([]Unspent, 0, len(byHash))
	for _, u := range byHash {
		out = append(out, u)
	}
	return out
}

// TotalUnspent sums every unspent amount across all owners (used to check I2
// in tests).
func (idx *Index) TotalUnspent() tx.Amount {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	var total uint64
	for _, amounts := range idx.unspentAmounts {
		for _, amt := range amounts {
			total += uint64(amt)
		}
	}
	return tx.Amount(total)
}

// ForgetTx removes a transaction record. Chain rollback does not call it:
// the records of an unwound block's transactions stay in the index.
func (idx *Index) ForgetTx(txHash codec.Hash) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.transactions, txHash)
}
