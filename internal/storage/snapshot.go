package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/puzzlecoin/puzzlechain/pkg/block"
)

var blockPrefix = []byte("block/")

// SnapshotWriter persists accepted blocks to a DB so a node can resume a
// chain instead of rebuilding it from genesis. The in-memory chain remains
// authoritative while the process runs; this is a write-behind log of it.
type SnapshotWriter struct {
	db DB
}

// NewSnapshotWriter wraps db as a block log.
func NewSnapshotWriter(db DB) *SnapshotWriter {
	return &SnapshotWriter{db: db}
}

func blockKey(index uint64) []byte {
	key := make([]byte, len(blockPrefix)+8)
	copy(key, blockPrefix)
	binary.BigEndian.PutUint64(key[len(blockPrefix):], index)
	return key
}

// PutBlock stores blk at its index, overwriting any block previously stored
// at that index (used by reorgs, which replace the head in place).
func (w *SnapshotWriter) PutBlock(blk *block.Block) error {
	data, err := json.Marshal(blk)
	if err != nil {
		return fmt.Errorf("encode block %d: %w", blk.Index, err)
	}
	return w.db.Put(blockKey(blk.Index), data)
}

// LoadBlocks replays every stored block in index order. Returns nil, nil on
// an empty/fresh database.
func (w *SnapshotWriter) LoadBlocks() ([]*block.Block, error) {
	byIndex := make(map[uint64]*block.Block)
	err := w.db.ForEach(blockPrefix, func(key, value []byte) error {
		if len(key) < len(blockPrefix)+8 {
			return fmt.Errorf("malformed snapshot key %x", key)
		}
		index := binary.BigEndian.Uint64(key[len(blockPrefix):])
		var blk block.Block
		if err := json.Unmarshal(value, &blk); err != nil {
			return fmt.Errorf("decode block %d: %w", index, err)
		}
		byIndex[index] = &blk
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(byIndex) == 0 {
		return nil, nil
	}
	out := make([]*block.Block, len(byIndex))
	for i := range out {
		blk, ok := byIndex[uint64(i)]
		if !ok {
			return nil, fmt.Errorf("snapshot missing block at index %d", i)
		}
		out[i] = blk
	}
	return out, nil
}
