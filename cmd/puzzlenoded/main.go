// Puzzle-ledger node daemon: wires the ledger, validator, fork-resolution,
// and puzzle subsystems behind the node.API façade and keeps them resident
// until terminated. Transport (HTTP/WebSocket/RPC), gossip fan-out, CLI
// options beyond the config file path, and the external miner loop are not
// this binary's job — an operator drives node.API through some other process.
//
// Usage:
//
//	puzzlenoded [config.json]
//
// The single optional argument is the path of the JSON config file
// (default node.json); the genesis parameters are read from that file.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/puzzlecoin/puzzlechain/config"
	"github.com/puzzlecoin/puzzlechain/internal/blockverify"
	"github.com/puzzlecoin/puzzlechain/internal/chain"
	"github.com/puzzlecoin/puzzlechain/internal/consensus"
	plog "github.com/puzzlecoin/puzzlechain/internal/log"
	"github.com/puzzlecoin/puzzlechain/internal/mempool"
	"github.com/puzzlecoin/puzzlechain/internal/node"
	"github.com/puzzlecoin/puzzlechain/internal/storage"
	"github.com/puzzlecoin/puzzlechain/internal/txverify"
	"github.com/puzzlecoin/puzzlechain/internal/utxo"
	"github.com/puzzlecoin/puzzlechain/pkg/block"
	"github.com/puzzlecoin/puzzlechain/pkg/tx"
)

func main() {
	cfgPath := "node.json"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		os.Exit(1)
	}

	if err := plog.Init(cfg.Log.Level, cfg.Log.JSON, ""); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	logger := plog.WithComponent("node")

	logger.Info().
		Str("chain_name", cfg.Genesis.ChainName).
		Int64("mining_reward", cfg.Genesis.MiningReward).
		Int("txs_per_block", cfg.Genesis.TxsPerBlock).
		Int64("initial_difficulty", cfg.Genesis.InitialDifficulty).
		Msg("starting puzzle ledger node")

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatal().Err(err).Str("path", cfg.DataDir).Msg("failed to create data dir")
	}
	db, err := storage.NewBadger(filepath.Join(cfg.DataDir, "chaindata"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()
	snapshots := storage.NewSnapshotWriter(db)

	idx := utxo.New(utxo.Config{
		MiningReward: tx.Amount(cfg.Genesis.MiningReward),
		TxsPerBlock:  cfg.Genesis.TxsPerBlock,
		Difficulty:   cfg.Genesis.InitialDifficulty,
	})
	tv := txverify.New()
	pool := mempool.New(tv)
	bv := blockverify.New(consensus.NewPuzzleEngine(), tv)

	observer := chain.Observer{
		OnNewBlock: func(blk *block.Block) {
			if err := snapshots.PutBlock(blk); err != nil {
				logger.Warn().Err(err).Uint64("index", blk.Index).Msg("failed to persist block")
			}
		},
	}
	c := chain.New(idx, pool, bv, observer)

	saved, err := snapshots.LoadBlocks()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load snapshot")
	}
	for _, blk := range saved {
		if _, err := c.AddBlock(blk); err != nil {
			logger.Fatal().Err(err).Uint64("index", blk.Index).Msg("failed to replay snapshot block")
		}
	}
	if len(saved) > 0 {
		logger.Info().Int("blocks", len(saved)).Msg("chain resumed from snapshot")
	} else if len(cfg.Genesis.Alloc) > 0 {
		logger.Info().Int("accounts", len(cfg.Genesis.Alloc)).Msg("genesis allocation present, awaiting first mined block")
	}

	api := node.New(c, idx, pool)
	_ = api // held by whatever external transport embeds this process

	status := api.GetStatus()
	logger.Info().
		Bool("empty", status.Empty).
		Uint64("block_index", status.BlockIndex).
		Str("block_hash", status.BlockHash).
		Msg("node ready")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
}
