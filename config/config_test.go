package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testGenesis() Genesis {
	return Genesis{
		ChainName:         "testnet",
		Timestamp:         1000,
		MiningReward:      500,
		TxsPerBlock:       10,
		InitialDifficulty: 1,
	}
}

func TestValidateAcceptsDefault(t *testing.T) {
	cfg := Default(t.TempDir(), testGenesis())
	require.NoError(t, Validate(cfg))
}

func TestValidateRejectsZeroMiningReward(t *testing.T) {
	g := testGenesis()
	g.MiningReward = 0
	cfg := Default(t.TempDir(), g)
	require.Error(t, Validate(cfg))
}

func TestValidateRejectsNegativeAlloc(t *testing.T) {
	g := testGenesis()
	g.Alloc = map[string]int64{"addr==": -1}
	cfg := Default(t.TempDir(), g)
	require.Error(t, Validate(cfg))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cfg := Default(t.TempDir(), testGenesis())
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Genesis, loaded.Genesis)
	require.Equal(t, cfg.DataDir, loaded.DataDir)
}
