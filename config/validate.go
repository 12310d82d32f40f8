package config

import "fmt"

// Validate checks a Config for obvious operator mistakes before a node
// starts from it.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.DataDir == "" {
		return fmt.Errorf("datadir must not be empty")
	}
	return validateGenesis(&cfg.Genesis)
}

func validateGenesis(g *Genesis) error {
	if g.MiningReward <= 0 {
		return fmt.Errorf("genesis.mining_reward must be positive")
	}
	if g.TxsPerBlock <= 0 {
		return fmt.Errorf("genesis.txs_per_block must be positive")
	}
	if g.InitialDifficulty <= 0 {
		return fmt.Errorf("genesis.initial_difficulty must be positive")
	}
	for addr, amount := range g.Alloc {
		if amount < 0 {
			return fmt.Errorf("genesis.alloc[%s] is negative", addr)
		}
	}
	return nil
}
