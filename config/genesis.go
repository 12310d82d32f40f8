package config

// Genesis holds the protocol rules that must match across every node on a
// network, plus the initial coin allocation. These are immutable after
// launch: changing them forks the network.
type Genesis struct {
	ChainName string `json:"chain_name"`
	Timestamp int64  `json:"timestamp"`

	// MiningReward is the coinbase amount UtxoIndex.config.mining_reward
	// pays per accepted block, at the fixed-point scale tx.AmountScale.
	MiningReward int64 `json:"mining_reward"`

	// TxsPerBlock bounds how many pending transactions force_block selects.
	TxsPerBlock int `json:"txs_per_block"`

	// InitialDifficulty seeds UtxoIndex.config.difficulty; add_block
	// increments it by one on every accepted block.
	InitialDifficulty int64 `json:"initial_difficulty"`

	// Alloc lists starting balances (address -> amount) for a pre-mine.
	// Validate rejects negative amounts, but nothing in this repository pays
	// them out: the genesis block's coinbase carries only the miner reward.
	// Empty for a network with no pre-mine.
	Alloc map[string]int64 `json:"alloc,omitempty"`
}
