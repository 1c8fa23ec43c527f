// Package config defines environment configuration structs and loaders.
package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// AppConfig aggregates every environment-driven configuration section.
type AppConfig struct {
	Subtensor SubtensorEnvConfig
	Wallet    WalletEnvConfig
	Chain     ChainEnvConfig
}

// SubtensorEnvConfig holds the chain RPC sidecar target.
type SubtensorEnvConfig struct {
	SubtensorNetwork string `env:"SUBTENSOR_NETWORK, default=finney"`
	SubtensorHost    string `env:"SUBTENSOR_HOST, default=127.0.0.1"`
	SubtensorPort    string `env:"SUBTENSOR_PORT, default=3000"`
}

// WalletEnvConfig holds wallet key configuration.
type WalletEnvConfig struct {
	WalletName   string `env:"WALLET_NAME, default=default"`
	WalletHotkey string `env:"WALLET_HOTKEY, default=default"`
	WalletDir    string `env:"WALLET_DIR, default=~/.bittensor"`
}

// ChainEnvConfig holds chain-specific environment values. Netuid -1
// means no subnet was selected through the environment.
type ChainEnvConfig struct {
	Netuid int `env:"NETUID, default=-1"`
}

// LoadConfig reads the full application config from the environment.
func LoadConfig(ctx context.Context) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.Process(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
