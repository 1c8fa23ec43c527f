package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/internal/config"
	"github.com/tensorplex-labs/taocli/internal/utils/logger"
	"github.com/tensorplex-labs/taocli/pkg/extrinsics"
	"github.com/tensorplex-labs/taocli/pkg/subtensor"
	"github.com/tensorplex-labs/taocli/pkg/wallet"
)

func main() {
	logger.Init()

	root := &cobra.Command{
		Use:           "taocli",
		Short:         "Subtensor staking, transfer and subnet inspection CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newShowCommand())
	root.AddCommand(newStakeCommand())
	root.AddCommand(newUnstakeCommand())
	root.AddCommand(newTransferCommand())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func buildClient(cmd *cobra.Command) (*subtensor.Client, *config.AppConfig, error) {
	cfg, err := config.LoadConfig(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	client, err := subtensor.NewClient(&cfg.Subtensor)
	if err != nil {
		return nil, nil, err
	}
	return client, cfg, nil
}

func buildOrchestrator(cmd *cobra.Command) (*extrinsics.Orchestrator, error) {
	client, cfg, err := buildClient(cmd)
	if err != nil {
		return nil, err
	}
	keystore, err := wallet.Load(&cfg.Wallet)
	if err != nil {
		return nil, err
	}
	return extrinsics.New(client, client, keystore, newConsolePrompter(), consoleReporter{}), nil
}
