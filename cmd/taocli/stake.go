package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/extrinsics"
)

func newStakeCommand() *cobra.Command {
	var (
		hotkey           string
		amount           float64
		all              bool
		waitInclusion    bool
		waitFinalization bool
		noPrompt         bool
	)
	cmd := &cobra.Command{
		Use:   "stake",
		Short: "Add stake to a hotkey",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !all && !cmd.Flags().Changed("amount") {
				return errors.New("either --amount or --all is required")
			}

			o, err := buildOrchestrator(cmd)
			if err != nil {
				return err
			}

			params := extrinsics.StakeParams{
				Hotkey:              hotkey,
				WaitForInclusion:    waitInclusion,
				WaitForFinalization: waitFinalization,
				Prompt:              !noPrompt,
			}
			if !all {
				b := balance.FromTao(amount)
				params.Amount = &b
			}

			if !o.Stake(params) {
				return errors.New("stake failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&hotkey, "hotkey", "", "hotkey to stake to; defaults to the wallet hotkey")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to stake in tao")
	cmd.Flags().BoolVar(&all, "all", false, "stake the entire spendable balance")
	cmd.Flags().BoolVar(&waitInclusion, "wait_for_inclusion", true, "block until the extrinsic is included")
	cmd.Flags().BoolVar(&waitFinalization, "wait_for_finalization", false, "block until the extrinsic is finalized")
	cmd.Flags().BoolVar(&noPrompt, "no_prompt", false, "never prompt for confirmation")
	return cmd
}
