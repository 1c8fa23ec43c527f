package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/extrinsics"
	"github.com/tensorplex-labs/taocli/pkg/subtensor"
)

func newUnstakeCommand() *cobra.Command {
	var (
		hotkeys          []string
		amount           float64
		all              bool
		waitInclusion    bool
		waitFinalization bool
		noPrompt         bool
	)
	cmd := &cobra.Command{
		Use:   "unstake",
		Short: "Remove stake from one or more hotkeys",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !all && !cmd.Flags().Changed("amount") {
				return errors.New("either --amount or --all is required")
			}

			o, err := buildOrchestrator(cmd)
			if err != nil {
				return err
			}

			var perTarget *balance.Balance
			if !all {
				b := balance.FromTao(amount)
				perTarget = &b
			}

			if len(hotkeys) > 1 {
				var amounts []*balance.Balance
				if perTarget != nil {
					amounts = make([]*balance.Balance, len(hotkeys))
					for i := range amounts {
						amounts[i] = perTarget
					}
				}
				ok := o.UnstakeMultiple(hotkeys, amounts, subtensor.WaitOpts{
					WaitForInclusion:    waitInclusion,
					WaitForFinalization: waitFinalization,
				}, !noPrompt)
				if !ok {
					return errors.New("unstake failed")
				}
				return nil
			}

			params := extrinsics.UnstakeParams{
				Amount:              perTarget,
				WaitForInclusion:    waitInclusion,
				WaitForFinalization: waitFinalization,
				Prompt:              !noPrompt,
			}
			if len(hotkeys) == 1 {
				params.Hotkey = hotkeys[0]
			}
			if !o.Unstake(params) {
				return errors.New("unstake failed")
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&hotkeys, "hotkeys", nil, "hotkeys to unstake from; defaults to the wallet hotkey")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to unstake from each hotkey in tao")
	cmd.Flags().BoolVar(&all, "all", false, "unstake everything from each hotkey")
	cmd.Flags().BoolVar(&waitInclusion, "wait_for_inclusion", true, "block until the extrinsic is included")
	cmd.Flags().BoolVar(&waitFinalization, "wait_for_finalization", false, "block until the extrinsic is finalized")
	cmd.Flags().BoolVar(&noPrompt, "no_prompt", false, "never prompt for confirmation")
	return cmd
}
