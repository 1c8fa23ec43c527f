package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/pkg/balance"
	"github.com/tensorplex-labs/taocli/pkg/extrinsics"
)

func newTransferCommand() *cobra.Command {
	var (
		dest             string
		amount           float64
		keepAlive        bool
		waitInclusion    bool
		waitFinalization bool
		noPrompt         bool
	)
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer balance to another coldkey",
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := buildOrchestrator(cmd)
			if err != nil {
				return err
			}

			ok := o.Transfer(extrinsics.TransferParams{
				Dest:                dest,
				Amount:              balance.FromTao(amount),
				KeepAlive:           keepAlive,
				WaitForInclusion:    waitInclusion,
				WaitForFinalization: waitFinalization,
				Prompt:              !noPrompt,
			})
			if !ok {
				return errors.New("transfer failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dest, "dest", "", "destination coldkey address")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to transfer in tao")
	cmd.Flags().BoolVar(&keepAlive, "keep_alive", true, "keep the sender account above the existential deposit")
	cmd.Flags().BoolVar(&waitInclusion, "wait_for_inclusion", true, "block until the extrinsic is included")
	cmd.Flags().BoolVar(&waitFinalization, "wait_for_finalization", false, "block until the extrinsic is finalized")
	cmd.Flags().BoolVar(&noPrompt, "no_prompt", false, "never prompt for confirmation")
	_ = cmd.MarkFlagRequired("dest")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
