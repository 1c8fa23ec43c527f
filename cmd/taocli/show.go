package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/taocli/internal/render"
)

func newShowCommand() *cobra.Command {
	var (
		netuid   int
		noPrompt bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the state table for a subnet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := buildClient(cmd)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("netuid") {
				netuid = cfg.Chain.Netuid
			}
			if netuid < 0 {
				if noPrompt {
					return errors.New("netuid is required when prompting is disabled")
				}
				fmt.Print("Enter netuid: ")
				if _, err := fmt.Fscanln(os.Stdin, &netuid); err != nil {
					return fmt.Errorf("read netuid: %w", err)
				}
			}

			state, err := client.GetSubnetState(netuid)
			if err != nil {
				return err
			}
			if netuid == 0 {
				return render.RootTable(os.Stdout, state)
			}

			info, err := client.GetDynamicInfo(netuid)
			if err != nil {
				return err
			}
			if err := render.SubnetHeader(os.Stdout, info); err != nil {
				return err
			}
			return render.SubnetTable(os.Stdout, state)
		},
	}
	cmd.Flags().IntVar(&netuid, "netuid", -1, "subnet to show; prompted for when omitted")
	cmd.Flags().BoolVar(&noPrompt, "no_prompt", false, "never prompt for input")
	return cmd
}
