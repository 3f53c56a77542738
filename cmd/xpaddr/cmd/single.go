package cmd

import (
	"github.com/spf13/cobra"

	"xpaddr"
	"xpaddr/internal/address"
	"xpaddr/internal/logger"
)

func newSingleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "single <xpub> <index> <script_type> <change> [network]",
		Short: "派生单签地址",
		Long: `沿 change/index 派生单签地址。
script_type: legacy | nested_segwit | native_segwit | taproot | taproot_bip86
change: true | false`,
		Args: rangeArgs(4, 5),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseUint32("index", args[1])
			if err != nil {
				return err
			}
			st, err := address.ParseScriptType(args[2])
			if err != nil {
				return err
			}
			change, err := parseChange(args[3])
			if err != nil {
				return err
			}
			net, err := resolveNetwork(args, 4)
			if err != nil {
				return err
			}

			d := xpaddr.New(xpaddr.WithLogger(logger.Log))
			addr, err := d.DeriveSingleSigAddress(args[0], index, st, change, net)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), addressResult{Address: addr})
		},
	}
}
