package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"xpaddr"
	"xpaddr/internal/address"
	"xpaddr/internal/config"
	"xpaddr/internal/logger"
)

func newRangeCmd() *cobra.Command {
	rangeCmd := &cobra.Command{
		Use:   "range <xpub> <start> <count> <script_type> <change> [network]",
		Short: "批量派生连续索引的单签地址",
		Args:  rangeArgs(5, 6),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseUint32("start", args[1])
			if err != nil {
				return err
			}
			count, err := parseUint32("count", args[2])
			if err != nil {
				return err
			}
			st, err := address.ParseScriptType(args[3])
			if err != nil {
				return err
			}
			change, err := parseChange(args[4])
			if err != nil {
				return err
			}
			net, err := resolveNetwork(args, 5)
			if err != nil {
				return err
			}

			d := xpaddr.New(
				xpaddr.WithLogger(logger.Log),
				xpaddr.WithWorkers(config.Global.Derive.Workers),
				xpaddr.WithMaxCount(config.Global.Range.MaxCount),
			)
			addrs, err := d.DeriveRange(cmd.Context(), args[0], start, count, st, change, net)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), addressesResult{Addresses: addrs})
		},
	}

	rangeCmd.Flags().Int("workers", 0, "并发派生数, 0 表示 CPU 核数")
	_ = viper.BindPFlag("derive.workers", rangeCmd.Flags().Lookup("workers"))
	return rangeCmd
}
