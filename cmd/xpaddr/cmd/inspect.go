package cmd

import (
	"github.com/spf13/cobra"

	"xpaddr"
	"xpaddr/internal/chain"
	"xpaddr/internal/logger"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <xpub> [network]",
		Short: "分析扩展公钥",
		Long:  `显示扩展公钥的版本、深度、指纹、推断的派生路径以及 0/0 处的各类型地址。`,
		Args:  rangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var net chain.Network
			if len(args) > 1 {
				n, err := chain.ParseNetwork(args[1])
				if err != nil {
					return err
				}
				net = n
			}

			report, err := xpaddr.New(xpaddr.WithLogger(logger.Log)).Inspect(args[0], net)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
}
