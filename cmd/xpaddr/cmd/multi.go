package cmd

import (
	"github.com/spf13/cobra"

	"xpaddr"
	"xpaddr/internal/address"
	"xpaddr/internal/logger"
)

func newMultiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "multi <xpubs_json> <threshold> <index> <script_type> <change> [network]",
		Short: "派生多签地址",
		Long: `每个 cosigner 沿 change/index 派生公钥, 按 BIP-67 排序后构造 threshold-of-N 赎回脚本。
xpubs_json: JSON 字符串数组, 例如 '["xpub...","xpub..."]'
script_type: p2sh | p2wsh | p2sh_p2wsh`,
		Args: rangeArgs(5, 6),
		RunE: func(cmd *cobra.Command, args []string) error {
			xpubs, err := parseXpubList(args[0])
			if err != nil {
				return err
			}
			threshold, err := parseThreshold(args[1])
			if err != nil {
				return err
			}
			index, err := parseUint32("index", args[2])
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

			d := xpaddr.New(xpaddr.WithLogger(logger.Log))
			addr, err := d.DeriveMultisigAddress(xpubs, threshold, index, st, change, net)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), addressResult{Address: addr})
		},
	}
}
