package cmd

import (
	"github.com/spf13/cobra"

	"xpaddr"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "报告曲线库是否可用",
		Args:  rangeArgs(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), xpaddr.CheckAvailability())
		},
	}
}
