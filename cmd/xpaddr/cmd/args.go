package cmd

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"xpaddr/internal/chain"
	"xpaddr/internal/config"
	"xpaddr/internal/errno"
)

// rangeArgs 参数个数错误同样按 MalformedArgumentError 输出
func rangeArgs(min, max int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < min || len(args) > max {
			return errno.Wrap(errno.ErrMalformedArgument, "usage: %s %s", cmd.Root().Name(), cmd.Use)
		}
		return nil
	}
}

func parseUint32(name, s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errno.Wrap(errno.ErrMalformedArgument, "%s must be a non-negative integer, got %q", name, s)
	}
	return uint32(v), nil
}

func parseThreshold(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errno.Wrap(errno.ErrMalformedArgument, "threshold must be an integer, got %q", s)
	}
	return v, nil
}

// parseChange 只接受 true/false
func parseChange(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errno.Wrap(errno.ErrMalformedArgument, "change must be true or false, got %q", s)
}

// parseXpubList 解析 JSON 字符串数组
func parseXpubList(s string) ([]string, error) {
	var xpubs []string
	if err := json.Unmarshal([]byte(s), &xpubs); err != nil {
		return nil, errno.Wrap(errno.ErrMalformedArgument, "xpubs must be a JSON array of strings: %v", err)
	}
	return xpubs, nil
}

// resolveNetwork 位置参数优先, 否则取配置 (--network / XPADDR_NETWORK / config.yaml)
func resolveNetwork(args []string, pos int) (chain.Network, error) {
	if len(args) > pos {
		return chain.ParseNetwork(args[pos])
	}
	return chain.ParseNetwork(config.Global.Network)
}
