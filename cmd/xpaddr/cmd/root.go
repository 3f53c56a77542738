package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"xpaddr/internal/config"
	"xpaddr/internal/errno"
	"xpaddr/internal/logger"
)

// NewRootCmd 构造根命令及全部子命令
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xpaddr",
		Short: "从扩展公钥派生比特币地址",
		Long: `从 xpub/ypub/zpub/Ypub/Zpub 以及 tpub 族扩展公钥派生单签和多签地址,
全程不接触私钥。结果以 JSON 输出到 stdout, 出错时退出码为 1。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		// 未知子命令按参数错误处理
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errno.Wrap(errno.ErrMalformedArgument, "unknown command %q for %q", args[0], cmd.Name())
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(); err != nil {
				return err
			}
			if err := logger.Init(config.Global.App.Env, config.Global.Log.Level); err != nil {
				return fmt.Errorf("failed to init logger: %v", err)
			}
			return nil
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errno.Wrap(errno.ErrMalformedArgument, "%v", err)
	})

	// 全局标志, 优先级高于配置文件和环境变量
	rootCmd.PersistentFlags().String("network", "mainnet", "省略位置参数 network 时使用的网络")
	rootCmd.PersistentFlags().String("log-level", "warn", "日志级别 (debug/info/warn/error)")
	_ = viper.BindPFlag("network", rootCmd.PersistentFlags().Lookup("network"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newSingleCmd(),
		newMultiCmd(),
		newRangeCmd(),
		newInspectCmd(),
		newCheckCmd(),
	)
	return rootCmd
}

// Execute 执行命令并返回进程退出码
func Execute(ctx context.Context) int {
	return run(ctx, os.Stdout, nil)
}

// run args 为 nil 时使用 os.Args[1:]
func run(ctx context.Context, out io.Writer, args []string) int {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(out)
	if args != nil {
		rootCmd.SetArgs(args)
	}
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		writeError(out, err)
		return 1
	}
	return 0
}
