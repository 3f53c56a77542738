// Package chain 网络选择及其版本字节常量。
package chain

import (
	"github.com/btcsuite/btcd/chaincfg"

	"xpaddr/internal/errno"
)

// Network 比特币网络
type Network string

const (
	MainNet Network = "mainnet"
	TestNet Network = "testnet"
	RegTest Network = "regtest"
	SigNet  Network = "signet"
)

// ParseNetwork 只接受规范名称, 不做大小写转换, 也不支持别名
func ParseNetwork(name string) (Network, error) {
	switch n := Network(name); n {
	case MainNet, TestNet, RegTest, SigNet:
		return n, nil
	default:
		return "", errno.Wrap(errno.ErrMalformedArgument, "unknown network: %s", name)
	}
}

// Params 返回 btcd 的网络参数
func (n Network) Params() (*chaincfg.Params, error) {
	switch n {
	case MainNet:
		return &chaincfg.MainNetParams, nil
	case TestNet:
		return &chaincfg.TestNet3Params, nil
	case RegTest:
		return &chaincfg.RegressionNetParams, nil
	case SigNet:
		return &chaincfg.SigNetParams, nil
	default:
		return nil, errno.Wrap(errno.ErrMalformedArgument, "unknown network: %s", string(n))
	}
}

// IsMainNet regtest/signet 与 testnet 同属测试网族 (tpub 版本)
func (n Network) IsMainNet() bool {
	return n == MainNet
}

// Family 返回网络族: mainnet 或 testnet
func (n Network) Family() Network {
	if n.IsMainNet() {
		return MainNet
	}
	return TestNet
}

func (n Network) String() string {
	return string(n)
}
