// Package xpaddr 从扩展公钥派生比特币收款地址, 全程不接触私钥。
//
// 单签支持 legacy / nested_segwit / native_segwit / taproot (以及 BIP86
// tweak 后的 taproot_bip86), 多签支持 p2sh / p2wsh / p2sh_p2wsh。
// 派生路径固定为 change/index 两级非强化路径。
package xpaddr

import (
	"context"
	"runtime"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"xpaddr/internal/address"
	"xpaddr/internal/chain"
	"xpaddr/internal/errno"
	"xpaddr/internal/logger"
	"xpaddr/internal/xpub"
)

// KeyDeriver 单签派生的各个步骤
type KeyDeriver interface {
	// Normalize 将 SLIP-132 前缀改写为规范的 xpub/tpub
	Normalize(s string) (string, chain.Network, error)
	Parse(s string) (*xpub.ExtendedPublicKey, error)
	// DeriveChild 沿 change/index 派生, 返回 33 字节压缩公钥
	DeriveChild(key *xpub.ExtendedPublicKey, path xpub.Path) ([]byte, error)
	EncodeAddress(pubKey []byte, st address.ScriptType, net chain.Network) (string, error)
}

var _ KeyDeriver = (*Deriver)(nil)

// Deriver 地址派生器, 无可变状态, 可并发使用
type Deriver struct {
	log      *zap.Logger
	workers  int
	maxCount uint32
}

// DefaultMaxRangeCount DeriveRange 单次最多派生的地址数
const DefaultMaxRangeCount = 1000

type Option func(*Deriver)

// WithLogger 指定 logger, 默认使用全局 logger
func WithLogger(l *zap.Logger) Option {
	return func(d *Deriver) {
		d.log = l
	}
}

// WithWorkers 批量派生的并发数, n <= 0 时使用 runtime.NumCPU()
func WithWorkers(n int) Option {
	return func(d *Deriver) {
		d.workers = n
	}
}

// WithMaxCount DeriveRange 单次最多派生的地址数, n == 0 时使用 DefaultMaxRangeCount
func WithMaxCount(n uint32) Option {
	return func(d *Deriver) {
		d.maxCount = n
	}
}

func New(opts ...Option) *Deriver {
	d := &Deriver{}
	for _, opt := range opts {
		opt(d)
	}
	if d.workers <= 0 {
		d.workers = runtime.NumCPU()
	}
	if d.maxCount == 0 {
		d.maxCount = DefaultMaxRangeCount
	}
	return d
}

func (d *Deriver) logger() *zap.Logger {
	if d.log != nil {
		return d.log
	}
	return logger.Log
}

func (d *Deriver) Normalize(s string) (string, chain.Network, error) {
	return xpub.Normalize(s)
}

func (d *Deriver) Parse(s string) (*xpub.ExtendedPublicKey, error) {
	return xpub.Parse(s)
}

func (d *Deriver) DeriveChild(key *xpub.ExtendedPublicKey, path xpub.Path) ([]byte, error) {
	child, err := key.DerivePath(path)
	if err != nil {
		return nil, err
	}
	return child.PublicKey[:], nil
}

func (d *Deriver) EncodeAddress(pubKey []byte, st address.ScriptType, net chain.Network) (string, error) {
	return address.SingleSig(pubKey, st, net)
}

func checkIndex(index uint32) error {
	if index >= hdkeychain.HardenedKeyStart {
		return errno.Wrap(errno.ErrMalformedArgument, "index %d is hardened, must be below 2^31", index)
	}
	return nil
}

// parseKey 规范化并解析, 前缀网络族与显式网络不一致时只记录告警, 以显式网络为准
func (d *Deriver) parseKey(s string, net chain.Network) (*xpub.ExtendedPublicKey, error) {
	canonical, family, err := d.Normalize(s)
	if err != nil {
		return nil, err
	}
	key, err := d.Parse(canonical)
	if err != nil {
		return nil, err
	}
	if family != net.Family() {
		d.logger().Warn("extended key prefix does not match network",
			zap.String("prefix", family.String()),
			zap.String("network", net.String()))
	}
	return key, nil
}

// DeriveSingleSigAddress 派生 change/index 处的单签地址
func (d *Deriver) DeriveSingleSigAddress(xpubStr string, index uint32, st address.ScriptType, isChange bool, net chain.Network) (string, error) {
	if !st.IsSingleSig() {
		return "", errno.Wrap(errno.ErrUnsupportedScriptType, "%q is not a single-sig script type", st)
	}
	if _, err := net.Params(); err != nil {
		return "", err
	}
	if err := checkIndex(index); err != nil {
		return "", err
	}

	key, err := d.parseKey(xpubStr, net)
	if err != nil {
		return "", err
	}
	path := xpub.Path{Change: isChange, Index: index}
	pubKey, err := d.DeriveChild(key, path)
	if err != nil {
		return "", err
	}
	addr, err := d.EncodeAddress(pubKey, st, net)
	if err != nil {
		return "", err
	}

	d.logger().Debug("derived single-sig address",
		zap.String("path", path.String()),
		zap.String("script_type", st.String()),
		zap.String("network", net.String()),
		zap.String("address", addr))
	return addr, nil
}

// DeriveMultisigAddress 派生 threshold-of-len(xpubs) 多签地址。
// 每个 xpub 各自派生 change/index, 公钥按 BIP-67 排序, 结果与 xpubs 的顺序无关。
func (d *Deriver) DeriveMultisigAddress(xpubs []string, threshold int, index uint32, st address.ScriptType, isChange bool, net chain.Network) (string, error) {
	if !st.IsMultisig() {
		return "", errno.Wrap(errno.ErrUnsupportedScriptType, "%q is not a multisig script type", st)
	}
	if len(xpubs) == 0 {
		return "", errno.Wrap(errno.ErrEmptyKeySet, "no cosigner extended keys")
	}
	if len(xpubs) > address.MaxMultisigKeys || threshold < 1 || threshold > len(xpubs) {
		return "", errno.Wrap(errno.ErrThresholdRange,
			"threshold %d of %d keys, require 1 <= threshold <= keys <= %d",
			threshold, len(xpubs), address.MaxMultisigKeys)
	}
	if _, err := net.Params(); err != nil {
		return "", err
	}
	if err := checkIndex(index); err != nil {
		return "", err
	}

	path := xpub.Path{Change: isChange, Index: index}
	pubKeys := make([][]byte, 0, len(xpubs))
	for _, s := range xpubs {
		key, err := d.parseKey(s, net)
		if err != nil {
			return "", err
		}
		pubKey, err := d.DeriveChild(key, path)
		if err != nil {
			return "", err
		}
		pubKeys = append(pubKeys, pubKey)
	}

	addr, err := address.Multisig(pubKeys, threshold, st, net)
	if err != nil {
		return "", err
	}

	d.logger().Debug("derived multisig address",
		zap.String("path", path.String()),
		zap.Int("threshold", threshold),
		zap.Int("keys", len(pubKeys)),
		zap.String("script_type", st.String()),
		zap.String("network", net.String()),
		zap.String("address", addr))
	return addr, nil
}

// DeriveRange 并发派生 [start, start+count) 的单签地址, 按索引顺序返回。
// count 不能超过 WithMaxCount 设置的上限。
// 任一索引失败或 ctx 取消时返回第一个错误, 不返回部分结果。
func (d *Deriver) DeriveRange(ctx context.Context, xpubStr string, start, count uint32, st address.ScriptType, isChange bool, net chain.Network) ([]string, error) {
	if !st.IsSingleSig() {
		return nil, errno.Wrap(errno.ErrUnsupportedScriptType, "%q is not a single-sig script type", st)
	}
	if _, err := net.Params(); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errno.Wrap(errno.ErrMalformedArgument, "count must be positive")
	}
	if count > d.maxCount {
		return nil, errno.Wrap(errno.ErrMalformedArgument, "count %d exceeds limit %d", count, d.maxCount)
	}
	last := uint64(start) + uint64(count) - 1
	if last >= hdkeychain.HardenedKeyStart {
		return nil, errno.Wrap(errno.ErrMalformedArgument, "range %d..%d reaches hardened indexes", start, last)
	}

	key, err := d.parseKey(xpubStr, net)
	if err != nil {
		return nil, err
	}
	// change 层只派生一次
	branch, err := key.Child(xpub.Path{Change: isChange}.Branch())
	if err != nil {
		return nil, err
	}

	addresses := make([]string, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)
	for i := uint32(0); i < count; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			child, err := branch.Child(start + i)
			if err != nil {
				return err
			}
			addr, err := d.EncodeAddress(child.PublicKey[:], st, net)
			if err != nil {
				return err
			}
			addresses[i] = addr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.logger().Debug("derived address range",
		zap.Uint32("start", start),
		zap.Uint32("count", count),
		zap.String("script_type", st.String()),
		zap.String("network", net.String()))
	return addresses, nil
}

var defaultDeriver = New()

// DeriveSingleSigAddress 使用默认派生器
func DeriveSingleSigAddress(xpubStr string, index uint32, st address.ScriptType, isChange bool, net chain.Network) (string, error) {
	return defaultDeriver.DeriveSingleSigAddress(xpubStr, index, st, isChange, net)
}

// DeriveMultisigAddress 使用默认派生器
func DeriveMultisigAddress(xpubs []string, threshold int, index uint32, st address.ScriptType, isChange bool, net chain.Network) (string, error) {
	return defaultDeriver.DeriveMultisigAddress(xpubs, threshold, index, st, isChange, net)
}
