package xpub

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"xpaddr/internal/chain"
	"xpaddr/internal/hash"
)

// Info 扩展公钥分析结果
type Info struct {
	Raw               string `json:"raw"`
	Canonical         string `json:"canonical"`
	Network           string `json:"network"`
	KeyType           string `json:"key_type"`
	Version           string `json:"version"`
	Depth             uint8  `json:"depth"`
	ParentFingerprint string `json:"parent_fingerprint"`
	ChildNumber       uint32 `json:"child_number"`
	Hardened          bool   `json:"hardened"`
	ChainCode         string `json:"chain_code"`
	PublicKey         string `json:"public_key"`
	PublicKeyHash160  string `json:"public_key_hash160"`
	Fingerprint       string `json:"fingerprint"`
	DerivationPath    string `json:"derivation_path"`
}

// Inspect 解析扩展公钥并生成分析报告。
// coin_type 由 net 决定, net 为空时取前缀所属网络族。
func Inspect(s string, net chain.Network) (*Info, *ExtendedPublicKey, error) {
	key, err := Parse(s)
	if err != nil {
		return nil, nil, err
	}
	canonical, family, err := Normalize(s)
	if err != nil {
		return nil, nil, err
	}
	if net == "" {
		net = family
	}

	fp := key.Fingerprint()
	info := &Info{
		Raw:               s,
		Canonical:         canonical,
		Network:           family.String(),
		KeyType:           key.KeyVersion().Prefix,
		Version:           hex.EncodeToString(key.Version[:]),
		Depth:             key.Depth,
		ParentFingerprint: hex.EncodeToString(key.ParentFingerprint[:]),
		ChildNumber:       key.ChildNumber,
		Hardened:          key.ChildNumber >= hdkeychain.HardenedKeyStart,
		ChainCode:         hex.EncodeToString(key.ChainCode[:]),
		PublicKey:         hex.EncodeToString(key.PublicKey[:]),
		PublicKeyHash160:  hex.EncodeToString(hash.Hash160(key.PublicKey[:])),
		Fingerprint:       hex.EncodeToString(fp[:]),
		DerivationPath:    standardPath(key.KeyVersion().Purpose, coinType(net), key.Depth, key.ChildNumber),
	}
	return info, key, nil
}

// coinType BIP44 coin_type: 主网 0, 测试网 1
func coinType(net chain.Network) uint32 {
	if net.IsMainNet() {
		return 0
	}
	return 1
}

func formatIndex(i uint32) string {
	if i >= hdkeychain.HardenedKeyStart {
		return fmt.Sprintf("%d'", i-hdkeychain.HardenedKeyStart)
	}
	return fmt.Sprintf("%d", i)
}

// standardPath 根据前缀暗示的 purpose 和深度推断标准路径。
// 扩展公钥只记录最后一级的子编号, 中间未知的层级用 i 占位。
func standardPath(purpose, coin uint32, depth uint8, childIndex uint32) string {
	switch depth {
	case 0:
		return "m"
	case 1:
		return fmt.Sprintf("m/%d'", purpose)
	case 2:
		return fmt.Sprintf("m/%d'/%d'", purpose, coin)
	case 3:
		return fmt.Sprintf("m/%d'/%d'/%s", purpose, coin, formatIndex(childIndex))
	case 4:
		// BIP48 多签账户 m/48'/coin'/account'/script_type', 其余为 change 层
		return fmt.Sprintf("m/%d'/%d'/i'/%s", purpose, coin, formatIndex(childIndex))
	case 5:
		return fmt.Sprintf("m/%d'/%d'/i'/i/%s", purpose, coin, formatIndex(childIndex))
	}

	parts := make([]string, 0, depth+1)
	parts = append(parts, "m")
	for i := uint8(0); i < depth-1; i++ {
		parts = append(parts, "i")
	}
	parts = append(parts, formatIndex(childIndex))
	return strings.Join(parts, "/")
}
