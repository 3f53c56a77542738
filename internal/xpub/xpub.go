// Package xpub 解析、规范化并派生 BIP32 扩展公钥。
//
// 只处理公钥: 任何 xprv 族版本都会被当作未知版本拒绝。
package xpub

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"

	"xpaddr/internal/base58check"
	"xpaddr/internal/chain"
	"xpaddr/internal/errno"
	"xpaddr/internal/hash"
)

const (
	// SerializedLen 不含校验和的负载长度
	SerializedLen = 78

	versionLen = 4
	bodyLen    = SerializedLen - versionLen
)

// ExtendedPublicKey 扩展公钥
type ExtendedPublicKey struct {
	Version           [4]byte
	Depth             uint8
	ParentFingerprint [4]byte
	ChildNumber       uint32
	ChainCode         [32]byte
	PublicKey         [33]byte
}

// KeyVersion SLIP-132 版本信息
type KeyVersion struct {
	Prefix  string
	Version [4]byte
	Family  chain.Network
	// Purpose 前缀暗示的 BIP 用途 (44/49/84/48)
	Purpose uint32
}

var knownVersions = []KeyVersion{
	{"xpub", chaincfg.MainNetParams.HDPublicKeyID, chain.MainNet, 44},
	{"ypub", [4]byte{0x04, 0x9d, 0x7c, 0xb2}, chain.MainNet, 49},
	{"zpub", [4]byte{0x04, 0xb2, 0x47, 0x46}, chain.MainNet, 84},
	{"Ypub", [4]byte{0x02, 0x95, 0xb4, 0x3f}, chain.MainNet, 48},
	{"Zpub", [4]byte{0x02, 0xaa, 0x7e, 0xd3}, chain.MainNet, 48},
	{"tpub", chaincfg.TestNet3Params.HDPublicKeyID, chain.TestNet, 44},
	{"upub", [4]byte{0x04, 0x4a, 0x52, 0x62}, chain.TestNet, 49},
	{"vpub", [4]byte{0x04, 0x5f, 0x1c, 0xf6}, chain.TestNet, 84},
	{"Upub", [4]byte{0x02, 0x42, 0x89, 0xef}, chain.TestNet, 48},
	{"Vpub", [4]byte{0x02, 0x57, 0x54, 0x83}, chain.TestNet, 48},
}

// LookupVersion 按版本字节查找
func LookupVersion(version []byte) (KeyVersion, bool) {
	for _, v := range knownVersions {
		if bytes.Equal(v.Version[:], version) {
			return v, true
		}
	}
	return KeyVersion{}, false
}

// CanonicalVersion 网络族对应的规范版本 (xpub / tpub)
func CanonicalVersion(n chain.Network) [4]byte {
	if n.IsMainNet() {
		return chaincfg.MainNetParams.HDPublicKeyID
	}
	return chaincfg.TestNet3Params.HDPublicKeyID
}

// decode 解码并做结构校验, 返回版本信息和 74 字节的主体
func decode(s string) (KeyVersion, []byte, error) {
	if s == "" {
		return KeyVersion{}, nil, errno.Wrap(errno.ErrDecode, "empty extended key")
	}

	version, body, err := base58check.Decode(s, versionLen)
	if err != nil {
		return KeyVersion{}, nil, errno.Wrap(errno.ErrDecode, "%v", err)
	}
	if len(body) != bodyLen {
		return KeyVersion{}, nil, errno.Wrap(errno.ErrDecode,
			"invalid payload length %d, expected %d", len(body)+versionLen, SerializedLen)
	}

	kv, ok := LookupVersion(version)
	if !ok {
		return KeyVersion{}, nil, errno.Wrap(errno.ErrUnknownVersion, "%x", version)
	}
	return kv, body, nil
}

// Normalize 将任意 SLIP-132 前缀改写为规范的 xpub/tpub, 其余 74 字节不变。
// 已是规范前缀时原样返回。
func Normalize(s string) (string, chain.Network, error) {
	kv, body, err := decode(s)
	if err != nil {
		return "", "", err
	}

	canonical := CanonicalVersion(kv.Family)
	if kv.Version == canonical {
		return s, kv.Family, nil
	}
	return base58check.Encode(canonical[:], body), kv.Family, nil
}

// Parse 解析扩展公钥 (保留原始版本字节)
func Parse(s string) (*ExtendedPublicKey, error) {
	kv, body, err := decode(s)
	if err != nil {
		return nil, err
	}

	// version (4) || depth (1) || parent fingerprint (4) ||
	// child num (4) || chain code (32) || key data (33)
	k := &ExtendedPublicKey{
		Version:     kv.Version,
		Depth:       body[0],
		ChildNumber: binary.BigEndian.Uint32(body[5:9]),
	}
	copy(k.ParentFingerprint[:], body[1:5])
	copy(k.ChainCode[:], body[9:41])

	keyData := body[41:]
	if keyData[0] != 0x02 && keyData[0] != 0x03 {
		return nil, errno.Wrap(errno.ErrDecode, "key data is not a compressed public key")
	}
	if _, err := btcec.ParsePubKey(keyData); err != nil {
		return nil, errno.Wrap(errno.ErrDecode, "invalid public key: %v", err)
	}
	copy(k.PublicKey[:], keyData)

	return k, nil
}

// ParseNormalized 先规范化再解析
func ParseNormalized(s string) (*ExtendedPublicKey, chain.Network, error) {
	canonical, family, err := Normalize(s)
	if err != nil {
		return nil, "", err
	}
	k, err := Parse(canonical)
	if err != nil {
		return nil, "", err
	}
	return k, family, nil
}

// Serialize 78 字节负载
func (k *ExtendedPublicKey) Serialize() []byte {
	b := make([]byte, 0, SerializedLen)
	b = append(b, k.Version[:]...)
	b = append(b, k.Depth)
	b = append(b, k.ParentFingerprint[:]...)
	b = binary.BigEndian.AppendUint32(b, k.ChildNumber)
	b = append(b, k.ChainCode[:]...)
	b = append(b, k.PublicKey[:]...)
	return b
}

// String Base58Check 编码
func (k *ExtendedPublicKey) String() string {
	b := k.Serialize()
	return base58check.Encode(b[:versionLen], b[versionLen:])
}

// KeyVersion 版本信息; 通过 Parse 构造的密钥版本总是已知的
func (k *ExtendedPublicKey) KeyVersion() KeyVersion {
	kv, _ := LookupVersion(k.Version[:])
	return kv
}

// Network 由版本字节决定的网络族
func (k *ExtendedPublicKey) Network() chain.Network {
	return k.KeyVersion().Family
}

// Fingerprint HASH160(pubkey) 的前 4 字节
func (k *ExtendedPublicKey) Fingerprint() [4]byte {
	var fp [4]byte
	copy(fp[:], hash.Hash160(k.PublicKey[:]))
	return fp
}

// XOnly taproot 使用的 32 字节 x 坐标
func (k *ExtendedPublicKey) XOnly() []byte {
	return append([]byte(nil), k.PublicKey[1:]...)
}
