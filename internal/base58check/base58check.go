// Package base58check 实现带多字节版本前缀的 Base58Check 编解码。
//
// btcutil/base58 的 CheckEncode/CheckDecode 只支持 1 字节版本, 扩展密钥使用
// 4 字节版本, 因此这里在 base58 字母表编解码之上自行拼接版本和校验和。
package base58check

import (
	"bytes"
	"errors"
	"slices"

	"github.com/btcsuite/btcd/btcutil/base58"

	"xpaddr/internal/hash"
)

// ChecksumLen 校验和长度
const ChecksumLen = 4

var (
	ErrInvalidCharacter = errors.New("invalid base58 character")
	ErrTooShort         = errors.New("decoded data too short")
	ErrChecksum         = errors.New("checksum mismatch")
)

func checksum(b []byte) []byte {
	return hash.DoubleSha256(b)[:ChecksumLen]
}

// Encode version || payload || checksum(version || payload)
func Encode(version, payload []byte) string {
	b := make([]byte, 0, len(version)+len(payload)+ChecksumLen)
	b = append(b, version...)
	b = append(b, payload...)
	b = append(b, checksum(b)...)
	return base58.Encode(b)
}

// Decode 校验并拆分出 versionLen 字节的版本与其余负载
func Decode(s string, versionLen int) (version, payload []byte, err error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 && len(s) > 0 {
		return nil, nil, ErrInvalidCharacter
	}
	if len(decoded) < versionLen+ChecksumLen {
		return nil, nil, ErrTooShort
	}

	body := decoded[:len(decoded)-ChecksumLen]
	if !bytes.Equal(checksum(body), decoded[len(decoded)-ChecksumLen:]) {
		return nil, nil, ErrChecksum
	}

	// 空负载返回非 nil 的空切片
	return slices.Clone(body[:versionLen]), slices.Clone(body[versionLen:]), nil
}
