// Package hash 提供地址派生所需的哈希原语。
package hash

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck
)

// Sha256 单次 SHA-256
func Sha256(b []byte) []byte {
	return chainhash.HashB(b)
}

// DoubleSha256 双重 SHA-256 (Base58Check 校验和使用)
func DoubleSha256(b []byte) []byte {
	return chainhash.DoubleHashB(b)
}

// Hash160 RIPEMD160(SHA256(b))
func Hash160(b []byte) []byte {
	h := ripemd160.New()
	_, _ = h.Write(Sha256(b))
	return h.Sum(nil)
}
