// Package segwit 将见证程序编码为 Bech32 (v0) / Bech32m (v1+) 地址。
package segwit

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// EncodeAddress 编码见证版本和见证程序
func EncodeAddress(hrp string, witnessVersion byte, program []byte) (string, error) {
	if witnessVersion > 16 {
		return "", fmt.Errorf("invalid witness version: %d", witnessVersion)
	}
	if len(program) < 2 || len(program) > 40 {
		return "", fmt.Errorf("invalid witness program length: %d", len(program))
	}
	if witnessVersion == 0 && len(program) != 20 && len(program) != 32 {
		return "", fmt.Errorf("invalid v0 witness program length: %d", len(program))
	}

	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert witness program: %v", err)
	}
	data := append([]byte{witnessVersion}, converted...)

	// BIP350: v0 用 bech32, v1 及以上用 bech32m
	if witnessVersion == 0 {
		return bech32.Encode(hrp, data)
	}
	return bech32.EncodeM(hrp, data)
}
