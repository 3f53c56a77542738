package address

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"

	"xpaddr/internal/chain"
	"xpaddr/internal/errno"
	"xpaddr/internal/hash"
	"xpaddr/internal/segwit"
)

// MaxMultisigKeys OP_1..OP_16 能表示的最大公钥数和门限
const MaxMultisigKeys = 16

// SortPubKeys BIP-67: 按压缩公钥字节升序排列, 返回新切片
func SortPubKeys(pubKeys [][]byte) [][]byte {
	sorted := slices.Clone(pubKeys)
	slices.SortFunc(sorted, bytes.Compare)
	return sorted
}

// RedeemScript 构造 T-of-M 赎回脚本:
//
//	OP_T <pubkey_1> ... <pubkey_M> OP_M OP_CHECKMULTISIG
//
// 公钥先按 BIP-67 排序, 因此结果与输入顺序无关。
func RedeemScript(pubKeys [][]byte, threshold int) ([]byte, error) {
	m := len(pubKeys)
	if m == 0 {
		return nil, errno.Wrap(errno.ErrEmptyKeySet, "no public keys")
	}
	if m > MaxMultisigKeys {
		return nil, errno.Wrap(errno.ErrThresholdRange, "%d keys exceeds maximum of %d", m, MaxMultisigKeys)
	}
	if threshold < 1 || threshold > m {
		return nil, errno.Wrap(errno.ErrThresholdRange, "threshold %d not in 1..%d", threshold, m)
	}

	builder := txscript.NewScriptBuilder().AddInt64(int64(threshold))
	for _, key := range SortPubKeys(pubKeys) {
		if len(key) != btcec.PubKeyBytesLenCompressed {
			return nil, errno.Wrap(errno.ErrMalformedArgument, "invalid compressed public key %x", key)
		}
		builder.AddData(key)
	}
	script, err := builder.AddInt64(int64(m)).AddOp(txscript.OP_CHECKMULTISIG).Script()
	if err != nil {
		return nil, fmt.Errorf("failed to create redeem script: %v", err)
	}
	return script, nil
}

// Multisig 生成多签地址
func Multisig(pubKeys [][]byte, threshold int, st ScriptType, net chain.Network) (string, error) {
	if !st.IsMultisig() {
		return "", errno.Wrap(errno.ErrUnsupportedScriptType, "%q is not a multisig script type", st)
	}
	params, err := net.Params()
	if err != nil {
		return "", err
	}
	redeemScript, err := RedeemScript(pubKeys, threshold)
	if err != nil {
		return "", err
	}

	switch st {
	case P2SH:
		// 赎回脚本必须能放进一次数据推送, 15 把公钥为上限
		if len(redeemScript) > txscript.MaxScriptElementSize {
			return "", errno.Wrap(errno.ErrThresholdRange,
				"redeem script of %d keys is %d bytes, exceeds P2SH limit of %d",
				len(pubKeys), len(redeemScript), txscript.MaxScriptElementSize)
		}
		return scriptHashAddress(redeemScript, params), nil

	case P2WSH:
		addr, err := segwit.EncodeAddress(params.Bech32HRPSegwit, 0, hash.Sha256(redeemScript))
		if err != nil {
			return "", fmt.Errorf("failed to create P2WSH address: %v", err)
		}
		return addr, nil

	case P2SHP2WSH:
		// OP_0 <32 字节脚本哈希>
		witnessScript, err := txscript.NewScriptBuilder().
			AddOp(txscript.OP_0).
			AddData(hash.Sha256(redeemScript)).
			Script()
		if err != nil {
			return "", fmt.Errorf("failed to create witness script: %v", err)
		}
		return scriptHashAddress(witnessScript, params), nil
	}

	return "", errno.Wrap(errno.ErrUnsupportedScriptType, "%q", st)
}
