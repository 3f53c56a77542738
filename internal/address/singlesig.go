package address

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"xpaddr/internal/base58check"
	"xpaddr/internal/chain"
	"xpaddr/internal/errno"
	"xpaddr/internal/hash"
	"xpaddr/internal/segwit"
)

// Addresses 同一公钥的全部单签地址
type Addresses struct {
	P2PKH       string `json:"legacy"`
	P2SH_P2WPKH string `json:"nested_segwit"`
	P2WPKH      string `json:"native_segwit"`
	P2TR        string `json:"taproot"`
	P2TRBIP86   string `json:"taproot_bip86"`
}

// SingleSig 由 33 字节压缩公钥生成指定类型的单签地址
func SingleSig(pubKey []byte, st ScriptType, net chain.Network) (string, error) {
	if !st.IsSingleSig() {
		return "", errno.Wrap(errno.ErrUnsupportedScriptType, "%q is not a single-sig script type", st)
	}
	params, err := net.Params()
	if err != nil {
		return "", err
	}
	key, err := btcec.ParsePubKey(pubKey)
	if err != nil || len(pubKey) != btcec.PubKeyBytesLenCompressed {
		return "", errno.Wrap(errno.ErrMalformedArgument, "invalid compressed public key %x", pubKey)
	}

	switch st {
	case Legacy:
		return pubKeyHashAddress(hash.Hash160(pubKey), params), nil

	case NativeSegwit:
		addr, err := segwit.EncodeAddress(params.Bech32HRPSegwit, 0, hash.Hash160(pubKey))
		if err != nil {
			return "", fmt.Errorf("failed to create P2WPKH address: %v", err)
		}
		return addr, nil

	case NestedSegwit:
		// OP_0 <20 字节公钥哈希>
		witnessScript, err := txscript.NewScriptBuilder().
			AddOp(txscript.OP_0).
			AddData(hash.Hash160(pubKey)).
			Script()
		if err != nil {
			return "", fmt.Errorf("failed to create witness script: %v", err)
		}
		return scriptHashAddress(witnessScript, params), nil

	case Taproot:
		// 仅密钥路径, 直接使用 x-only 公钥作为见证程序, 不做 tweak
		addr, err := segwit.EncodeAddress(params.Bech32HRPSegwit, 1, pubKey[1:])
		if err != nil {
			return "", fmt.Errorf("failed to create P2TR address: %v", err)
		}
		return addr, nil

	case TaprootBIP86:
		outputKey := txscript.ComputeTaprootKeyNoScript(key)
		addr, err := segwit.EncodeAddress(params.Bech32HRPSegwit, 1, schnorr.SerializePubKey(outputKey))
		if err != nil {
			return "", fmt.Errorf("failed to create P2TR address: %v", err)
		}
		return addr, nil
	}

	return "", errno.Wrap(errno.ErrUnsupportedScriptType, "%q", st)
}

// AllSingleSig 从压缩公钥生成全部类型的单签地址
func AllSingleSig(pubKey []byte, net chain.Network) (*Addresses, error) {
	addresses := &Addresses{}
	targets := []struct {
		st  ScriptType
		dst *string
	}{
		{Legacy, &addresses.P2PKH},
		{NestedSegwit, &addresses.P2SH_P2WPKH},
		{NativeSegwit, &addresses.P2WPKH},
		{Taproot, &addresses.P2TR},
		{TaprootBIP86, &addresses.P2TRBIP86},
	}
	for _, t := range targets {
		addr, err := SingleSig(pubKey, t.st, net)
		if err != nil {
			return nil, err
		}
		*t.dst = addr
	}
	return addresses, nil
}

func pubKeyHashAddress(pubKeyHash []byte, params *chaincfg.Params) string {
	return base58check.Encode([]byte{params.PubKeyHashAddrID}, pubKeyHash)
}

func scriptHashAddress(script []byte, params *chaincfg.Params) string {
	return base58check.Encode([]byte{params.ScriptHashAddrID}, hash.Hash160(script))
}
