// Package address 将派生出的公钥编码为单签或多签地址。
package address

import "xpaddr/internal/errno"

// ScriptType 地址脚本类型
type ScriptType string

// 单签
const (
	Legacy       ScriptType = "legacy"
	NestedSegwit ScriptType = "nested_segwit"
	NativeSegwit ScriptType = "native_segwit"
	Taproot      ScriptType = "taproot"
	// TaprootBIP86 BIP86 密钥路径 tweak 之后的 taproot 输出
	TaprootBIP86 ScriptType = "taproot_bip86"
)

// 多签
const (
	P2SH      ScriptType = "p2sh"
	P2WSH     ScriptType = "p2wsh"
	P2SHP2WSH ScriptType = "p2sh_p2wsh"
)

var (
	singleSigTypes = []ScriptType{Legacy, NestedSegwit, NativeSegwit, Taproot, TaprootBIP86}
	multisigTypes  = []ScriptType{P2SH, P2WSH, P2SHP2WSH}
)

// SingleSigTypes 全部单签类型
func SingleSigTypes() []ScriptType {
	return append([]ScriptType(nil), singleSigTypes...)
}

// MultisigTypes 全部多签类型
func MultisigTypes() []ScriptType {
	return append([]ScriptType(nil), multisigTypes...)
}

// ParseScriptType 只接受规范的小写标签
func ParseScriptType(s string) (ScriptType, error) {
	st := ScriptType(s)
	if st.IsSingleSig() || st.IsMultisig() {
		return st, nil
	}
	return "", errno.Wrap(errno.ErrUnsupportedScriptType, "%q", s)
}

func (t ScriptType) IsSingleSig() bool {
	for _, st := range singleSigTypes {
		if st == t {
			return true
		}
	}
	return false
}

func (t ScriptType) IsMultisig() bool {
	for _, st := range multisigTypes {
		if st == t {
			return true
		}
	}
	return false
}

func (t ScriptType) String() string {
	return string(t)
}
