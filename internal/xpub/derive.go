package xpub

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"

	"xpaddr/internal/errno"
)

// Path 固定两级非强化路径 change/index
type Path struct {
	Change bool
	Index  uint32
}

// Branch change 分支索引: 外部 0, 找零 1
func (p Path) Branch() uint32 {
	if p.Change {
		return 1
	}
	return 0
}

func (p Path) String() string {
	return fmt.Sprintf("%d/%d", p.Branch(), p.Index)
}

// Child BIP32 公钥派生 CKDpub:
//
//	I = HMAC-SHA512(Key = chainCode, Data = serP(parentKey) || ser32(i))
//	childKey = serP(point(parse256(IL)) + parentKey), childChainCode = IR
func (k *ExtendedPublicKey) Child(i uint32) (*ExtendedPublicKey, error) {
	if i >= hdkeychain.HardenedKeyStart {
		return nil, errno.Wrap(errno.ErrMalformedArgument,
			"cannot derive hardened child %d from a public key", i)
	}
	if k.Depth == math.MaxUint8 {
		return nil, errno.Wrap(errno.ErrInvalidChildKey, "cannot derive beyond max depth")
	}

	data := make([]byte, 0, len(k.PublicKey)+4)
	data = append(data, k.PublicKey[:]...)
	data = binary.BigEndian.AppendUint32(data, i)

	mac := hmac.New(sha512.New, k.ChainCode[:])
	_, _ = mac.Write(data)
	ilr := mac.Sum(nil)
	il, ir := ilr[:32], ilr[32:]

	childKey, err := tweakAdd(k.PublicKey[:], il)
	if err != nil {
		return nil, fmt.Errorf("failed to derive child %d: %w", i, err)
	}

	child := &ExtendedPublicKey{
		Version:           k.Version,
		Depth:             k.Depth + 1,
		ParentFingerprint: k.Fingerprint(),
		ChildNumber:       i,
		PublicKey:         childKey,
	}
	copy(child.ChainCode[:], ir)
	return child, nil
}

// tweakAdd 计算 parent + IL·G, 检查 IL 为 0、IL >= n 以及结果为无穷远点
func tweakAdd(parent, il []byte) ([33]byte, error) {
	var out [33]byte

	var tweak btcec.ModNScalar
	if overflow := tweak.SetByteSlice(il); overflow {
		return out, errno.Wrap(errno.ErrInvalidChildKey, "IL is not below the curve order")
	}
	if tweak.IsZero() {
		return out, errno.Wrap(errno.ErrInvalidChildKey, "IL is zero")
	}

	parentKey, err := btcec.ParsePubKey(parent)
	if err != nil {
		return out, errno.Wrap(errno.ErrDecode, "invalid parent public key: %v", err)
	}

	var tweakJ, parentJ, childJ btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&tweak, &tweakJ)
	parentKey.AsJacobian(&parentJ)
	btcec.AddNonConst(&tweakJ, &parentJ, &childJ)

	if (childJ.X.IsZero() && childJ.Y.IsZero()) || childJ.Z.IsZero() {
		return out, errno.Wrap(errno.ErrInvalidChildKey, "child key is the point at infinity")
	}

	childJ.ToAffine()
	copy(out[:], btcec.NewPublicKey(&childJ.X, &childJ.Y).SerializeCompressed())
	return out, nil
}

// DerivePath 依次派生 change 和 index, 两次独立的单步派生
func (k *ExtendedPublicKey) DerivePath(p Path) (*ExtendedPublicKey, error) {
	branch, err := k.Child(p.Branch())
	if err != nil {
		return nil, err
	}
	return branch.Child(p.Index)
}
