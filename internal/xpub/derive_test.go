package xpub

import (
	"encoding/hex"
	"testing"

	"github.com/blockchainspectre/go-bip32"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"xpaddr/internal/errno"
)

const (
	tv1Child0   = "xpub68Gmy5EVb2BdFbj2LpWrk1M7obNuaPTpT5oh9QCCo5sRfqSHVYWex97WpDZzszdzHzxXDAzPLVSwybe4uPYkSk4G3gnrPqqkV9RyNzAcNJ1"
	tv1Child00  = "xpub6AvUGrnEpfvJ8L7GLRkBTByQ9uBvUHp9o5VxHrFxhvzV4dSWkySpNaBoLR9FpbnwRmTa69yLHF3QfcaxbWT7gWdwws5k4dpmJvqpEuMWwnj"
	tv1Child1   = "xpub68Gmy5EVb2BdHTYHpekwGdcbBWax19w9HwA2DaADYvuCSSgt4YAErxxSN1KWSnmyqkwRNbnTj3XiUBKmHeC8rTjLRPjSULcDKQQgfgJDppq"
	tv1Depth255 = "xpubEMpurUvVw83z56rYBiYN2J8t42v3PuYfYByQh5uhdE2tNfvndqheEYkU8JnXDSuHnZmsyqrDrMAjS8JS3wx273Y88Rcwo3tcfE1YVbwFNu2"

	bip44Xpub = "xpub6BosfCnifzxcFwrSzQiqu2DBVTshkCXacvNsWGYJVVhhawA7d4R5WSWGFNbi8Aw6ZRc1brxMyWMzG3DSSSSoekkudhUd9yLb6qx39T9nMdj"

	// secp256k1 阶 n 及 n-1
	curveOrder      = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	curveOrderMinus = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140"
	generatorPoint  = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
)

func TestChildVectors(t *testing.T) {
	master, err := Parse(tv1Master)
	require.NoError(t, err)

	c0, err := master.Child(0)
	require.NoError(t, err)
	require.Equal(t, tv1Child0, c0.String())
	require.Equal(t, "027c4b09ffb985c298afe7e5813266cbfcb7780b480ac294b0b43dc21f2be3d13c", hex.EncodeToString(c0.PublicKey[:]))
	require.Equal(t, uint8(1), c0.Depth)
	require.Equal(t, master.Fingerprint(), c0.ParentFingerprint)

	c00, err := c0.Child(0)
	require.NoError(t, err)
	require.Equal(t, tv1Child00, c00.String())
	require.Equal(t, "02756de182c5dd4b717ea87e693006da62dbb3cddaa4a5cad2ed1f5bbab755f0f5", hex.EncodeToString(c00.PublicKey[:]))

	c1, err := master.Child(1)
	require.NoError(t, err)
	require.Equal(t, tv1Child1, c1.String())

	viaPath, err := master.DerivePath(Path{Index: 0})
	require.NoError(t, err)
	require.Equal(t, c00, viaPath)
}

func TestDerivePathBip44(t *testing.T) {
	account, err := Parse(bip44Xpub)
	require.NoError(t, err)

	k, err := account.DerivePath(Path{Change: false, Index: 0})
	require.NoError(t, err)
	require.Equal(t, "03aaeb52dd7494c361049de67cc680e83ebcbbbdbeb13637d92cd845f70308af5e", hex.EncodeToString(k.PublicKey[:]))
	require.Equal(t, uint8(5), k.Depth)
	require.Equal(t, uint32(0), k.ChildNumber)
}

func TestPath(t *testing.T) {
	require.Equal(t, "0/7", Path{Index: 7}.String())
	require.Equal(t, "1/0", Path{Change: true}.String())
	require.Equal(t, uint32(1), Path{Change: true}.Branch())
}

// 与 hdkeychain 以及 go-bip32 两个独立实现对照
func TestChildMatchesLibraries(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := rapid.SampledFrom([]string{tv1Master, bip44Xpub, bip84Xpub, bip86Xpub}).Draw(t, "xpub")
		i := rapid.Uint32Range(0, hdkeychain.HardenedKeyStart-1).Draw(t, "index")

		k, err := Parse(src)
		require.NoError(t, err)
		ours, err := k.Child(i)
		require.NoError(t, err)

		ext, err := hdkeychain.NewKeyFromString(src)
		require.NoError(t, err)
		child, err := ext.Derive(i)
		require.NoError(t, err)
		pub, err := child.ECPubKey()
		require.NoError(t, err)
		require.Equal(t, pub.SerializeCompressed(), ours.PublicKey[:])
		require.Equal(t, child.ChainCode(), ours.ChainCode[:])
		require.Equal(t, child.String(), ours.String())

		bk, err := bip32.B58Deserialize(src)
		require.NoError(t, err)
		bchild, err := bk.NewChildKey(i)
		require.NoError(t, err)
		require.Equal(t, bchild.Key, ours.PublicKey[:])
	})
}

func TestChildErrors(t *testing.T) {
	master, err := Parse(tv1Master)
	require.NoError(t, err)

	_, err = master.Child(hdkeychain.HardenedKeyStart)
	require.ErrorIs(t, err, errno.ErrMalformedArgument)

	_, err = master.DerivePath(Path{Index: hdkeychain.HardenedKeyStart + 5})
	require.ErrorIs(t, err, errno.ErrMalformedArgument)

	deep, err := Parse(tv1Depth255)
	require.NoError(t, err)
	require.Equal(t, uint8(255), deep.Depth)
	_, err = deep.Child(0)
	require.ErrorIs(t, err, errno.ErrInvalidChildKey)
}

// HMAC 输出落在无效区间的概率可忽略, 直接对 tweakAdd 构造退化输入
func TestTweakAddDegenerate(t *testing.T) {
	mustHex := func(s string) []byte {
		b, err := hex.DecodeString(s)
		require.NoError(t, err)
		return b
	}
	master, err := Parse(tv1Master)
	require.NoError(t, err)

	tests := []struct {
		name   string
		parent []byte
		il     []byte
		want   errno.Errno
	}{
		{"IL equals n", master.PublicKey[:], mustHex(curveOrder), errno.ErrInvalidChildKey},
		{"IL above n", master.PublicKey[:], mustHex("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"), errno.ErrInvalidChildKey},
		{"IL zero", master.PublicKey[:], make([]byte, 32), errno.ErrInvalidChildKey},
		{"point at infinity", mustHex(generatorPoint), mustHex(curveOrderMinus), errno.ErrInvalidChildKey},
		{"bad parent", make([]byte, 33), mustHex("01"), errno.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tweakAdd(tt.parent, tt.il)
			require.ErrorIs(t, err, tt.want)
		})
	}

	// G + 1·G = 2G
	got, err := tweakAdd(mustHex(generatorPoint), mustHex("01"))
	require.NoError(t, err)
	require.Equal(t, "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5", hex.EncodeToString(got[:]))
}
