package xpaddr

import (
	"bytes"
	"encoding/hex"
	"runtime/debug"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"

	"xpaddr/internal/hash"
)

// CurveModule 椭圆曲线运算所依赖的模块
const CurveModule = "github.com/btcsuite/btcd/btcec/v2"

// Availability 底层曲线库的可用性
type Availability struct {
	Available bool    `json:"available"`
	Name      string  `json:"name"`
	Version   *string `json:"version"`
}

// 生成元 G 的压缩编码及其 HASH160
const (
	generatorHex  = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	generatorH160 = "751e76e8199196d454941c45d1b3a323f1433bd6"
)

var availability = sync.OnceValue(probe)

// CheckAvailability 报告曲线库是否可用及其版本, 每个进程只探测一次
func CheckAvailability() Availability {
	return availability()
}

func probe() Availability {
	return Availability{
		Available: selfTest(),
		Name:      CurveModule,
		Version:   moduleVersion(CurveModule),
	}
}

// selfTest 1·G 必须等于生成元, 且哈希链路正常
func selfTest() bool {
	var one btcec.ModNScalar
	one.SetInt(1)
	var p btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&one, &p)
	p.ToAffine()
	got := btcec.NewPublicKey(&p.X, &p.Y).SerializeCompressed()

	want, _ := hex.DecodeString(generatorHex)
	wantH160, _ := hex.DecodeString(generatorH160)
	return bytes.Equal(got, want) && bytes.Equal(hash.Hash160(got), wantH160)
}

// moduleVersion 从构建信息读取依赖版本, 测试二进制等场景下可能为 nil
func moduleVersion(path string) *string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	for _, dep := range info.Deps {
		if dep.Path != path {
			continue
		}
		v := dep.Version
		if dep.Replace != nil && dep.Replace.Version != "" {
			v = dep.Replace.Version
		}
		if v == "" || v == "(devel)" {
			return nil
		}
		return &v
	}
	return nil
}
