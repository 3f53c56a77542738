package xpaddr

import (
	"xpaddr/internal/address"
	"xpaddr/internal/chain"
	"xpaddr/internal/xpub"
)

// Report 扩展公钥分析报告, 附带 0/0 处各类型的单签地址
type Report struct {
	*xpub.Info
	FirstReceive *address.Addresses `json:"first_receive"`
}

// Inspect 分析扩展公钥。net 为空时使用前缀所属的网络族。
func (d *Deriver) Inspect(s string, net chain.Network) (*Report, error) {
	if net != "" {
		if _, err := net.Params(); err != nil {
			return nil, err
		}
	}

	info, key, err := xpub.Inspect(s, net)
	if err != nil {
		return nil, err
	}
	if net == "" {
		net = key.Network()
	}

	pubKey, err := d.DeriveChild(key, xpub.Path{})
	if err != nil {
		return nil, err
	}
	first, err := address.AllSingleSig(pubKey, net)
	if err != nil {
		return nil, err
	}
	return &Report{Info: info, FirstReceive: first}, nil
}
