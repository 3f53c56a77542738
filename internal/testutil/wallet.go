// Package testutil 从助记词构造测试用的扩展公钥和参考公钥。
//
// 这里会接触私钥, 只允许在测试中使用。
package testutil

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/cosmos/go-bip39"
)

// AbandonMnemonic BIP44/49/84/86 测试向量使用的助记词
const AbandonMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// BIP39Wallet BIP39钱包
type BIP39Wallet struct {
	Mnemonic string
	RootKey  *hdkeychain.ExtendedKey
	Network  *chaincfg.Params
}

// NewBIP39Wallet 从助记词创建钱包
func NewBIP39Wallet(mnemonic, passphrase string, params *chaincfg.Params) (*BIP39Wallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}

	seed := bip39.NewSeed(mnemonic, passphrase)
	masterKey, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %v", err)
	}

	return &BIP39Wallet{
		Mnemonic: mnemonic,
		RootKey:  masterKey,
		Network:  params,
	}, nil
}

// coinType 主网 0, 其余 1
func (w *BIP39Wallet) coinType() uint32 {
	if w.Network.Net == chaincfg.MainNetParams.Net {
		return 0
	}
	return 1
}

// DeriveAccount 派生账户私钥 m/purpose'/coin_type'/account'
func (w *BIP39Wallet) DeriveAccount(purpose, account uint32) (*hdkeychain.ExtendedKey, error) {
	path := []uint32{
		hdkeychain.HardenedKeyStart + purpose,
		hdkeychain.HardenedKeyStart + w.coinType(),
		hdkeychain.HardenedKeyStart + account,
	}
	return derive(w.RootKey, path)
}

// AccountXpub 账户扩展公钥, version 为空时保留规范 xpub/tpub 版本
func (w *BIP39Wallet) AccountXpub(purpose, account uint32, version []byte) (string, error) {
	accountKey, err := w.DeriveAccount(purpose, account)
	if err != nil {
		return "", err
	}
	pub, err := accountKey.Neuter()
	if err != nil {
		return "", fmt.Errorf("failed to neuter account key: %v", err)
	}
	if version != nil {
		pub, err = pub.CloneWithVersion(version)
		if err != nil {
			return "", fmt.Errorf("failed to set version: %v", err)
		}
	}
	return pub.String(), nil
}

// AddressPubKey 走私钥路径得到 m/purpose'/coin_type'/account'/change/index 的压缩公钥,
// 作为公钥派生的对照
func (w *BIP39Wallet) AddressPubKey(purpose, account, change, index uint32) ([]byte, error) {
	accountKey, err := w.DeriveAccount(purpose, account)
	if err != nil {
		return nil, err
	}
	key, err := derive(accountKey, []uint32{change, index})
	if err != nil {
		return nil, err
	}
	pub, err := key.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get public key: %v", err)
	}
	return pub.SerializeCompressed(), nil
}

func derive(key *hdkeychain.ExtendedKey, path []uint32) (*hdkeychain.ExtendedKey, error) {
	currentKey := key
	for _, index := range path {
		var err error
		currentKey, err = currentKey.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("failed to derive at index %d: %v", index, err)
		}
	}
	return currentKey, nil
}
