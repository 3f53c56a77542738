package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const (
	bip44Xpub = "xpub6BosfCnifzxcFwrSzQiqu2DBVTshkCXacvNsWGYJVVhhawA7d4R5WSWGFNbi8Aw6ZRc1brxMyWMzG3DSSSSoekkudhUd9yLb6qx39T9nMdj"
	bip84Zpub = "zpub6rFR7y4Q2AijBEqTUquhVz398htDFrtymD9xYYfG1m4wAcvPhXNfE3EfH1r1ADqtfSdVCToUG868RvUUkgDKf31mGDtKsAYz2oz2AGutZYs"

	cosigners = `["xpub6DkFAXWQ2dHxq2vatrt9qyA3bXYU4ToWQwCHbf5XB2mSTexcHZCeKS1VZYcPoBd5X8yVcbXFHJR9R8UCVpt82VX1VhR28mCyxUFL4r6KFrf",` +
		`"xpub6DzhyrnFFYQ1HimDiM388xHnDiRPNdZJFBmmxge3Y1WWcHLtMJLfRuhRHqnQCPbTj3fGKTuKFLHzzwpJkp5Dtc3UtLKZKaVZe1yqMBXd6Vk",` +
		`"xpub6EGx8sPr9FxPPE1rbZazhqWwpMXA3Hf5DYKtZbL7c4BSddzmQktp96UaTvecEkoCZysuaj79GMCFZYT1KKk7Ph2M3Kf5g8B82KZ8TZ9SKQR"]`
)

// execute 在隔离的工作目录中运行命令, 返回解析后的 JSON 输出和退出码
func execute(t *testing.T, args ...string) (map[string]any, int) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var out bytes.Buffer
	code := run(context.Background(), &out, args)

	var m map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &m), out.String())
	return m, code
}

func TestSingleCommand(t *testing.T) {
	m, code := execute(t, "single", bip44Xpub, "0", "legacy", "false", "mainnet")
	require.Equal(t, 0, code)
	require.Equal(t, map[string]any{"address": "1LqBGSKuX5yYUonjxT5qGfpUsXKYYWeabA"}, m)

	m, code = execute(t, "single", bip84Zpub, "0", "native_segwit", "true")
	require.Equal(t, 0, code)
	require.Equal(t, "bc1q8c6fshw2dlwun7ekn9qwf37cu2rn755upcp6el", m["address"])

	m, code = execute(t, "--network", "testnet", "single", bip44Xpub, "0", "legacy", "false")
	require.Equal(t, 0, code)
	require.Equal(t, "n1M8ZVQtL7QoFvGMg24D6b2ojWvFXCGpoS", m["address"])
}

func TestSingleCommandNetworkFromEnv(t *testing.T) {
	t.Setenv("XPADDR_NETWORK", "testnet")
	m, code := execute(t, "single", bip44Xpub, "0", "native_segwit", "false")
	require.Equal(t, 0, code)
	require.Equal(t, "tb1qmxrw6qdh5g3ztfcwm0et5l8mvws4eva2lsqjug", m["address"])
}

func TestMultiCommand(t *testing.T) {
	m, code := execute(t, "multi", cosigners, "2", "0", "p2wsh", "false", "mainnet")
	require.Equal(t, 0, code)
	require.Equal(t, "bc1q2sz6vvu6k7y9gtc6kfgfe0p6xkhmvmdlu97eecjkykpdktvps08scdjgr5", m["address"])

	m, code = execute(t, "multi", "[]", "1", "0", "p2wsh", "false")
	require.Equal(t, 1, code)
	require.Equal(t, "EmptyKeySetError", m["kind"])

	m, code = execute(t, "multi", cosigners, "0", "0", "p2sh", "false")
	require.Equal(t, 1, code)
	require.Equal(t, "ThresholdRangeError", m["kind"])
}

func TestRangeCommand(t *testing.T) {
	m, code := execute(t, "range", bip84Zpub, "0", "2", "native_segwit", "false", "--workers", "2")
	require.Equal(t, 0, code)
	require.Equal(t, []any{
		"bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu",
		"bc1qnjg0jd8228aq7egyzacy8cys3knf9xvrerkf9g",
	}, m["addresses"])

	m, code = execute(t, "range", bip84Zpub, "0", "1001", "native_segwit", "false")
	require.Equal(t, 1, code)
	require.Equal(t, "MalformedArgumentError", m["kind"])
}

func TestRangeCommandMaxCountFromEnv(t *testing.T) {
	t.Setenv("XPADDR_RANGE_MAX_COUNT", "1")

	m, code := execute(t, "range", bip84Zpub, "0", "2", "native_segwit", "false")
	require.Equal(t, 1, code)
	require.Equal(t, "MalformedArgumentError", m["kind"])

	m, code = execute(t, "range", bip84Zpub, "0", "1", "native_segwit", "false")
	require.Equal(t, 0, code)
	require.Equal(t, []any{"bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu"}, m["addresses"])
}

func TestInspectCommand(t *testing.T) {
	m, code := execute(t, "inspect", bip84Zpub)
	require.Equal(t, 0, code)
	require.Equal(t, "zpub", m["key_type"])
	require.Equal(t, "m/84'/0'/0'", m["derivation_path"])
	first, ok := m["first_receive"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu", first["native_segwit"])
}

func TestCheckCommand(t *testing.T) {
	m, code := execute(t, "check")
	require.Equal(t, 0, code)
	require.Equal(t, true, m["available"])
	require.Equal(t, "github.com/btcsuite/btcd/btcec/v2", m["name"])
	require.Contains(t, m, "version")
	require.NotContains(t, m, "error")
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind string
	}{
		{"flipped character", []string{"single", "xpub661MyMwAqRbcFtXgS5sYJABqqG2YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8", "0", "legacy", "false"}, "DecodeError"},
		{"unknown script type", []string{"single", bip44Xpub, "0", "p2pk", "false"}, "UnsupportedScriptTypeError"},
		{"bad index", []string{"single", bip44Xpub, "x", "legacy", "false"}, "MalformedArgumentError"},
		{"hardened index", []string{"single", bip44Xpub, "2147483648", "legacy", "false"}, "MalformedArgumentError"},
		{"bad change", []string{"single", bip44Xpub, "0", "legacy", "1"}, "MalformedArgumentError"},
		{"bad network", []string{"single", bip44Xpub, "0", "legacy", "false", "moon"}, "MalformedArgumentError"},
		{"missing args", []string{"single", bip44Xpub}, "MalformedArgumentError"},
		{"bad json", []string{"multi", "xpub1,xpub2", "1", "0", "p2wsh", "false"}, "MalformedArgumentError"},
		{"extra args to check", []string{"check", "now"}, "MalformedArgumentError"},
		{"non-canonical script type", []string{"single", bip44Xpub, "0", "  LEGACY ", "false"}, "UnsupportedScriptTypeError"},
		{"upper-case script type", []string{"multi", cosigners, "2", "0", "P2WSH", "false"}, "UnsupportedScriptTypeError"},
		{"network alias", []string{"single", bip44Xpub, "0", "legacy", "false", "Main"}, "MalformedArgumentError"},
		{"padded index", []string{"single", bip44Xpub, " 0", "legacy", "false"}, "MalformedArgumentError"},
		{"unknown command", []string{"frobnicate"}, "MalformedArgumentError"},
		{"unknown flag", []string{"single", "--bogus", bip44Xpub, "0", "legacy", "false"}, "MalformedArgumentError"},
		{"unknown root flag", []string{"--bogus", "check"}, "MalformedArgumentError"},
		{"bad workers flag", []string{"range", bip84Zpub, "0", "2", "native_segwit", "false", "--workers", "many"}, "MalformedArgumentError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, code := execute(t, tt.args...)
			require.Equal(t, 1, code)
			require.Equal(t, tt.kind, m["kind"])
			require.NotEmpty(t, m["error"])
			require.NotContains(t, m, "address")
		})
	}
}
