package cmd

import (
	"encoding/json"
	"io"

	"go.uber.org/zap"

	"xpaddr/internal/errno"
	"xpaddr/internal/logger"
)

type addressResult struct {
	Address string `json:"address"`
}

type addressesResult struct {
	Addresses []string `json:"addresses"`
}

type errorResult struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// writeJSON 每次调用输出一个 JSON 对象
func writeJSON(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

func writeError(w io.Writer, err error) {
	code, kind, msg := errno.Decode(err)
	logger.Debug("command failed", zap.Int("code", code), zap.String("kind", kind), zap.Error(err))
	_ = writeJSON(w, errorResult{Error: msg, Kind: kind})
}
