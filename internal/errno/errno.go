// Package errno 定义地址派生的错误分类。
//
// 每个 Errno 都是可比较的值, 作为哨兵错误使用:
//
//	return errno.Wrap(errno.ErrDecode, "bad checksum")
//	...
//	if errors.Is(err, errno.ErrDecode) { ... }
package errno

import (
	"errors"
	"fmt"
)

// Errno 错误码 + 类别 + 描述
type Errno struct {
	Code    int
	Kind    string
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Wrap 为哨兵错误附加上下文, errors.Is 仍能匹配到哨兵
func Wrap(base Errno, format string, args ...any) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}

// Decode 将任意错误转换为 (code, kind, message)
func Decode(err error) (int, string, string) {
	if err == nil {
		return OK.Code, OK.Kind, OK.Message
	}

	var e Errno
	if errors.As(err, &e) {
		return e.Code, e.Kind, err.Error()
	}
	return InternalError.Code, InternalError.Kind, err.Error()
}

var (
	OK            = Errno{Code: 0, Kind: "OK", Message: "success"}
	InternalError = Errno{Code: 10000, Kind: "InternalError", Message: "internal error"}
)

// 派生错误
var (
	ErrDecode                = Errno{Code: 10001, Kind: "DecodeError", Message: "malformed extended key"}
	ErrUnknownVersion        = Errno{Code: 10002, Kind: "UnknownVersionError", Message: "unknown extended key version"}
	ErrInvalidChildKey       = Errno{Code: 10003, Kind: "InvalidChildKeyError", Message: "invalid child key"}
	ErrUnsupportedScriptType = Errno{Code: 10004, Kind: "UnsupportedScriptTypeError", Message: "unsupported script type"}
	ErrThresholdRange        = Errno{Code: 10005, Kind: "ThresholdRangeError", Message: "threshold out of range"}
	ErrEmptyKeySet           = Errno{Code: 10006, Kind: "EmptyKeySetError", Message: "empty key set"}
	ErrMalformedArgument     = Errno{Code: 10007, Kind: "MalformedArgumentError", Message: "malformed argument"}
)
