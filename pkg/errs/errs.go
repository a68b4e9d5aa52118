package errs

import (
	"errors"
	"fmt"

	"AiBeiTongServer/consts"
)

// Error 业务错误，携带 consts 中定义的错误码。
// Service 层返回 *Error，Handler 层用 CodeOf 提取错误码后交给 result 包渲染。
type Error struct {
	Code    int32  // 业务错误码
	Message string // 为空时取 consts.GetMessage(Code)
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return consts.GetMessage(e.Code)
}

// New 创建业务错误。
func New(code int32) *Error {
	return &Error{Code: code}
}

// Newf 创建带自定义消息的业务错误（如限流提示需要带剩余天数）。
func Newf(code int32, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf 提取业务错误码。
// 非业务错误（如数据库错误）一律归为内部错误。
func CodeOf(err error) int32 {
	if err == nil {
		return consts.CodeSuccess
	}
	var bizErr *Error
	if errors.As(err, &bizErr) {
		return bizErr.Code
	}
	return consts.CodeInternalError
}

// MessageOf 提取业务错误消息，用于把自定义消息透传给客户端。
func MessageOf(err error) string {
	var bizErr *Error
	if errors.As(err, &bizErr) {
		return bizErr.Message
	}
	return ""
}

// Is 判断错误是否携带指定业务码。
func Is(err error, code int32) bool {
	return CodeOf(err) == code
}
