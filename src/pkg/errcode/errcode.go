package errcode

import "fmt"

// Err is an API error carrying a stable code alongside the message.
type Err struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Err) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Msg)
}

func NewErr(code int, msg string) *Err {
	return &Err{Code: code, Msg: msg}
}

// NewCustomErr wraps an ad-hoc message into the generic custom code.
func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg)
}

const (
	CodeOK           = 200
	CodeCustom       = 7000
	CodeParam        = 7001
	CodeUnauthorized = 7002
	CodeTokenExpire  = 7003
	CodeUnexpected   = 7500
)

var (
	ErrParam        = NewErr(CodeParam, "invalid request param")
	ErrUnauthorized = NewErr(CodeUnauthorized, "unauthorized")
	ErrTokenExpire  = NewErr(CodeTokenExpire, "token expired")
	ErrUnexpected   = NewErr(CodeUnexpected, "internal server error")
)
