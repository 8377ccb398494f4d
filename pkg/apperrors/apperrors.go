package apperrors

import "errors"

// Kind 业务错误类别
// Handler 层据此映射 HTTP 状态码；调用方可区分
// "资源不存在" / "无权操作" / "唯一性冲突" / "状态机不允许" 等失败原因。
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound 引用的资源（职位/委托/用户等）不存在
	KindNotFound
	// KindForbidden 已认证但不是资源相关方，或角色不符
	KindForbidden
	// KindConflict 违反唯一性约束（重复委托、重复推荐等）
	KindConflict
	// KindInvalidTransition 状态机守卫失败（当前状态不允许该操作）
	KindInvalidTransition
	// KindValidation 请求字段缺失或非法
	KindValidation
	// KindStorage 底层存储失败（调用方可重试，核心层不重试）
	KindStorage
)

// Error 携带类别的业务错误
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Unwrap 支持 errors.Is / errors.As 链式匹配
func (e *Error) Unwrap() error { return e.err }

// Kind 返回错误类别
func (e *Error) Kind() Kind { return e.kind }

// New 创建指定类别的业务错误（Service 层用于定义哨兵错误）
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Wrap 包装底层错误并标注类别
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{kind: kind, msg: msg, err: err}
}

// KindOf 提取错误链中的类别；非业务错误返回 KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindUnknown
}

// IsKind 判断错误链中是否含指定类别
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
