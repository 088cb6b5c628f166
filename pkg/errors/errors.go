package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 应用错误
// Code 是五位业务错误码，前三位即HTTP状态码（40402 -> 404）
// Message 直接返回给客户端
// Err 是内部错误，只写日志，不序列化
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 由业务码推导HTTP状态码
func (e *AppError) HTTPStatus() int {
	status := e.Code / 100
	if status < 400 || status > 599 || http.StatusText(status) == "" {
		return http.StatusInternalServerError
	}
	return status
}

// Is 按错误码比较，使预定义错误可用于errors.Is
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...any) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装系统错误（数据库、网络等），对外只暴露message
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...any) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：前三位为HTTP状态码，后两位为细分类型
// - 400xx: 参数/业务规则校验失败
// - 401xx/403xx: 认证与授权
// - 404xx: 资源不存在
// - 409xx: 唯一字段冲突
// - 422xx: 引用的资源不可用
// - 500xx: 服务端错误

const (
	// 参数与业务规则（40000-40099）
	ErrCodeValidation        = 40000
	ErrCodeInsufficientStock = 40001
	ErrCodeTitleDuplicate    = 40002
	ErrCodeBindError         = 40003
	ErrCodeInvalidDate       = 40004

	// 认证授权（40100-40399）
	ErrCodeUnauthorized = 40100
	ErrCodeInvalidToken = 40101
	ErrCodeInvalidLogin = 40102
	ErrCodeForbidden    = 40300

	// 资源不存在（40400-40499）
	ErrCodeNotFound      = 40400
	ErrCodeUserNotFound  = 40401
	ErrCodeBookNotFound  = 40402
	ErrCodeOrderNotFound = 40403
	ErrCodeGenreNotFound = 40404

	// 冲突（40900-40999）
	ErrCodeConflict       = 40900
	ErrCodeGenreDuplicate = 40901
	ErrCodeEmailDuplicate = 40902

	// 引用不可用（42200-42299）
	ErrCodeUnprocessable = 42200
	ErrCodeGenreMissing  = 42201

	// 系统错误（50000-50099）
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal      = New(ErrCodeInternal, "Internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database error")
	ErrRedisError    = New(ErrCodeRedisError, "Cache service error")

	ErrUnauthorized = New(ErrCodeUnauthorized, "Authentication required. Please login first.")
	ErrInvalidToken = New(ErrCodeInvalidToken, "Invalid token")
	ErrInvalidLogin = New(ErrCodeInvalidLogin, "Invalid email or password")
	ErrForbidden    = New(ErrCodeForbidden, "Forbidden")

	ErrNotFound      = New(ErrCodeNotFound, "Resource not found")
	ErrUserNotFound  = New(ErrCodeUserNotFound, "User not found")
	ErrOrderNotFound = New(ErrCodeOrderNotFound, "Transaction not found")

	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "Email is already registered")

	ErrValidation  = New(ErrCodeValidation, "Validation failed")
	ErrBindError   = New(ErrCodeBindError, "Invalid request body")
	ErrInvalidDate = New(ErrCodeInvalidDate, "Invalid date format")
)

// =========================================
// 辅助函数
// =========================================

// Validation 参数校验错误
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError，非AppError包装成Internal
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error")
}

// HasCode 判断错误链上是否存在指定业务码
func HasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
