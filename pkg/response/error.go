package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Kind string

const (
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindForbidden      Kind = "forbidden"
	KindConflict       Kind = "conflict"
	KindUnauthorized   Kind = "unauthorized"
	KindUpstream       Kind = "upstream"
	KindFileConstraint Kind = "file_constraint"
	KindInternal       Kind = "internal"
)

type BizError struct {
	Kind   Kind
	Code   int
	Msg    string
	Errors []string
	cause  error
}

func (e *BizError) Error() string {
	if e.cause != nil {
		return e.Msg + ": " + e.cause.Error()
	}
	return e.Msg
}

func (e *BizError) Unwrap() error {
	return e.cause
}

// Is 同类错误视为相等，便于 errors.Is(err, response.ErrForbidden) 判断
func (e *BizError) Is(target error) bool {
	t, ok := target.(*BizError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Kind: kindOf(code),
		Code: code,
		Msg:  msg,
	}
}

// 哨兵错误，只用于 errors.Is 比较
var (
	ErrValidation     = &BizError{Kind: KindValidation}
	ErrNotFound       = &BizError{Kind: KindNotFound}
	ErrForbidden      = &BizError{Kind: KindForbidden}
	ErrConflict       = &BizError{Kind: KindConflict}
	ErrUnauthorized   = &BizError{Kind: KindUnauthorized}
	ErrUpstream       = &BizError{Kind: KindUpstream}
	ErrFileConstraint = &BizError{Kind: KindFileConstraint}
)

func Validation(format string, args ...any) *BizError {
	return &BizError{Kind: KindValidation, Code: http.StatusBadRequest, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *BizError {
	return &BizError{Kind: KindNotFound, Code: http.StatusNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *BizError {
	return &BizError{Kind: KindForbidden, Code: http.StatusForbidden, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *BizError {
	return &BizError{Kind: KindConflict, Code: http.StatusConflict, Msg: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *BizError {
	return &BizError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Msg: fmt.Sprintf(format, args...)}
}

func FileConstraint(format string, args ...any) *BizError {
	return &BizError{Kind: KindFileConstraint, Code: http.StatusBadRequest, Msg: fmt.Sprintf(format, args...)}
}

// Upstream 媒体存储失败（502）
func Upstream(msg string, cause error) *BizError {
	return &BizError{Kind: KindUpstream, Code: http.StatusBadGateway, Msg: msg, cause: cause}
}

// Persistence 数据库失败（500）
func Persistence(msg string, cause error) *BizError {
	return &BizError{Kind: KindUpstream, Code: http.StatusInternalServerError, Msg: msg, cause: cause}
}

// WithErrors 附加字段级错误
func (e *BizError) WithErrors(errs ...string) *BizError {
	e.Errors = append(e.Errors, errs...)
	return e
}

// FromError 把任意错误归类到错误分类中
func FromError(err error) *BizError {
	if err == nil {
		return nil
	}
	var be *BizError
	if errors.As(err, &be) {
		return be
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &BizError{Kind: KindNotFound, Code: http.StatusNotFound, Msg: "Resource not found", cause: err}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &BizError{Kind: KindConflict, Code: http.StatusConflict, Msg: "Resource already exists", cause: err}
	}
	return &BizError{Kind: KindInternal, Code: http.StatusInternalServerError, Msg: "Internal Server Error", cause: err}
}

// Wrap 持久化错误统一包装；已分类的错误原样返回
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	var be *BizError
	if errors.As(err, &be) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, gorm.ErrDuplicatedKey):
		return FromError(err)
	}
	return Persistence(msg, err)
}

func kindOf(code int) Kind {
	switch code {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusBadGateway:
		return KindUpstream
	}
	return KindInternal
}

func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				Fail(c, http.StatusInternalServerError, "Internal Server Error", nil)
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			be := FromError(c.Errors.Last().Err)
			Fail(c, be.Code, be.Msg, be.Errors)
			c.Abort()
		}
	}
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Success:    false,
		StatusCode: httpStatus,
		Message:    msg,
		Errors:     []string{},
		Data:       nil,
	})
}
