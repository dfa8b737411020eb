package context

import (
	"Streamify/pkg/log"
	"Streamify/pkg/response"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
)

// debug 模式下 500 错误会带上原始错误信息
var debug bool

func SetDebug(v bool) {
	debug = v
}

type HandlerFunc func(*gin.Context) error

// Wrap 把返回 error 的处理函数转换成 gin.HandlerFunc，HTTP 状态码与 statusCode 一致
func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h(c)
		if err == nil {
			return
		}

		// 如果已经写过响应，直接返回
		if c.Writer.Written() {
			return
		}

		be := response.FromError(err)
		if be.Code >= http.StatusInternalServerError {
			log.L.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			if be.Kind == response.KindInternal && debug {
				response.Fail(c, be.Code, be.Msg, []string{err.Error()})
				return
			}
		}
		response.Fail(c, be.Code, be.Msg, be.Errors)
	}
}

func GetUserID(c *gin.Context) (int64, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, response.Unauthorized("Unauthorized request")
	}

	uid, ok := v.(int64)
	if !ok {
		return 0, errors.New("user_id 类型错误")
	}

	return uid, nil
}

// OptionalUserID 匿名请求返回 0
func OptionalUserID(c *gin.Context) int64 {
	uid, _ := GetUserID(c)
	return uid
}

// BindError 参数绑定/校验失败统一返回 400，每条校验信息放入 errors
func BindError(err error) error {
	return response.Validation("Invalid request parameters").WithErrors(strings.Split(err.Error(), "\n")...)
}
