package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Errors     any    `json:"errors,omitempty"`
}

func Success(c *gin.Context, data any, msg ...string) {
	Reply(c, http.StatusOK, data, msg...)
}

func Created(c *gin.Context, data any, msg ...string) {
	Reply(c, http.StatusCreated, data, msg...)
}

func Reply(c *gin.Context, status int, data any, msg ...string) {
	message := "success"
	if len(msg) > 0 {
		message = msg[0]
	}
	c.JSON(status, Response{
		Success:    true,
		StatusCode: status,
		Data:       data,
		Message:    message,
	})
}

// Fail 失败响应，HTTP 状态码与 statusCode 保持一致
func Fail(c *gin.Context, status int, msg string, errs []string) {
	if errs == nil {
		errs = []string{}
	}
	c.JSON(status, Response{
		Success:    false,
		StatusCode: status,
		Data:       nil,
		Message:    msg,
		Errors:     errs,
	})
}
