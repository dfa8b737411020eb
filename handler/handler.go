package handler

import (
	"Streamify/pkg/pipeline"
	"Streamify/pkg/response"
	"Streamify/pkg/upload"
	"Streamify/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// pagination 读取 page / limit 查询参数
func pagination(c *gin.Context) (pipeline.Pagination, error) {
	return pipeline.ParsePagination(c.Query("page"), c.Query("limit"))
}

func paramID(c *gin.Context, key, name string) (int64, error) {
	return service.ParseID(c.Param(key), name)
}

// limitBody 在解析 multipart 之前按字段上限截断请求体，超限的上传不会落盘
func limitBody(c *gin.Context, rules ...upload.Rule) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, upload.BodyLimit(rules...))
}

// formError 请求体超限映射为文件约束错误，其余错误返回 fallback
func formError(err, fallback error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return response.FileConstraint("request body exceeds the maximum size of %d MB", tooLarge.Limit>>20)
	}
	return fallback
}
