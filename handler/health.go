package handler

import (
	"Streamify/pkg/context"
	"Streamify/pkg/log"
	"Streamify/pkg/response"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Health struct {
	Db    *gorm.DB
	Redis *redis.Client
}

func (h *Health) RegisterRouter(r gin.IRouter) {
	r.GET("/v1/healthcheck", context.Wrap(h.Check))
}

// Check 检查 mysql / redis 连通性，未注入的依赖跳过
func (h *Health) Check(c *gin.Context) error {
	ctx := c.Request.Context()
	status := gin.H{"status": "OK"}
	healthy := true

	if h.Db != nil {
		state := "up"
		sqlDB, err := h.Db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			log.L.Warn("healthcheck mysql", zap.Error(err))
			state, healthy = "down", false
		}
		status["mysql"] = state
	}
	if h.Redis != nil {
		state := "up"
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			log.L.Warn("healthcheck redis", zap.Error(err))
			state, healthy = "down", false
		}
		status["redis"] = state
	}

	if !healthy {
		status["status"] = "DEGRADED"
		response.Reply(c, http.StatusServiceUnavailable, status, "Service degraded")
		return nil
	}
	response.Success(c, status, "Service is healthy")
	return nil
}
