package handler

import (
	"Streamify/config"
	"Streamify/middleware"
	"Streamify/pkg/context"
	"Streamify/pkg/response"
	"Streamify/service"

	"github.com/gin-gonic/gin"
)

type Like struct {
	Config      *config.Config
	LikeService service.ILikeService
}

func (l *Like) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/likes")
	g.GET("/videos", middleware.Auth(l.Config), context.Wrap(l.LikedVideos))
}

// LikedVideos 当前用户点赞过的视频
func (l *Like) LikedVideos(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	pg, err := pagination(c)
	if err != nil {
		return err
	}
	page, err := l.LikeService.LikedVideos(c.Request.Context(), userID, pg)
	if err != nil {
		return err
	}
	response.Success(c, page, "Liked videos fetched successfully")
	return nil
}
