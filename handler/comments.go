package handler

import (
	"Streamify/config"
	"Streamify/middleware"
	"Streamify/pkg/context"
	"Streamify/pkg/response"
	"Streamify/service"
	"Streamify/types"

	"github.com/gin-gonic/gin"
)

type CommentsHandler struct {
	Config         *config.Config
	CommentService service.ICommentService
	LikeService    service.ILikeService
}

func (h *CommentsHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(h.Config)
	optional := middleware.OptionalAuth(h.Config)

	g := r.Group("/v1/comments")
	g.GET("/:videoId", optional, context.Wrap(h.List))
	g.POST("/create/:videoId", authorize, context.Wrap(h.Create))
	g.PATCH("/edit/:id", authorize, context.Wrap(h.Edit))
	g.DELETE("/delete/:id", authorize, context.Wrap(h.Delete))
	g.POST("/reply/:id", authorize, context.Wrap(h.Reply))
	g.POST("/toggleLikeDislike", authorize, context.Wrap(h.ToggleLike))
}

// List 视频评论列表
func (h *CommentsHandler) List(c *gin.Context) error {
	videoID, err := paramID(c, "videoId", "video id")
	if err != nil {
		return err
	}
	pg, err := pagination(c)
	if err != nil {
		return err
	}
	page, err := h.CommentService.List(c.Request.Context(), context.OptionalUserID(c), videoID, pg)
	if err != nil {
		return err
	}
	response.Success(c, page, "Comments fetched successfully")
	return nil
}

func (h *CommentsHandler) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	videoID, err := paramID(c, "videoId", "video id")
	if err != nil {
		return err
	}
	var req types.CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return context.BindError(err)
	}

	comment, err := h.CommentService.Create(c.Request.Context(), userID, videoID, req.Text)
	if err != nil {
		return err
	}
	response.Created(c, comment, "Comment added successfully")
	return nil
}

func (h *CommentsHandler) Edit(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "comment id")
	if err != nil {
		return err
	}
	var req types.CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return context.BindError(err)
	}

	comment, err := h.CommentService.Edit(c.Request.Context(), userID, id, req.Text)
	if err != nil {
		return err
	}
	response.Success(c, comment, "Comment updated successfully")
	return nil
}

func (h *CommentsHandler) Delete(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "comment id")
	if err != nil {
		return err
	}
	if err := h.CommentService.Delete(c.Request.Context(), userID, id); err != nil {
		return err
	}
	response.Success(c, gin.H{}, "Comment deleted successfully")
	return nil
}

func (h *CommentsHandler) Reply(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "comment id")
	if err != nil {
		return err
	}
	var req types.CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return context.BindError(err)
	}

	reply, err := h.CommentService.Reply(c.Request.Context(), userID, id, req.Text)
	if err != nil {
		return err
	}
	response.Created(c, reply, "Reply added successfully")
	return nil
}

// ToggleLike body: {commentId, type}
func (h *CommentsHandler) ToggleLike(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.ToggleCommentLikeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return context.BindError(err)
	}

	res, err := h.LikeService.ToggleComment(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, res, "Comment reaction toggled")
	return nil
}
