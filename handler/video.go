package handler

import (
	"Streamify/config"
	"Streamify/middleware"
	"Streamify/pkg/context"
	"Streamify/pkg/response"
	"Streamify/pkg/upload"
	"Streamify/service"
	"Streamify/types"

	"github.com/gin-gonic/gin"
)

type Video struct {
	Config       *config.Config
	VideoService service.IVideoService
	LikeService  service.ILikeService
	Stager       *upload.Stager
}

func (v *Video) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(v.Config)
	optional := middleware.OptionalAuth(v.Config)

	g := r.Group("/v1/videos")
	g.GET("", optional, context.Wrap(v.Feed))
	g.GET("/:id", optional, context.Wrap(v.Detail))
	g.POST("/upload", authorize, context.Wrap(v.Upload))
	g.PATCH("/update/:id", authorize, context.Wrap(v.Update))
	g.PATCH("/updateThumbnail/:id", authorize, context.Wrap(v.UpdateThumbnail))
	g.PATCH("/toggle/publish/:id", authorize, context.Wrap(v.TogglePublish))
	g.DELETE("/deleteVideo/:id", authorize, context.Wrap(v.Delete))
	g.POST("/toggleLike", authorize, context.Wrap(v.ToggleLike))
}

// Feed 视频列表
func (v *Video) Feed(c *gin.Context) error {
	var q types.VideoFeedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return context.BindError(err)
	}
	page, err := v.VideoService.Feed(c.Request.Context(), &q)
	if err != nil {
		return err
	}
	response.Success(c, page, "Videos fetched successfully")
	return nil
}

func (v *Video) Detail(c *gin.Context) error {
	id, err := paramID(c, "id", "video id")
	if err != nil {
		return err
	}
	detail, err := v.VideoService.Detail(c.Request.Context(), context.OptionalUserID(c), id)
	if err != nil {
		return err
	}
	response.Success(c, detail, "Video fetched successfully")
	return nil
}

// Upload multipart：videoFile + thumbnail + 文本字段
func (v *Video) Upload(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	rules := []upload.Rule{
		v.Stager.Video(service.FieldVideoFile, true),
		v.Stager.Image(service.FieldThumbnail, true),
	}
	limitBody(c, rules...)
	var req types.UploadVideoReq
	if err := c.ShouldBind(&req); err != nil {
		return formError(err, context.BindError(err))
	}
	form, err := c.MultipartForm()
	if err != nil {
		return formError(err, response.Validation("%s and %s are required", service.FieldVideoFile, service.FieldThumbnail))
	}
	files, err := v.Stager.Stage(form, rules...)
	if err != nil {
		return err
	}

	video, err := v.VideoService.Upload(c.Request.Context(), userID, &req, files)
	if err != nil {
		return err
	}
	response.Created(c, video, "Video uploaded successfully")
	return nil
}

func (v *Video) Update(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "video id")
	if err != nil {
		return err
	}
	var req types.UpdateVideoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return context.BindError(err)
	}

	video, err := v.VideoService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		return err
	}
	response.Success(c, video, "Video updated successfully")
	return nil
}

func (v *Video) UpdateThumbnail(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "video id")
	if err != nil {
		return err
	}
	rule := v.Stager.Image(service.FieldThumbnail, true)
	limitBody(c, rule)
	form, err := c.MultipartForm()
	if err != nil {
		return formError(err, response.Validation("%s is required", service.FieldThumbnail))
	}
	files, err := v.Stager.Stage(form, rule)
	if err != nil {
		return err
	}

	video, err := v.VideoService.UpdateThumbnail(c.Request.Context(), userID, id, files[service.FieldThumbnail])
	if err != nil {
		return err
	}
	response.Success(c, video, "Thumbnail updated successfully")
	return nil
}

func (v *Video) TogglePublish(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "video id")
	if err != nil {
		return err
	}
	video, err := v.VideoService.TogglePublish(c.Request.Context(), userID, id)
	if err != nil {
		return err
	}
	response.Success(c, video, "Publish status toggled successfully")
	return nil
}

func (v *Video) Delete(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "video id")
	if err != nil {
		return err
	}
	if err := v.VideoService.Delete(c.Request.Context(), userID, id); err != nil {
		return err
	}
	response.Success(c, gin.H{}, "Video deleted successfully")
	return nil
}

// ToggleLike body: {videoId, type}
func (v *Video) ToggleLike(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.ToggleVideoLikeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return context.BindError(err)
	}

	res, err := v.LikeService.ToggleVideo(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, res, "Video reaction toggled")
	return nil
}
