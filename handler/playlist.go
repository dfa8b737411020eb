package handler

import (
	base "context"

	"Streamify/config"
	"Streamify/middleware"
	"Streamify/pkg/context"
	"Streamify/pkg/response"
	"Streamify/service"
	"Streamify/types"

	"github.com/gin-gonic/gin"
)

type Playlist struct {
	Config          *config.Config
	PlaylistService service.IPlaylistService
}

func (p *Playlist) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(p.Config)

	g := r.Group("/v1/playlists")
	g.POST("", authorize, context.Wrap(p.Create))
	g.GET("", authorize, context.Wrap(p.Mine))
	g.GET("/user/:userId", context.Wrap(p.ListByUser))
	g.GET("/:id", context.Wrap(p.Get))
	g.PATCH("/:id", authorize, context.Wrap(p.Update))
	g.DELETE("/:id", authorize, context.Wrap(p.Delete))
	g.PATCH("/add/:videoId/:playlistId", authorize, context.Wrap(p.AddVideo))
	g.PATCH("/remove/:videoId/:playlistId", authorize, context.Wrap(p.RemoveVideo))
}

func (p *Playlist) Create(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.CreatePlaylistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return context.BindError(err)
	}

	playlist, err := p.PlaylistService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Created(c, playlist, "Playlist created successfully")
	return nil
}

// Mine 当前用户的播放列表
func (p *Playlist) Mine(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	return p.list(c, userID)
}

func (p *Playlist) ListByUser(c *gin.Context) error {
	ownerID, err := paramID(c, "userId", "user id")
	if err != nil {
		return err
	}
	return p.list(c, ownerID)
}

func (p *Playlist) list(c *gin.Context, ownerID int64) error {
	pg, err := pagination(c)
	if err != nil {
		return err
	}
	page, err := p.PlaylistService.ListByUser(c.Request.Context(), ownerID, pg)
	if err != nil {
		return err
	}
	response.Success(c, page, "Playlists fetched successfully")
	return nil
}

func (p *Playlist) Get(c *gin.Context) error {
	id, err := paramID(c, "id", "playlist id")
	if err != nil {
		return err
	}
	pg, err := pagination(c)
	if err != nil {
		return err
	}
	detail, err := p.PlaylistService.Get(c.Request.Context(), id, pg)
	if err != nil {
		return err
	}
	response.Success(c, detail, "Playlist fetched successfully")
	return nil
}

func (p *Playlist) Update(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "playlist id")
	if err != nil {
		return err
	}
	var req types.UpdatePlaylistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return context.BindError(err)
	}

	view, err := p.PlaylistService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		return err
	}
	response.Success(c, view, "Playlist updated successfully")
	return nil
}

func (p *Playlist) Delete(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id", "playlist id")
	if err != nil {
		return err
	}
	if err := p.PlaylistService.Delete(c.Request.Context(), userID, id); err != nil {
		return err
	}
	response.Success(c, gin.H{}, "Playlist deleted successfully")
	return nil
}

func (p *Playlist) AddVideo(c *gin.Context) error {
	return p.changeVideo(c, p.PlaylistService.AddVideo, "Video added to playlist")
}

func (p *Playlist) RemoveVideo(c *gin.Context) error {
	return p.changeVideo(c, p.PlaylistService.RemoveVideo, "Video removed from playlist")
}

type playlistVideoFn func(ctx base.Context, actorID, playlistID, videoID int64) (*types.PlaylistView, error)

func (p *Playlist) changeVideo(c *gin.Context, fn playlistVideoFn, msg string) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	videoID, err := paramID(c, "videoId", "video id")
	if err != nil {
		return err
	}
	playlistID, err := paramID(c, "playlistId", "playlist id")
	if err != nil {
		return err
	}
	view, err := fn(c.Request.Context(), userID, playlistID, videoID)
	if err != nil {
		return err
	}
	response.Success(c, view, msg)
	return nil
}
