package server

import (
	"Streamify/handler"
)

type Handlers struct {
	Health          *handler.Health
	User            *handler.User
	Video           *handler.Video
	CommentsHandler *handler.CommentsHandler
	Like            *handler.Like
	Subscription    *handler.Subscription
	Playlist        *handler.Playlist
}
