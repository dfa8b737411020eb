package dao

import (
	"Streamify/service"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUserDAO,
	wire.Bind(new(service.UserRepository), new(*UserDAO)),
	NewVideoDAO,
	wire.Bind(new(service.VideoRepository), new(*VideoDAO)),
	NewCommentDAO,
	wire.Bind(new(service.CommentRepository), new(*CommentDAO)),
	NewLikeDAO,
	wire.Bind(new(service.ReactionStore), new(*LikeDAO)),
	NewSubscriptionDAO,
	wire.Bind(new(service.SubscriptionRepository), new(*SubscriptionDAO)),
	NewPlaylistDAO,
	wire.Bind(new(service.PlaylistRepository), new(*PlaylistDAO)),
	NewViewDAO,
	wire.Bind(new(service.ViewRepository), new(*ViewDAO)),
	NewCounterDAO,
)
