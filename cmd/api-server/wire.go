//go:build wireinject
// +build wireinject

package main

import (
	"Streamify/config"
	"Streamify/dao"
	"Streamify/dao/cache"
	"Streamify/handler"
	"Streamify/job"
	"Streamify/pkg/client"
	"Streamify/pkg/database"
	"Streamify/pkg/server"
	"Streamify/pkg/storage"
	"Streamify/pkg/upload"
	"Streamify/service"

	"github.com/google/wire"
)

func InitServer(cfg *config.Config) (*server.AppProvider, error) {
	wire.Build(
		database.NewDB,
		client.NewRedisClient,
		client.NewRedsync,
		config.ProvideStorageConfig,
		config.ProvideUploadConfig,
		storage.NewStore,
		storage.NewProber,
		upload.NewStager,
		server.NewGinEngine,

		cache.ProviderSet,
		dao.ProviderSet,
		service.ProviderSet,
		job.ProviderSet,

		wire.Struct(new(handler.Health), "*"),
		wire.Struct(new(handler.User), "*"),
		wire.Struct(new(handler.Video), "*"),
		wire.Struct(new(handler.CommentsHandler), "*"),
		wire.Struct(new(handler.Like), "*"),
		wire.Struct(new(handler.Subscription), "*"),
		wire.Struct(new(handler.Playlist), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),
	)
	return nil, nil
}
