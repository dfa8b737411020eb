package service

import (
	"Streamify/models"
	"Streamify/pkg/log"
	"Streamify/pkg/pipeline"
	"Streamify/pkg/response"
	"Streamify/types"
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ ISubscriptionService = (*SubscriptionService)(nil)

type ISubscriptionService interface {
	// Toggle 订阅 / 取消订阅频道
	Toggle(ctx context.Context, subscriberID, channelID int64) (*types.SubscriptionResult, error)
	// Subscribers 频道的订阅者
	Subscribers(ctx context.Context, viewerID, channelID int64, pg pipeline.Pagination) (*pipeline.Page[types.ChannelCard], error)
	// SubscribedChannels 用户订阅的频道
	SubscribedChannels(ctx context.Context, viewerID, subscriberID int64, pg pipeline.Pagination) (*pipeline.Page[types.ChannelCard], error)
}

type SubscriptionService struct {
	Subscriptions SubscriptionRepository
	Users         UserRepository
	Views         ViewRepository
}

func (s *SubscriptionService) Toggle(ctx context.Context, subscriberID, channelID int64) (*types.SubscriptionResult, error) {
	if channelID <= 0 {
		return nil, response.Validation("Invalid channel id")
	}
	// 不能订阅自己
	if subscriberID == channelID {
		return nil, response.Validation("You cannot subscribe to your own channel")
	}

	subscribed, count, err := s.Subscriptions.Toggle(ctx, subscriberID, channelID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NotFound("Channel not found")
	}
	if err != nil {
		log.L.Error("toggle subscription failed",
			zap.Int64("subscriber_id", subscriberID), zap.Int64("channel_id", channelID), zap.Error(err))
		return nil, response.Wrap(err, "Failed to toggle subscription")
	}
	return &types.SubscriptionResult{Subscribed: subscribed, SubscribersCount: count}, nil
}

func (s *SubscriptionService) Subscribers(ctx context.Context, viewerID, channelID int64, pg pipeline.Pagination) (*pipeline.Page[types.ChannelCard], error) {
	if _, err := loadByID[models.User](ctx, s.Users.FindByID, channelID, "Channel"); err != nil {
		return nil, err
	}
	page, err := s.Views.Channels(ctx, SubscribersPipeline(channelID, viewerID, pg))
	return page, response.Wrap(err, "Failed to load subscribers")
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, viewerID, subscriberID int64, pg pipeline.Pagination) (*pipeline.Page[types.ChannelCard], error) {
	if _, err := loadByID[models.User](ctx, s.Users.FindByID, subscriberID, "User"); err != nil {
		return nil, err
	}
	page, err := s.Views.Channels(ctx, SubscribedChannelsPipeline(subscriberID, viewerID, pg))
	return page, response.Wrap(err, "Failed to load subscribed channels")
}
