package handler

import (
	"Streamify/config"
	"Streamify/middleware"
	"Streamify/pkg/context"
	"Streamify/pkg/response"
	"Streamify/service"

	"github.com/gin-gonic/gin"
)

type Subscription struct {
	Config              *config.Config
	SubscriptionService service.ISubscriptionService
}

func (s *Subscription) RegisterRouter(r gin.IRouter) {
	optional := middleware.OptionalAuth(s.Config)

	g := r.Group("/v1/subscriptions")
	g.POST("/c/:channelId", middleware.Auth(s.Config), context.Wrap(s.Toggle))
	g.GET("/c/:channelId", optional, context.Wrap(s.Subscribers))
	g.GET("/u/:id", optional, context.Wrap(s.SubscribedChannels))
}

// Toggle 订阅 / 取消订阅
func (s *Subscription) Toggle(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	channelID, err := paramID(c, "channelId", "channel id")
	if err != nil {
		return err
	}
	res, err := s.SubscriptionService.Toggle(c.Request.Context(), userID, channelID)
	if err != nil {
		return err
	}
	msg := "Unsubscribed successfully"
	if res.Subscribed {
		msg = "Subscribed successfully"
	}
	response.Success(c, res, msg)
	return nil
}

// Subscribers 频道的订阅者
func (s *Subscription) Subscribers(c *gin.Context) error {
	channelID, err := paramID(c, "channelId", "channel id")
	if err != nil {
		return err
	}
	pg, err := pagination(c)
	if err != nil {
		return err
	}
	page, err := s.SubscriptionService.Subscribers(c.Request.Context(), context.OptionalUserID(c), channelID, pg)
	if err != nil {
		return err
	}
	response.Success(c, page, "Subscribers fetched successfully")
	return nil
}

// SubscribedChannels 用户订阅的频道
func (s *Subscription) SubscribedChannels(c *gin.Context) error {
	subscriberID, err := paramID(c, "id", "subscriber id")
	if err != nil {
		return err
	}
	pg, err := pagination(c)
	if err != nil {
		return err
	}
	page, err := s.SubscriptionService.SubscribedChannels(c.Request.Context(), context.OptionalUserID(c), subscriberID, pg)
	if err != nil {
		return err
	}
	response.Success(c, page, "Subscribed channels fetched successfully")
	return nil
}
