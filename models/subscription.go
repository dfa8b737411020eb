package models

import "time"

// Subscription 订阅关系，(subscriber_id, channel_id) 唯一
type Subscription struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	SubscriberID int64     `gorm:"column:subscriber_id;not null;uniqueIndex:uk_subscriber_channel,priority:1" json:"subscriberId,string"` // 订阅人
	ChannelID    int64     `gorm:"column:channel_id;not null;uniqueIndex:uk_subscriber_channel,priority:2;index:idx_channel_id" json:"channelId,string"` // 被订阅频道
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
