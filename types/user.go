package types

import (
	"Streamify/models"
	"time"

	"gorm.io/datatypes"
)

// UserBrief 列表中展示的用户信息
type UserBrief struct {
	ID           int64  `gorm:"column:id" json:"id,string"`
	Username     string `gorm:"column:username" json:"username"`
	FullName     string `gorm:"column:full_name" json:"fullName"`
	ProfileImage string `gorm:"column:profile_image" json:"profileImage"`
}

// ChannelCard 订阅列表中的频道
type ChannelCard struct {
	UserBrief        `gorm:"embedded"`
	SubscribersCount int64     `gorm:"column:subscribers_count" json:"subscribersCount"`
	IsSubscribed     bool      `gorm:"column:is_subscribed" json:"isSubscribed"` // 当前用户是否订阅了该频道
	SubscribedAt     time.Time `gorm:"column:subscribed_at" json:"subscribedAt"`
}

// ChannelProfile 频道主页
type ChannelProfile struct {
	ID                        int64                                  `gorm:"column:id" json:"id,string"`
	Username                  string                                 `gorm:"column:username" json:"username"`
	FullName                  string                                 `gorm:"column:full_name" json:"fullName"`
	Email                     string                                 `gorm:"column:email" json:"email,omitempty"` // 仅本人可见
	ProfileImage              string                                 `gorm:"column:profile_image" json:"profileImage"`
	BannerImage               string                                 `gorm:"column:banner_image" json:"bannerImage"`
	Bio                       string                                 `gorm:"column:bio" json:"bio"`
	SocialLinks               datatypes.JSONSlice[models.SocialLink] `gorm:"column:social_links" json:"socialLinks"`
	SubscribersCount          int64                                  `gorm:"column:subscribers_count" json:"subscribersCount"`
	ChannelsSubscribedToCount int64                                  `gorm:"column:channels_subscribed_to_count" json:"channelsSubscribedToCount"`
	IsSubscribed              bool                                   `gorm:"column:is_subscribed" json:"isSubscribed"`
	CreatedAt                 time.Time                              `gorm:"column:created_at" json:"createdAt"`
}

// HistoryItem 观看记录
type HistoryItem struct {
	VideoCard `gorm:"embedded"`
	WatchedAt time.Time `gorm:"column:watched_at" json:"watchedAt"`
}

type RegisterReq struct {
	FullName string `form:"fullName" json:"fullName" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Username string `form:"username" json:"username" binding:"required,min=3,max=64"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

// LoginReq username 与 email 任选其一
type LoginReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UpdateProfileReq struct {
	FullName    *string              `json:"fullName"`
	Email       *string              `json:"email" binding:"omitempty,email"`
	Bio         *string              `json:"bio"`
	SocialLinks *[]models.SocialLink `json:"socialLinks"`
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginResp struct {
	User *models.User `json:"user"`
	TokenPair
}
