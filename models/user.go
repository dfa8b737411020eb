package models

import (
	"time"

	"gorm.io/datatypes"
)

// SocialLink 个人主页外链
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// User 用户表，不做物理删除
type User struct {
	ID               int64                           `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	Username         string                          `gorm:"column:username;size:64;not null;uniqueIndex:uk_username" json:"username"` // 小写
	Email            string                          `gorm:"column:email;size:255;not null;uniqueIndex:uk_email" json:"email"`          // 小写
	FullName         string                          `gorm:"column:full_name;size:128;not null;index:idx_full_name" json:"fullName"`
	Password         string                          `gorm:"column:password;size:255;not null" json:"-"`
	ProfileImage     string                          `gorm:"column:profile_image;size:512" json:"profileImage"`
	ProfileImageID   string                          `gorm:"column:profile_image_id;size:255" json:"-"`
	BannerImage      string                          `gorm:"column:banner_image;size:512" json:"bannerImage"`
	BannerImageID    string                          `gorm:"column:banner_image_id;size:255" json:"-"`
	Bio              string                          `gorm:"column:bio;size:255" json:"bio"`
	SocialLinks      datatypes.JSONSlice[SocialLink] `gorm:"column:social_links;type:json" json:"socialLinks"`
	SubscribersCount int64                           `gorm:"column:subscribers_count;not null;default:0" json:"subscribersCount"`
	RefreshToken     string                          `gorm:"column:refresh_token;size:512" json:"-"`
	CreatedAt        time.Time                       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time                       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// WatchHistory 观看记录，(user_id, video_id) 唯一，按 watched_at 排序
type WatchHistory struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uk_user_video,priority:1;index:idx_user_watched,priority:1" json:"userId,string"`
	VideoID   int64     `gorm:"column:video_id;not null;uniqueIndex:uk_user_video,priority:2;index:idx_video_id" json:"videoId,string"`
	WatchedAt time.Time `gorm:"column:watched_at;not null;index:idx_user_watched,priority:2" json:"watchedAt"`
}

func (WatchHistory) TableName() string {
	return "watch_history"
}
