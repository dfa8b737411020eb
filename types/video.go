package types

import (
	"Streamify/models"
	"time"

	"gorm.io/datatypes"
)

// VideoCard 视频列表项
type VideoCard struct {
	ID          int64             `gorm:"column:id" json:"id,string"`
	Title       string            `gorm:"column:title" json:"title"`
	Description string            `gorm:"column:description" json:"description"`
	URL         string            `gorm:"column:url" json:"url"`
	Thumbnail   string            `gorm:"column:thumbnail" json:"thumbnail"`
	Duration    float64           `gorm:"column:duration" json:"duration"`
	Views       int64             `gorm:"column:views" json:"views"`
	Likes       int64             `gorm:"column:likes" json:"likes"`
	Visibility  models.Visibility `gorm:"column:visibility" json:"visibility"`
	Category    string            `gorm:"column:category" json:"category"`
	IsPublished bool              `gorm:"column:is_published" json:"isPublished"`
	CreatedAt   time.Time         `gorm:"column:created_at" json:"createdAt"`
	Owner       UserBrief         `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

// VideoOwner 视频详情中的作者信息
type VideoOwner struct {
	UserBrief        `gorm:"embedded"`
	SubscribersCount int64 `gorm:"column:subscribers_count" json:"subscribersCount"`
	IsSubscribed     bool  `gorm:"column:is_subscribed" json:"isSubscribed"`
}

// VideoDetail 视频详情
type VideoDetail struct {
	ID          int64                       `gorm:"column:id" json:"id,string"`
	Title       string                      `gorm:"column:title" json:"title"`
	Description string                      `gorm:"column:description" json:"description"`
	URL         string                      `gorm:"column:url" json:"url"`
	Thumbnail   string                      `gorm:"column:thumbnail" json:"thumbnail"`
	Duration    float64                     `gorm:"column:duration" json:"duration"`
	Views       int64                       `gorm:"column:views" json:"views"`
	Likes       int64                       `gorm:"column:likes" json:"likes"`
	Dislikes    int64                       `gorm:"column:dislikes" json:"dislikes"`
	Visibility  models.Visibility           `gorm:"column:visibility" json:"visibility"`
	Category    string                      `gorm:"column:category" json:"category"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags" json:"tags"`
	IsPublished bool                        `gorm:"column:is_published" json:"isPublished"`
	IsLiked     bool                        `gorm:"column:is_liked" json:"isLiked"`
	IsDisliked  bool                        `gorm:"column:is_disliked" json:"isDisliked"`
	CreatedAt   time.Time                   `gorm:"column:created_at" json:"createdAt"`
	Owner       VideoOwner                  `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

// VideoFeedQuery GET /videos 查询参数
type VideoFeedQuery struct {
	Page     string `form:"page"`
	Limit    string `form:"limit"`
	Query    string `form:"query"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	UserID   string `form:"userId"`
}

// UploadVideoReq multipart 表单字段，文件为 videoFile + thumbnail
type UploadVideoReq struct {
	Title       string   `form:"title" binding:"required,max=255"`
	Description string   `form:"description" binding:"required,max=5000"`
	Category    string   `form:"category" binding:"max=64"`
	Visibility  string   `form:"visibility"`
	Tags        []string `form:"tags"`
}

type UpdateVideoReq struct {
	Title       *string   `json:"title" binding:"omitempty,max=255"`
	Description *string   `json:"description" binding:"omitempty,max=5000"`
	Category    *string   `json:"category" binding:"omitempty,max=64"`
	Visibility  *string   `json:"visibility"`
	Tags        *[]string `json:"tags"`
}

type ToggleVideoLikeReq struct {
	VideoID string `json:"videoId" binding:"required"`
	Type    string `json:"type" binding:"required"`
}

// ToggleResult 点赞切换后的状态与计数
type ToggleResult struct {
	State    string `json:"state"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}

// LikedVideo 点赞过的视频
type LikedVideo struct {
	VideoCard `gorm:"embedded"`
	LikedAt   time.Time `gorm:"column:liked_at" json:"likedAt"`
}
