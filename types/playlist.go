package types

import (
	"Streamify/pkg/pipeline"
	"time"
)

type PlaylistView struct {
	ID          int64     `gorm:"column:id" json:"id,string"`
	Name        string    `gorm:"column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`
	TotalVideos int64     `gorm:"column:total_videos" json:"totalVideos"`
	TotalViews  int64     `gorm:"column:total_views" json:"totalViews"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
	Owner       UserBrief `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

// PlaylistDetail 播放列表详情，只包含已发布的视频
type PlaylistDetail struct {
	PlaylistView
	Videos *pipeline.Page[VideoCard] `json:"videos"`
}

type CreatePlaylistReq struct {
	Name        string `json:"name" binding:"required,max=128"`
	Description string `json:"description" binding:"max=1000"`
}

type UpdatePlaylistReq struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=128"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}
