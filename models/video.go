package models

import (
	"time"

	"gorm.io/datatypes"
)

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityUnlisted:
		return true
	}
	return false
}

// VideoFulltextIndex 标题 + 描述全文索引，AutoMigrate 之后单独创建
const VideoFulltextIndex = "ft_videos_title_description"

// Video 视频表，likes/dislikes/views 为冗余计数，永不为负
type Video struct {
	ID                int64                       `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	OwnerID           int64                       `gorm:"column:owner_id;not null;index:idx_owner_id" json:"ownerId,string"`
	Title             string                      `gorm:"column:title;size:255;not null" json:"title"`
	Description       string                      `gorm:"column:description;type:text;not null" json:"description"`
	URL               string                      `gorm:"column:url;size:512;not null" json:"url"`
	URLPublicID       string                      `gorm:"column:url_public_id;size:255;not null" json:"-"`
	Thumbnail         string                      `gorm:"column:thumbnail;size:512;not null" json:"thumbnail"`
	ThumbnailPublicID string                      `gorm:"column:thumbnail_public_id;size:255;not null" json:"-"`
	Duration          float64                     `gorm:"column:duration;not null;default:0" json:"duration"` // 秒
	Visibility        Visibility                  `gorm:"column:visibility;size:16;not null;default:public" json:"visibility"`
	Category          string                      `gorm:"column:category;size:64" json:"category"`
	Tags              datatypes.JSONSlice[string] `gorm:"column:tags;type:json" json:"tags"`
	Likes             int64                       `gorm:"column:likes;not null;default:0" json:"likes"`
	Dislikes          int64                       `gorm:"column:dislikes;not null;default:0" json:"dislikes"`
	Views             int64                       `gorm:"column:views;not null;default:0" json:"views"`
	IsPublished       bool                        `gorm:"column:is_published;not null;default:true;index:idx_published_created,priority:1" json:"isPublished"`
	CreatedAt         time.Time                   `gorm:"column:created_at;autoCreateTime;index:idx_published_created,priority:2" json:"createdAt"`
	UpdatedAt         time.Time                   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Video) TableName() string {
	return "videos"
}
