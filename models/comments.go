package models

import (
	"time"

	"gorm.io/datatypes"
)

// CommentMaxLength 评论与回复的最大字符数
const CommentMaxLength = 1000

// Reply 内嵌在评论里的回复
type Reply struct {
	ID        int64     `json:"id,string"`
	UserID    int64     `json:"userId,string"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment 评论表
type Comment struct {
	ID        int64                      `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	VideoID   int64                      `gorm:"column:video_id;not null;index:idx_video_created,priority:1" json:"videoId,string"`
	OwnerID   int64                      `gorm:"column:owner_id;not null;index:idx_owner_id" json:"ownerId,string"`
	Text      string                     `gorm:"column:text;size:1000;not null" json:"text"`
	Likes     int64                      `gorm:"column:likes;not null;default:0" json:"likes"`
	Dislikes  int64                      `gorm:"column:dislikes;not null;default:0" json:"dislikes"`
	Replies   datatypes.JSONSlice[Reply] `gorm:"column:replies;type:json" json:"replies"`
	CreatedAt time.Time                  `gorm:"column:created_at;autoCreateTime;index:idx_video_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time                  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName 指定 GORM 使用的表名
func (Comment) TableName() string {
	return "comments"
}
