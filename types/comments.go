package types

import (
	"Streamify/models"
	"time"

	"gorm.io/datatypes"
)

type CommentView struct {
	ID         int64                             `gorm:"column:id" json:"id,string"`
	VideoID    int64                             `gorm:"column:video_id" json:"videoId,string"`
	Text       string                            `gorm:"column:text" json:"text"`
	Likes      int64                             `gorm:"column:likes" json:"likes"`
	Dislikes   int64                             `gorm:"column:dislikes" json:"dislikes"`
	Replies    datatypes.JSONSlice[models.Reply] `gorm:"column:replies" json:"replies"`
	IsLiked    bool                              `gorm:"column:is_liked" json:"isLiked"`
	IsDisliked bool                              `gorm:"column:is_disliked" json:"isDisliked"`
	CreatedAt  time.Time                         `gorm:"column:created_at" json:"createdAt"`
	Owner      UserBrief                         `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
}

type CommentReq struct {
	Text string `json:"text" binding:"required"`
}

type ToggleCommentLikeReq struct {
	CommentID string `json:"commentId" binding:"required"`
	Type      string `json:"type" binding:"required"`
}
