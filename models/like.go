package models

import (
	"strconv"
	"time"
)

type TargetKind string

const (
	TargetVideo   TargetKind = "video"
	TargetComment TargetKind = "comment"
)

// Target 点赞对象，只能通过 VideoTarget / CommentTarget 构造
type Target struct {
	Kind TargetKind `gorm:"column:kind;size:16;not null;uniqueIndex:uk_actor_target,priority:2;index:idx_target,priority:1" json:"kind"`
	ID   int64      `gorm:"column:id;not null;uniqueIndex:uk_actor_target,priority:3;index:idx_target,priority:2" json:"id,string"`
}

func VideoTarget(id int64) Target {
	return Target{Kind: TargetVideo, ID: id}
}

func CommentTarget(id int64) Target {
	return Target{Kind: TargetComment, ID: id}
}

func (t Target) String() string {
	return string(t.Kind) + ":" + strconv.FormatInt(t.ID, 10)
}

type LikeType string

const (
	LikeTypeLike    LikeType = "like"
	LikeTypeDislike LikeType = "dislike"
)

func (t LikeType) Valid() bool {
	return t == LikeTypeLike || t == LikeTypeDislike
}

// Like 点赞/点踩记录
// 唯一键: actor_id + target_kind + target_id
type Like struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	ActorID   int64     `gorm:"column:actor_id;not null;uniqueIndex:uk_actor_target,priority:1" json:"actorId,string"`
	Target    Target    `gorm:"embedded;embeddedPrefix:target_" json:"target"`
	Type      LikeType  `gorm:"column:type;size:16;not null" json:"type"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Like) TableName() string {
	return "likes"
}
