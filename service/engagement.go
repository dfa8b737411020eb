package service

import (
	"Streamify/models"
	"Streamify/pkg/log"
	"Streamify/pkg/response"
	"Streamify/pkg/snowflake"
	"Streamify/types"
	"context"
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// State 某个用户对某个对象的点赞状态
type State string

const (
	StateNone     State = "NONE"
	StateLiked    State = "LIKED"
	StateDisliked State = "DISLIKED"
)

type RowOp int

const (
	RowCreate RowOp = iota + 1
	RowUpdate
	RowDelete
)

// CounterDelta 计数变化量，落库时用 GREATEST(x + delta, 0) 截断
type CounterDelta struct {
	Likes    int64
	Dislikes int64
}

// StateOf 由点赞记录推出当前状态
func StateOf(like *models.Like) State {
	if like == nil {
		return StateNone
	}
	if like.Type == models.LikeTypeDislike {
		return StateDisliked
	}
	return StateLiked
}

// Transition 点赞/点踩状态机
//
//	NONE     --like-->    LIKED     create  +1/0
//	NONE     --dislike--> DISLIKED  create  0/+1
//	LIKED    --like-->    NONE      delete  -1/0
//	LIKED    --dislike--> DISLIKED  update  -1/+1
//	DISLIKED --dislike--> NONE      delete  0/-1
//	DISLIKED --like-->    LIKED     update  +1/-1
func Transition(from State, action models.LikeType) (State, CounterDelta, RowOp) {
	switch from {
	case StateLiked:
		if action == models.LikeTypeLike {
			return StateNone, CounterDelta{Likes: -1}, RowDelete
		}
		return StateDisliked, CounterDelta{Likes: -1, Dislikes: 1}, RowUpdate
	case StateDisliked:
		if action == models.LikeTypeDislike {
			return StateNone, CounterDelta{Dislikes: -1}, RowDelete
		}
		return StateLiked, CounterDelta{Likes: 1, Dislikes: -1}, RowUpdate
	default:
		if action == models.LikeTypeLike {
			return StateLiked, CounterDelta{Likes: 1}, RowCreate
		}
		return StateDisliked, CounterDelta{Dislikes: 1}, RowCreate
	}
}

// ReactionStore 点赞切换所需的事务边界
type ReactionStore interface {
	Transaction(ctx context.Context, fn func(tx ReactionTx) error) error
}

// ReactionTx 事务内操作，LockTarget 必须最先调用
type ReactionTx interface {
	// LockTarget SELECT ... FOR UPDATE 锁定被点赞对象，不存在时返回 gorm.ErrRecordNotFound
	LockTarget(target models.Target) error
	// FindReaction 没有记录时返回 nil, nil
	FindReaction(actorID int64, target models.Target) (*models.Like, error)
	CreateReaction(like *models.Like) error
	UpdateReactionType(id int64, t models.LikeType) error
	DeleteReaction(id int64) error
	AdjustCounters(target models.Target, delta CounterDelta) error
	Counters(target models.Target) (likes, dislikes int64, err error)
}

var toggleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "streamify_engagement_toggles_total",
	Help: "Like/dislike state transitions",
}, []string{"target", "from", "to"})

var _ IEngagementService = (*EngagementService)(nil)

type IEngagementService interface {
	// Toggle 切换 actor 对 target 的点赞/点踩，返回切换后的状态与计数
	Toggle(ctx context.Context, actorID int64, target models.Target, action models.LikeType) (*types.ToggleResult, error)
}

type EngagementService struct {
	Store  ReactionStore
	Locker Locker // 可为空，未开启分布式锁时只依赖行锁
}

func (s *EngagementService) Toggle(ctx context.Context, actorID int64, target models.Target, action models.LikeType) (*types.ToggleResult, error) {
	if actorID <= 0 {
		return nil, response.Unauthorized("Unauthorized request")
	}
	if target.ID <= 0 {
		return nil, response.Validation("Invalid %s id", target.Kind)
	}
	if !action.Valid() {
		return nil, response.Validation("type must be either like or dislike")
	}

	if s.Locker != nil {
		unlock, err := s.Locker.Lock(ctx, "engagement:"+target.String()+":"+strconv.FormatInt(actorID, 10))
		if err != nil {
			return nil, response.Conflict("Another request for this %s is in progress", target.Kind)
		}
		defer unlock()
	}

	var (
		res  types.ToggleResult
		from State
		to   State
	)
	err := s.Store.Transaction(ctx, func(tx ReactionTx) error {
		if err := tx.LockTarget(target); err != nil {
			return err
		}

		existing, err := tx.FindReaction(actorID, target)
		if err != nil {
			return err
		}

		var (
			delta CounterDelta
			op    RowOp
		)
		from = StateOf(existing)
		to, delta, op = Transition(from, action)

		switch op {
		case RowCreate:
			err = tx.CreateReaction(&models.Like{
				ID:      snowflake.GenID(),
				ActorID: actorID,
				Target:  target,
				Type:    action,
			})
		case RowUpdate:
			err = tx.UpdateReactionType(existing.ID, action)
		case RowDelete:
			err = tx.DeleteReaction(existing.ID)
		}
		if err != nil {
			return err
		}

		if err := tx.AdjustCounters(target, delta); err != nil {
			return err
		}

		likes, dislikes, err := tx.Counters(target)
		if err != nil {
			return err
		}
		res = types.ToggleResult{State: string(to), Likes: likes, Dislikes: dislikes}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NotFound("%s not found", titleOf(target.Kind))
	}
	if err != nil {
		log.L.Error("toggle reaction failed",
			zap.String("target", target.String()),
			zap.Int64("actor", actorID),
			zap.Error(err),
		)
		return nil, response.Wrap(err, "Failed to toggle "+string(action))
	}

	toggleTotal.WithLabelValues(string(target.Kind), string(from), string(to)).Inc()
	return &res, nil
}

func titleOf(kind models.TargetKind) string {
	switch kind {
	case models.TargetVideo:
		return "Video"
	case models.TargetComment:
		return "Comment"
	}
	return string(kind)
}
