package dao

import (
	"Streamify/models"
	"Streamify/service"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ service.ReactionStore = (*LikeDAO)(nil)

type LikeDAO struct {
	Repo[models.Like]
}

func NewLikeDAO(db *gorm.DB) *LikeDAO {
	return &LikeDAO{Repo: NewRepo[models.Like](db)}
}

func (d *LikeDAO) Transaction(ctx context.Context, fn func(tx service.ReactionTx) error) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&reactionTx{tx: tx})
	})
}

type reactionTx struct {
	tx *gorm.DB
}

func targetTable(kind models.TargetKind) (string, error) {
	switch kind {
	case models.TargetVideo:
		return "videos", nil
	case models.TargetComment:
		return "comments", nil
	}
	return "", fmt.Errorf("unknown target kind %q", kind)
}

// LockTarget SELECT ... FOR UPDATE，同一对象的切换在此串行
func (r *reactionTx) LockTarget(target models.Target) error {
	table, err := targetTable(target.Kind)
	if err != nil {
		return err
	}
	var ids []int64
	err = r.tx.Table(table).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", target.ID).
		Pluck("id", &ids).Error
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reactionTx) FindReaction(actorID int64, target models.Target) (*models.Like, error) {
	var like models.Like
	res := r.tx.Where("actor_id = ? AND target_kind = ? AND target_id = ?", actorID, target.Kind, target.ID).
		Limit(1).Find(&like)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &like, nil
}

func (r *reactionTx) CreateReaction(like *models.Like) error {
	return r.tx.Create(like).Error
}

func (r *reactionTx) UpdateReactionType(id int64, t models.LikeType) error {
	return r.tx.Model(&models.Like{}).Where("id = ?", id).Update("type", t).Error
}

func (r *reactionTx) DeleteReaction(id int64) error {
	return r.tx.Where("id = ?", id).Delete(&models.Like{}).Error
}

// AdjustCounters 原子更新计数，GREATEST 保证不为负
func (r *reactionTx) AdjustCounters(target models.Target, delta service.CounterDelta) error {
	table, err := targetTable(target.Kind)
	if err != nil {
		return err
	}
	cols := map[string]any{}
	if delta.Likes != 0 {
		cols["likes"] = gorm.Expr("GREATEST(likes + ?, 0)", delta.Likes)
	}
	if delta.Dislikes != 0 {
		cols["dislikes"] = gorm.Expr("GREATEST(dislikes + ?, 0)", delta.Dislikes)
	}
	if len(cols) == 0 {
		return nil
	}
	return r.tx.Table(table).Where("id = ?", target.ID).UpdateColumns(cols).Error
}

func (r *reactionTx) Counters(target models.Target) (int64, int64, error) {
	table, err := targetTable(target.Kind)
	if err != nil {
		return 0, 0, err
	}
	var row struct {
		Likes    int64
		Dislikes int64
	}
	err = r.tx.Table(table).Select("likes", "dislikes").Where("id = ?", target.ID).Take(&row).Error
	return row.Likes, row.Dislikes, err
}
