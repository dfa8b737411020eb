package dao

import (
	"Streamify/models"
	"Streamify/pkg/snowflake"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserDAO struct {
	Repo[models.User]
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		Repo: NewRepo[models.User](db),
	}
}

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return d.FindByWhere(ctx, "username = ?", username)
}

// FindByLogin 用户名或邮箱登录，空值不参与匹配
func (d *UserDAO) FindByLogin(ctx context.Context, username, email string) (*models.User, error) {
	if username == "" && email == "" {
		return nil, gorm.ErrRecordNotFound
	}
	if username == "" {
		return d.FindByWhere(ctx, "email = ?", email)
	}
	if email == "" {
		return d.FindByWhere(ctx, "username = ?", username)
	}
	return d.FindByWhere(ctx, "username = ? OR email = ?", username, email)
}

func (d *UserDAO) IsTaken(ctx context.Context, username, email string) (bool, error) {
	return d.IsExist(ctx, "username = ? OR email = ?", username, email)
}

// RotateRefreshToken 条件更新，令牌已被其他请求换掉时 RowsAffected 为 0
func (d *UserDAO) RotateRefreshToken(ctx context.Context, id int64, old, next string) (bool, error) {
	res := d.Db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND refresh_token = ?", id, old).
		UpdateColumn("refresh_token", next)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RecordWatch 写入观看记录，已存在时只刷新 watched_at
func (d *UserDAO) RecordWatch(ctx context.Context, userID, videoID int64, at time.Time) error {
	item := &models.WatchHistory{
		ID:        snowflake.GenID(),
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: at,
	}
	return d.Db.WithContext(ctx).Clauses(clause.OnConflict{
		DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
	}).Create(item).Error
}
