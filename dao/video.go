package dao

import (
	"Streamify/models"
	"context"

	"gorm.io/gorm"
)

type VideoDAO struct {
	Repo[models.Video]
}

func NewVideoDAO(db *gorm.DB) *VideoDAO {
	return &VideoDAO{Repo: NewRepo[models.Video](db)}
}

func (d *VideoDAO) IncrViews(ctx context.Context, id int64) error {
	return d.Model(ctx).Where("id = ?", id).UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// DeleteCascade 顺序：评论点赞 -> 评论 -> 视频点赞 -> 播放列表条目 -> 观看记录 -> 视频
func (d *VideoDAO) DeleteCascade(ctx context.Context, id int64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stmts := []string{
			"DELETE FROM likes WHERE target_kind = 'comment' AND target_id IN (SELECT id FROM comments WHERE video_id = ?)",
			"DELETE FROM comments WHERE video_id = ?",
			"DELETE FROM likes WHERE target_kind = 'video' AND target_id = ?",
			"DELETE FROM playlist_videos WHERE video_id = ?",
			"DELETE FROM watch_history WHERE video_id = ?",
		}
		for _, stmt := range stmts {
			if err := tx.Exec(stmt, id).Error; err != nil {
				return err
			}
		}

		res := tx.Exec("DELETE FROM videos WHERE id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
