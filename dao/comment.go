package dao

import (
	"Streamify/models"
	"context"
	"encoding/json"

	"gorm.io/gorm"
)

type CommentDAO struct {
	Repo[models.Comment]
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{Repo: NewRepo[models.Comment](db)}
}

// AppendReply 在 JSON 数组末尾追加回复，单条 UPDATE 保证并发安全
func (d *CommentDAO) AppendReply(ctx context.Context, id int64, reply models.Reply) error {
	raw, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	res := d.Db.WithContext(ctx).Exec(
		"UPDATE comments SET replies = JSON_ARRAY_APPEND(COALESCE(replies, JSON_ARRAY()), '$', CAST(? AS JSON)), "+
			"updated_at = NOW() WHERE id = ?",
		string(raw), id,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCascade 删除评论及其点赞
func (d *CommentDAO) DeleteCascade(ctx context.Context, id int64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM likes WHERE target_kind = 'comment' AND target_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Exec("DELETE FROM comments WHERE id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
