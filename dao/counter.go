package dao

import (
	"context"

	"gorm.io/gorm"
)

// CounterDAO 用明细表重算冗余计数，修正异常退出等导致的偏差
type CounterDAO struct {
	Db *gorm.DB
}

func NewCounterDAO(db *gorm.DB) *CounterDAO {
	return &CounterDAO{Db: db}
}

var reconcileStmts = []string{
	"UPDATE videos v SET " +
		"likes = (SELECT COUNT(*) FROM likes l WHERE l.target_kind = 'video' AND l.target_id = v.id AND l.type = 'like'), " +
		"dislikes = (SELECT COUNT(*) FROM likes l WHERE l.target_kind = 'video' AND l.target_id = v.id AND l.type = 'dislike')",
	"UPDATE comments c SET " +
		"likes = (SELECT COUNT(*) FROM likes l WHERE l.target_kind = 'comment' AND l.target_id = c.id AND l.type = 'like'), " +
		"dislikes = (SELECT COUNT(*) FROM likes l WHERE l.target_kind = 'comment' AND l.target_id = c.id AND l.type = 'dislike')",
	"UPDATE users u SET " +
		"subscribers_count = (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id)",
}

// Reconcile 返回被修正的行数
func (d *CounterDAO) Reconcile(ctx context.Context) (int64, error) {
	var fixed int64
	for _, stmt := range reconcileStmts {
		res := d.Db.WithContext(ctx).Exec(stmt)
		if res.Error != nil {
			return fixed, res.Error
		}
		fixed += res.RowsAffected
	}
	return fixed, nil
}
