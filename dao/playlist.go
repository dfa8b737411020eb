package dao

import (
	"Streamify/models"
	"Streamify/pkg/snowflake"
	"context"

	"gorm.io/gorm"
)

type PlaylistDAO struct {
	Repo[models.Playlist]
}

func NewPlaylistDAO(db *gorm.DB) *PlaylistDAO {
	return &PlaylistDAO{Repo: NewRepo[models.Playlist](db)}
}

// Delete 删除播放列表及其条目
func (d *PlaylistDAO) Delete(ctx context.Context, id int64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Playlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddVideo 重复添加由唯一索引拒绝，返回 gorm.ErrDuplicatedKey
func (d *PlaylistDAO) AddVideo(ctx context.Context, playlistID, videoID int64) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.PlaylistVideo{
			ID:         snowflake.GenID(),
			PlaylistID: playlistID,
			VideoID:    videoID,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Playlist{}).Where("id = ?", playlistID).UpdateColumn("updated_at", gorm.Expr("NOW()")).Error
	})
}

func (d *PlaylistDAO) RemoveVideo(ctx context.Context, playlistID, videoID int64) (bool, error) {
	var removed bool
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).Delete(&models.PlaylistVideo{})
		if res.Error != nil || res.RowsAffected == 0 {
			return res.Error
		}
		removed = true
		return tx.Model(&models.Playlist{}).Where("id = ?", playlistID).UpdateColumn("updated_at", gorm.Expr("NOW()")).Error
	})
	return removed, err
}
