package models

import "time"

type Playlist struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	OwnerID     int64     `gorm:"column:owner_id;not null;index:idx_owner_id" json:"ownerId,string"`
	Name        string    `gorm:"column:name;size:128;not null" json:"name"`
	Description string    `gorm:"column:description;size:1000" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo 播放列表中的视频，按 id（插入顺序）排序
type PlaylistVideo struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:false" json:"id,string"`
	PlaylistID int64     `gorm:"column:playlist_id;not null;uniqueIndex:uk_playlist_video,priority:1" json:"playlistId,string"`
	VideoID    int64     `gorm:"column:video_id;not null;uniqueIndex:uk_playlist_video,priority:2;index:idx_video_id" json:"videoId,string"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
