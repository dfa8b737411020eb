package models

// All 需要迁移的全部表
func All() []any {
	return []any{
		&User{},
		&WatchHistory{},
		&Video{},
		&Comment{},
		&Like{},
		&Subscription{},
		&Playlist{},
		&PlaylistVideo{},
	}
}
