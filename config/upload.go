package config

import "time"

type Upload struct {
	TempDir      string `json:"temp_dir" yaml:"temp_dir"`
	MaxVideoSize int64  `json:"max_video_size" yaml:"max_video_size"` // MB
	MaxImageSize int64  `json:"max_image_size" yaml:"max_image_size"` // MB
	Timeout      int    `json:"timeout" yaml:"timeout"`               // 秒，单次远端上传超时
	StaleAfter   int    `json:"stale_after" yaml:"stale_after"`       // 秒，临时文件过期清理
}

func (u *Upload) UploadTimeout() time.Duration { return seconds(u.Timeout) }
func (u *Upload) StaleTTL() time.Duration      { return seconds(u.StaleAfter) }

func ProvideUploadConfig(cfg *Config) *Upload {
	return cfg.Upload
}
