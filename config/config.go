package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App        *App        `json:"app" yaml:"app"`
	Server     *Server     `json:"server" yaml:"server"`
	Redis      *Redis      `json:"redis" yaml:"redis"`
	MySQL      *MySQL      `json:"mysql" yaml:"mysql"`
	Jwt        *Jwt        `json:"jwt" yaml:"jwt"`
	Storage    *Storage    `json:"storage" yaml:"storage"`
	Upload     *Upload     `json:"upload" yaml:"upload"`
	Engagement *Engagement `json:"engagement" yaml:"engagement"`
	Job        *Job        `json:"job" yaml:"job"`
}

type Server struct {
	Http       int    `json:"http" yaml:"http"`
	CorsOrigin string `json:"cors_origin" yaml:"cors_origin"`
}

func New(filename string) *Config {
	content, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}

	conf, err := Parse(content)
	if err != nil {
		panic(fmt.Sprintf("解析 %s 读取错误: %v", filename, err))
	}
	return conf
}

// Parse 解析配置内容并补齐默认值，环境变量中的密钥优先
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, err
	}
	conf.withDefaults()
	conf.overrideFromEnv()
	return &conf, nil
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}

func (c *Config) withDefaults() {
	if c.App == nil {
		c.App = &App{Env: "dev"}
	}
	if c.App.Name == "" {
		c.App.Name = "streamify"
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 8000
	}
	if c.Server.CorsOrigin == "" {
		c.Server.CorsOrigin = "*"
	}
	if c.Redis == nil {
		c.Redis = &Redis{Address: "127.0.0.1", Port: 6379}
	}
	if c.MySQL == nil {
		c.MySQL = &MySQL{}
	}
	if c.Jwt == nil {
		c.Jwt = &Jwt{}
	}
	if c.Jwt.AccessExpire == 0 {
		c.Jwt.AccessExpire = 86400
	}
	if c.Jwt.RefreshExpire == 0 {
		c.Jwt.RefreshExpire = 10 * 86400
	}
	if c.Storage == nil {
		c.Storage = &Storage{}
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverOss
	}
	if c.Storage.Folder == "" {
		c.Storage.Folder = "Streamify_Videotube"
	}
	if c.Upload == nil {
		c.Upload = &Upload{}
	}
	if c.Upload.TempDir == "" {
		c.Upload.TempDir = os.TempDir()
	}
	if c.Upload.MaxVideoSize == 0 {
		c.Upload.MaxVideoSize = 500
	}
	if c.Upload.MaxImageSize == 0 {
		c.Upload.MaxImageSize = 10
	}
	if c.Upload.Timeout == 0 {
		c.Upload.Timeout = 300
	}
	if c.Upload.StaleAfter == 0 {
		c.Upload.StaleAfter = 3600
	}
	if c.Engagement == nil {
		c.Engagement = &Engagement{}
	}
	if c.Engagement.LockTTL == 0 {
		c.Engagement.LockTTL = 5
	}
	if c.Engagement.ViewWindow == 0 {
		c.Engagement.ViewWindow = 3600
	}
	if c.Job == nil {
		c.Job = &Job{}
	}
	if c.Job.Reconcile == "" {
		c.Job.Reconcile = "@every 30m"
	}
	if c.Job.Sweep == "" {
		c.Job.Sweep = "@every 1h"
	}
}

func (c *Config) overrideFromEnv() {
	setFromEnv(&c.Jwt.AccessSecret, "JWT_ACCESS_SECRET")
	setFromEnv(&c.Jwt.RefreshSecret, "JWT_REFRESH_SECRET")
	setFromEnv(&c.MySQL.Password, "MYSQL_PASSWORD")
	setFromEnv(&c.Redis.Password, "REDIS_PASSWORD")
	if c.Storage.Oss != nil {
		setFromEnv(&c.Storage.Oss.AccessKeyID, "OSS_ACCESS_KEY_ID")
		setFromEnv(&c.Storage.Oss.AccessKeySecret, "OSS_ACCESS_KEY_SECRET")
	}
	if c.Storage.Minio != nil {
		setFromEnv(&c.Storage.Minio.AccessKey, "MINIO_ACCESS_KEY")
		setFromEnv(&c.Storage.Minio.SecretKey, "MINIO_SECRET_KEY")
	}
}

func setFromEnv(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
