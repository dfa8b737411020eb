package config

const (
	StorageDriverOss   = "oss"
	StorageDriverMinio = "minio"
)

// Storage 媒体存储配置，driver 决定使用 OSS 还是 MinIO
type Storage struct {
	Driver string       `json:"driver" yaml:"driver"`
	Folder string       `json:"folder" yaml:"folder"`
	Oss    *OssConfig   `json:"oss" yaml:"oss"`
	Minio  *MinioConfig `json:"minio" yaml:"minio"`
}

type OssConfig struct {
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	Region          string `json:"region" yaml:"region"`
	Bucket          string `json:"bucket" yaml:"bucket"`
	AccessKeyID     string `json:"ak" yaml:"ak"`
	AccessKeySecret string `json:"sk" yaml:"sk"`
	// PublicHost 对外访问域名（CDN），为空时使用 bucket.endpoint
	PublicHost string `json:"public_host" yaml:"public_host"`
}

type MinioConfig struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	UseSSL    bool   `json:"use_ssl" yaml:"use_ssl"`
	PublicURL string `json:"public_url" yaml:"public_url"`
}

func ProvideStorageConfig(cfg *Config) *Storage {
	return cfg.Storage
}
