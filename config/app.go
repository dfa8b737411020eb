package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Name  string `json:"name" yaml:"name"`
	Debug bool   `json:"debug" yaml:"debug"`
	// HashSalt 媒体对象名 hashids 盐值
	HashSalt string `json:"hash_salt" yaml:"hash_salt"`
}
