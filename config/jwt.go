package config

import "time"

type Jwt struct {
	AccessSecret  string `json:"access_secret" yaml:"access_secret"`
	RefreshSecret string `json:"refresh_secret" yaml:"refresh_secret"`
	AccessExpire  int    `json:"access_expire" yaml:"access_expire"`   // 秒
	RefreshExpire int    `json:"refresh_expire" yaml:"refresh_expire"` // 秒
	CookieSecure  bool   `json:"cookie_secure" yaml:"cookie_secure"`
}

func (j *Jwt) AccessTTL() time.Duration  { return seconds(j.AccessExpire) }
func (j *Jwt) RefreshTTL() time.Duration { return seconds(j.RefreshExpire) }
