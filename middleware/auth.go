package middleware

import (
	"Streamify/config"
	"Streamify/pkg/context"
	"Streamify/pkg/jwt"
	"Streamify/pkg/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// accessTokens 候选令牌：先 cookie，再 Authorization: Bearer
func accessTokens(c *gin.Context) []string {
	var tokens []string
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		tokens = append(tokens, token)
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// authenticate 任一候选令牌有效即通过，过期的 cookie 不会挡住有效的 Bearer
func authenticate(c *gin.Context, secret []byte) bool {
	for _, token := range accessTokens(c) {
		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, token)
		if err != nil {
			continue
		}
		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxUsername, claims.Username)
		return true
	}
	return false
}

// Auth 必须登录
func Auth(conf *config.Config) gin.HandlerFunc {
	secret := []byte(conf.Jwt.AccessSecret)
	return func(c *gin.Context) {
		if !authenticate(c, secret) {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized request")
			return
		}
		c.Next()
	}
}

// OptionalAuth 有合法令牌时注入用户信息，否则按匿名处理
func OptionalAuth(conf *config.Config) gin.HandlerFunc {
	secret := []byte(conf.Jwt.AccessSecret)
	return func(c *gin.Context) {
		authenticate(c, secret)
		c.Next()
	}
}
