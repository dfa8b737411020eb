package handler

import (
	"Streamify/config"
	"Streamify/middleware"
	"Streamify/pkg/context"
	"Streamify/pkg/response"
	"Streamify/pkg/upload"
	"Streamify/service"
	"Streamify/types"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type User struct {
	Config      *config.Config
	UserService service.IUserService
	Stager      *upload.Stager
}

func (u *User) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(u.Config)
	optional := middleware.OptionalAuth(u.Config)

	g := r.Group("/v1/users")
	g.POST("/register", context.Wrap(u.Register))
	g.POST("/login", context.Wrap(u.Login))
	g.POST("/refresh-access-token", context.Wrap(u.RefreshToken))
	g.POST("/logout", authorize, context.Wrap(u.Logout))
	g.POST("/change-password", authorize, context.Wrap(u.ChangePassword))
	g.GET("/current-user", authorize, context.Wrap(u.CurrentUser))
	g.PATCH("/update-profile", authorize, context.Wrap(u.UpdateProfile))
	g.PATCH("/update-profile-image", authorize, context.Wrap(u.UpdateProfileImage))
	g.PATCH("/update-banner-image", authorize, context.Wrap(u.UpdateBannerImage))
	g.GET("/c/:username", optional, context.Wrap(u.ChannelProfile))
	g.GET("/history", authorize, context.Wrap(u.WatchHistory))
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm)
}

// Register 注册，支持 multipart（可带头像、横幅）或 JSON
func (u *User) Register(c *gin.Context) error {
	var rules []upload.Rule
	multipart := isMultipart(c)
	if multipart {
		rules = []upload.Rule{
			u.Stager.Image(service.FieldProfileImage, false),
			u.Stager.Image(service.FieldBannerImage, false),
		}
		limitBody(c, rules...)
	}
	var req types.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		return formError(err, context.BindError(err))
	}

	files := upload.Files{}
	if multipart {
		form, err := c.MultipartForm()
		if err != nil {
			return formError(err, context.BindError(err))
		}
		files, err = u.Stager.Stage(form, rules...)
		if err != nil {
			return err
		}
	}

	user, err := u.UserService.Register(c.Request.Context(), &req, files)
	if err != nil {
		return err
	}
	response.Created(c, user, "User registered successfully")
	return nil
}

func (u *User) setTokenCookies(c *gin.Context, pair *types.TokenPair) {
	conf := u.Config.Jwt
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken, int(conf.AccessTTL().Seconds()), "/", "", conf.CookieSecure, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken, int(conf.RefreshTTL().Seconds()), "/", "", conf.CookieSecure, true)
}

func (u *User) clearTokenCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", u.Config.Jwt.CookieSecure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", "", u.Config.Jwt.CookieSecure, true)
}

func (u *User) Login(c *gin.Context) error {
	var req types.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return context.BindError(err)
	}

	resp, err := u.UserService.Login(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	u.setTokenCookies(c, &resp.TokenPair)
	response.Success(c, resp, "User logged in successfully")
	return nil
}

// RefreshToken cookie 优先，其次请求体
func (u *User) RefreshToken(c *gin.Context) error {
	token, _ := c.Cookie(middleware.RefreshTokenCookie)
	if token == "" {
		var req types.RefreshReq
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}

	pair, err := u.UserService.RefreshToken(c.Request.Context(), token)
	if err != nil {
		return err
	}
	u.setTokenCookies(c, pair)
	response.Success(c, pair, "Access token refreshed")
	return nil
}

func (u *User) Logout(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	if err := u.UserService.Logout(c.Request.Context(), userID); err != nil {
		return err
	}
	u.clearTokenCookies(c)
	response.Success(c, gin.H{}, "User logged out")
	return nil
}

func (u *User) ChangePassword(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return context.BindError(err)
	}

	if err := u.UserService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		return err
	}
	response.Success(c, gin.H{}, "Password changed successfully")
	return nil
}

func (u *User) CurrentUser(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	user, err := u.UserService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	response.Success(c, user, "Current user fetched successfully")
	return nil
}

func (u *User) UpdateProfile(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	var req types.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return context.BindError(err)
	}

	user, err := u.UserService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		return err
	}
	response.Success(c, user, "Account details updated successfully")
	return nil
}

func (u *User) UpdateProfileImage(c *gin.Context) error {
	return u.updateImage(c, service.FieldProfileImage, "Profile image updated successfully")
}

func (u *User) UpdateBannerImage(c *gin.Context) error {
	return u.updateImage(c, service.FieldBannerImage, "Banner image updated successfully")
}

func (u *User) updateImage(c *gin.Context, field, msg string) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	rule := u.Stager.Image(field, true)
	limitBody(c, rule)
	form, err := c.MultipartForm()
	if err != nil {
		return formError(err, response.Validation("%s is required", field))
	}
	files, err := u.Stager.Stage(form, rule)
	if err != nil {
		return err
	}

	user, err := u.UserService.UpdateImage(c.Request.Context(), userID, field, files[field])
	if err != nil {
		return err
	}
	response.Success(c, user, msg)
	return nil
}

func (u *User) ChannelProfile(c *gin.Context) error {
	profile, err := u.UserService.ChannelProfile(c.Request.Context(), context.OptionalUserID(c), c.Param("username"))
	if err != nil {
		return err
	}
	response.Success(c, profile, "User channel fetched successfully")
	return nil
}

func (u *User) WatchHistory(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return err
	}
	pg, err := pagination(c)
	if err != nil {
		return err
	}
	page, err := u.UserService.WatchHistory(c.Request.Context(), userID, pg)
	if err != nil {
		return err
	}
	response.Success(c, page, "Watch history fetched successfully")
	return nil
}
