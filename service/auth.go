package service

import (
	"Streamify/config"
	"Streamify/models"
	"Streamify/pkg/encrypt"
	"Streamify/pkg/jwt"
	"Streamify/pkg/log"
	"Streamify/pkg/pipeline"
	"Streamify/pkg/response"
	"Streamify/pkg/snowflake"
	"Streamify/pkg/upload"
	"Streamify/types"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	FieldProfileImage = "profileImage"
	FieldBannerImage  = "bannerImage"
)

var _ IUserService = (*UserService)(nil)

type IUserService interface {
	Register(ctx context.Context, req *types.RegisterReq, files upload.Files) (*models.User, error)
	Login(ctx context.Context, req *types.LoginReq) (*types.LoginResp, error)
	RefreshToken(ctx context.Context, token string) (*types.TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	ChangePassword(ctx context.Context, userID int64, req *types.ChangePasswordReq) error
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *types.UpdateProfileReq) (*models.User, error)
	// UpdateImage field 为 profileImage 或 bannerImage
	UpdateImage(ctx context.Context, userID int64, field string, file *upload.File) (*models.User, error)
	ChannelProfile(ctx context.Context, viewerID int64, username string) (*types.ChannelProfile, error)
	WatchHistory(ctx context.Context, userID int64, pg pipeline.Pagination) (*pipeline.Page[types.HistoryItem], error)
}

type UserService struct {
	Users  UserRepository
	Views  ViewRepository
	Media  IMediaService
	Config *config.Config
}

// Register 注册用户，头像与横幅可选
func (s *UserService) Register(ctx context.Context, req *types.RegisterReq, files upload.Files) (*models.User, error) {
	defer files.Cleanup()

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)
	if username == "" || email == "" || fullName == "" || req.Password == "" {
		return nil, response.Validation("All fields are required")
	}

	taken, err := s.Users.IsTaken(ctx, username, email)
	if err != nil {
		return nil, response.Wrap(err, "Failed to check user")
	}
	if taken {
		return nil, response.Conflict("User with email or username already exists")
	}

	batch := s.Media.NewBatch()
	defer batch.Rollback(ctx)

	user := &models.User{
		ID:       snowflake.GenID(),
		Username: username,
		Email:    email,
		FullName: fullName,
	}
	if f := files[FieldProfileImage]; f != nil {
		obj, err := batch.Put(ctx, f)
		if err != nil {
			return nil, err
		}
		user.ProfileImage, user.ProfileImageID = obj.URL, obj.PublicID
	}
	if f := files[FieldBannerImage]; f != nil {
		obj, err := batch.Put(ctx, f)
		if err != nil {
			return nil, err
		}
		user.BannerImage, user.BannerImageID = obj.URL, obj.PublicID
	}

	if user.Password, err = encrypt.HashPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.Conflict("User with email or username already exists")
		}
		return nil, response.Wrap(err, "Failed to register user")
	}
	batch.Commit()

	log.L.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// Login 用户名或邮箱登录
func (s *UserService) Login(ctx context.Context, req *types.LoginReq) (*types.LoginResp, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		return nil, response.Validation("username or email is required")
	}

	user, err := s.Users.FindByLogin(ctx, username, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.Unauthorized("Invalid user credentials")
	}
	if err != nil {
		return nil, response.Wrap(err, "Failed to load user")
	}
	if !encrypt.VerifyPassword(user.Password, req.Password) {
		return nil, response.Unauthorized("Invalid user credentials")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &types.LoginResp{User: user, TokenPair: *pair}, nil
}

// RefreshToken 刷新令牌只能使用一次
func (s *UserService) RefreshToken(ctx context.Context, token string) (*types.TokenPair, error) {
	if token == "" {
		return nil, response.Unauthorized("Unauthorized request")
	}
	claims, err := jwt.ParseToken([]byte(s.Config.Jwt.RefreshSecret), jwt.TypeRefresh, token)
	if err != nil {
		return nil, response.Unauthorized("Invalid refresh token")
	}

	user, err := s.Users.FindByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.Unauthorized("Invalid refresh token")
	}
	if err != nil {
		return nil, response.Wrap(err, "Failed to load user")
	}
	if user.RefreshToken != token {
		return nil, response.Unauthorized("Refresh token is expired or used")
	}

	pair, err := s.signTokens(user)
	if err != nil {
		return nil, err
	}
	// 并发刷新时只有一个请求能换掉库里的旧令牌
	rotated, err := s.Users.RotateRefreshToken(ctx, user.ID, token, pair.RefreshToken)
	if err != nil {
		return nil, response.Wrap(err, "Failed to save refresh token")
	}
	if !rotated {
		return nil, response.Unauthorized("Refresh token is expired or used")
	}
	return pair, nil
}

func (s *UserService) signTokens(user *models.User) (*types.TokenPair, error) {
	conf := s.Config.Jwt
	access, err := jwt.GenerateToken([]byte(conf.AccessSecret), user.ID, user.Username, jwt.TypeAccess, conf.AccessTTL())
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.GenerateToken([]byte(conf.RefreshSecret), user.ID, user.Username, jwt.TypeRefresh, conf.RefreshTTL())
	if err != nil {
		return nil, err
	}
	return &types.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) issueTokens(ctx context.Context, user *models.User) (*types.TokenPair, error) {
	pair, err := s.signTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.Users.UpdateFields(ctx, user.ID, map[string]any{"refresh_token": pair.RefreshToken}); err != nil {
		return nil, response.Wrap(err, "Failed to save refresh token")
	}
	user.RefreshToken = pair.RefreshToken
	return pair, nil
}

func (s *UserService) Logout(ctx context.Context, userID int64) error {
	return response.Wrap(s.Users.UpdateFields(ctx, userID, map[string]any{"refresh_token": ""}), "Failed to logout")
}

func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *types.ChangePasswordReq) error {
	user, err := loadByID(ctx, s.Users.FindByID, userID, "User")
	if err != nil {
		return err
	}
	if !encrypt.VerifyPassword(user.Password, req.OldPassword) {
		return response.Validation("Invalid old password")
	}
	hashed, err := encrypt.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return response.Wrap(s.Users.UpdateFields(ctx, userID, map[string]any{"password": hashed}), "Failed to change password")
}

func (s *UserService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	return loadByID(ctx, s.Users.FindByID, userID, "User")
}

// UpdateProfile 只更新请求中出现的字段
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *types.UpdateProfileReq) (*models.User, error) {
	fields := map[string]any{}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, response.Validation("fullName cannot be empty")
		}
		fields["full_name"] = name
	}
	if req.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Bio != nil {
		bio := strings.TrimSpace(*req.Bio)
		if len([]rune(bio)) > 255 {
			return nil, response.Validation("bio must be at most 255 characters")
		}
		fields["bio"] = bio
	}
	if req.SocialLinks != nil {
		fields["social_links"] = datatypes.JSONSlice[models.SocialLink](*req.SocialLinks)
	}
	if len(fields) == 0 {
		return nil, response.Validation("At least one field is required")
	}

	if err := s.Users.UpdateFields(ctx, userID, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.Conflict("Email is already in use")
		}
		return nil, response.Wrap(err, "Failed to update profile")
	}
	return s.CurrentUser(ctx, userID)
}

// UpdateImage 先上传新图、再写库、最后删除旧图
func (s *UserService) UpdateImage(ctx context.Context, userID int64, field string, file *upload.File) (*models.User, error) {
	defer file.Remove()

	var urlCol, idCol string
	switch field {
	case FieldProfileImage:
		urlCol, idCol = "profile_image", "profile_image_id"
	case FieldBannerImage:
		urlCol, idCol = "banner_image", "banner_image_id"
	default:
		return nil, response.Validation("unknown image field %s", field)
	}
	if file == nil {
		return nil, response.Validation("%s is required", field)
	}

	user, err := loadByID(ctx, s.Users.FindByID, userID, "User")
	if err != nil {
		return nil, err
	}
	old := user.ProfileImageID
	if field == FieldBannerImage {
		old = user.BannerImageID
	}

	batch := s.Media.NewBatch()
	defer batch.Rollback(ctx)

	obj, err := batch.Put(ctx, file)
	if err != nil {
		return nil, err
	}
	if err := s.Users.UpdateFields(ctx, userID, map[string]any{urlCol: obj.URL, idCol: obj.PublicID}); err != nil {
		return nil, response.Wrap(err, "Failed to update "+field)
	}
	batch.Commit()

	s.Media.Delete(ctx, MediaRef{PublicID: old, Kind: file.Kind})
	return s.CurrentUser(ctx, userID)
}

func (s *UserService) ChannelProfile(ctx context.Context, viewerID int64, username string) (*types.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, response.Validation("username is missing")
	}
	user, err := s.Users.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NotFound("Channel does not exist")
	}
	if err != nil {
		return nil, response.Wrap(err, "Failed to load channel")
	}

	profile, err := s.Views.ChannelProfile(ctx, ChannelProfilePipeline(user.ID, viewerID, user.ID == viewerID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NotFound("Channel does not exist")
	}
	return profile, response.Wrap(err, "Failed to load channel")
}

func (s *UserService) WatchHistory(ctx context.Context, userID int64, pg pipeline.Pagination) (*pipeline.Page[types.HistoryItem], error) {
	page, err := s.Views.WatchHistory(ctx, WatchHistoryPipeline(userID, pg))
	return page, response.Wrap(err, "Failed to load watch history")
}
