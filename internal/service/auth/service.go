// Package auth 提供注册、登录与令牌相关的业务逻辑
package auth

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"wavechat_server/internal/config"
	"wavechat_server/internal/dao/mysql"
	myredis "wavechat_server/internal/dao/redis"
	"wavechat_server/internal/dto/request"
	"wavechat_server/internal/dto/respond"
	"wavechat_server/internal/infrastructure/sms"
	"wavechat_server/internal/model"
	"wavechat_server/pkg/errorx"
	"wavechat_server/pkg/util/jwt"
)

// Service 认证服务实现
type Service struct {
	users mysql.UserRepository
	cache myredis.CacheService
	sms   sms.SmsService
}

// NewAuthService 创建认证服务实例
func NewAuthService(users mysql.UserRepository, cache myredis.CacheService, smsService sms.SmsService) *Service {
	return &Service{
		users: users,
		cache: cache,
		sms:   smsService,
	}
}

func refreshTokenKey(userID uint) string {
	return "user_token:" + strconv.FormatUint(uint64(userID), 10)
}

// Register 用户注册
// 用户名与手机号全局唯一，注册成功直接发放双 Token
func (s *Service) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	if _, err := s.users.FindByUsername(req.Username); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "用户名已被占用")
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error("查询用户名失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if _, err := s.users.FindByPhone(req.Phone); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "手机号已被注册")
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error("查询手机号失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	user := model.User{
		Username:    req.Username,
		Phone:       req.Phone,
		RawPassword: req.Password,
	}
	if err := s.users.Create(&user); err != nil {
		zap.L().Error("创建用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	accessToken, refreshToken, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &respond.RegisterRespond{
		ID:           user.ID,
		Username:     user.Username,
		Phone:        user.Phone,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Login 手机号密码登录
func (s *Service) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.users.FindByPhone(req.Phone)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error("查询用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
	}
	return s.buildLoginRespond(user)
}

// SmsLogin 短信验证码登录
func (s *Service) SmsLogin(req request.SmsLoginRequest) (*respond.LoginRespond, error) {
	user, err := s.users.FindByPhone(req.Phone)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error("查询用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	code, err := s.cache.Get(context.Background(), "auth_code_"+req.Phone)
	if err != nil {
		zap.L().Error("读取验证码失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if code == "" || code != req.Code {
		return nil, errorx.New(errorx.CodeInvalidParam, "验证码错误或已过期")
	}
	// 验证通过即作废，防止重放
	_ = s.cache.Delete(context.Background(), "auth_code_"+req.Phone)

	return s.buildLoginRespond(user)
}

// SendSmsCode 发送短信验证码
func (s *Service) SendSmsCode(telephone string) error {
	return s.sms.SendVerificationCode(telephone)
}

// Refresh 用 Refresh Token 换取新的 Access Token
// Token ID 必须与缓存中该用户的最新值一致，实现单点互踢
func (s *Service) Refresh(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, errorx.ErrUnauthorized
	}
	if claims.Subject != "refresh_token" || claims.TokenID == "" {
		return nil, errorx.ErrUnauthorized
	}

	validTokenID, err := s.cache.Get(context.Background(), refreshTokenKey(claims.UserID))
	if err != nil {
		zap.L().Error("读取 Token ID 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if validTokenID == "" || validTokenID != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "登录状态已失效，请重新登录")
	}

	accessToken, err := jwt.GenerateAccessToken(claims.UserID)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.RefreshTokenRespond{AccessToken: accessToken}, nil
}

// Resolve 校验 Access Token 并返回用户 ID
// WebSocket 握手通过 query 传令牌，无法走 Authorization 头中间件
func (s *Service) Resolve(token string) (uint, error) {
	claims, err := jwt.ParseToken(token)
	if err != nil {
		return 0, errorx.ErrUnauthorized
	}
	if claims.Subject != "access_token" {
		return 0, errorx.ErrUnauthorized
	}
	return claims.UserID, nil
}

// issueTokens 发放双 Token 并把 Refresh Token ID 写入缓存
func (s *Service) issueTokens(userID uint) (accessToken, refreshToken string, err error) {
	accessToken, err = jwt.GenerateAccessToken(userID)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}

	refreshToken, tokenID, err := jwt.GenerateRefreshToken(userID)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}

	expiry := time.Duration(config.GetConfig().JWTConfig.RefreshTokenExpiry) * time.Hour
	if err := s.cache.Set(context.Background(), refreshTokenKey(userID), tokenID, expiry); err != nil {
		// 缓存失败不阻塞登录，仅影响刷新链路
		zap.L().Error("存储 Token ID 失败", zap.Error(err))
	}
	return accessToken, refreshToken, nil
}

func (s *Service) buildLoginRespond(user *model.User) (*respond.LoginRespond, error) {
	accessToken, refreshToken, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &respond.LoginRespond{
		ID:             user.ID,
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
		IsAdmin:        user.IsAdmin,
		AccessToken:    accessToken,
		RefreshToken:   refreshToken,
	}, nil
}
