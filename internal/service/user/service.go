// Package user 用户资料业务逻辑
package user

import (
	"go.uber.org/zap"

	"wavechat_server/internal/dao/mysql"
	"wavechat_server/internal/dto/request"
	"wavechat_server/internal/dto/respond"
	"wavechat_server/internal/model"
	"wavechat_server/pkg/errorx"
)

type userService struct {
	users mysql.UserRepository
}

// NewUserService 创建用户服务实例
func NewUserService(users mysql.UserRepository) *userService {
	return &userService{users: users}
}

// GetUserInfo 获取用户资料
func (s *userService) GetUserInfo(id uint) (*respond.UserInfoRespond, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("查询用户失败", zap.Uint("user_id", id), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := buildUserInfoRespond(user)
	return &rsp, nil
}

// UpdateUserInfo 更新用户资料
// 只更新请求里带的字段，空字段保持原值
func (s *userService) UpdateUserInfo(id uint, req request.UpdateUserRequest) error {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error("查询用户失败", zap.Uint("user_id", id), zap.Error(err))
		return errorx.ErrServerBusy
	}

	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.Signature != "" {
		user.Signature = req.Signature
	}
	if req.FcmToken != "" {
		user.FcmToken = req.FcmToken
	}

	if err := s.users.Update(user); err != nil {
		zap.L().Error("更新用户失败", zap.Uint("user_id", id), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// GetUserList 获取用户列表，排除自己
func (s *userService) GetUserList(selfID uint) ([]respond.UserInfoRespond, error) {
	users, err := s.users.FindAllExcept(selfID)
	if err != nil {
		zap.L().Error("查询用户列表失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return buildUserInfoList(users), nil
}

// SearchUsers 按用户名模糊搜索
func (s *userService) SearchUsers(keyword string) ([]respond.UserInfoRespond, error) {
	if keyword == "" {
		return []respond.UserInfoRespond{}, nil
	}
	users, err := s.users.SearchByUsername(keyword)
	if err != nil {
		zap.L().Error("搜索用户失败", zap.String("keyword", keyword), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return buildUserInfoList(users), nil
}

func buildUserInfoRespond(user *model.User) respond.UserInfoRespond {
	lastSeen := ""
	if user.LastSeen.Valid {
		lastSeen = user.LastSeen.Time.Format("2006-01-02 15:04:05")
	}
	return respond.UserInfoRespond{
		ID:             user.ID,
		Username:       user.Username,
		Phone:          user.Phone,
		ProfilePicture: user.ProfilePicture,
		Signature:      user.Signature,
		Status:         user.Status,
		LastSeen:       lastSeen,
	}
}

func buildUserInfoList(users []model.User) []respond.UserInfoRespond {
	rsp := make([]respond.UserInfoRespond, 0, len(users))
	for i := range users {
		rsp = append(rsp, buildUserInfoRespond(&users[i]))
	}
	return rsp
}
