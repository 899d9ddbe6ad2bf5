// Package service 定义业务层接口
// Handler 层依赖这里的接口而非具体实现
package service

import (
	"wavechat_server/internal/dto/request"
	"wavechat_server/internal/dto/respond"
)

// AuthService 认证业务接口
// 处理注册、登录、短信验证码与令牌刷新
type AuthService interface {
	// Register 用户注册
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 手机号密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// SmsLogin 短信验证码登录
	SmsLogin(req request.SmsLoginRequest) (*respond.LoginRespond, error)
	// SendSmsCode 发送短信验证码
	SendSmsCode(telephone string) error
	// Refresh 用 Refresh Token 换新的 Access Token
	Refresh(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error)
	// Resolve 校验 Access Token 并返回所属用户 ID，WebSocket 握手时使用
	Resolve(token string) (uint, error)
}

// UserService 用户业务接口
type UserService interface {
	// GetUserInfo 获取用户资料
	GetUserInfo(id uint) (*respond.UserInfoRespond, error)
	// UpdateUserInfo 更新用户资料
	UpdateUserInfo(id uint, req request.UpdateUserRequest) error
	// GetUserList 获取用户列表（排除自己）
	GetUserList(selfID uint) ([]respond.UserInfoRespond, error)
	// SearchUsers 按用户名模糊搜索
	SearchUsers(keyword string) ([]respond.UserInfoRespond, error)
}

// MessageService 消息查询业务接口
// 实时投递走事件路由器，这里只负责历史记录
type MessageService interface {
	// GetMessageList 获取两个用户之间的私聊历史
	GetMessageList(selfID, otherID uint) ([]respond.MessageRespond, error)
	// GetGroupMessageList 获取群聊历史
	GetGroupMessageList(groupID uint) ([]respond.MessageRespond, error)
	// GetConversations 获取会话列表（按对端用户聚合，取最近一条）
	GetConversations(selfID uint) ([]respond.ConversationRespond, error)
}

// GroupService 群组业务接口
type GroupService interface {
	// CreateGroup 创建群组，创建者自动成为 admin 成员
	CreateGroup(ownerID uint, req request.CreateGroupRequest) (*respond.GroupInfoRespond, error)
	// GetGroupInfo 获取群组信息
	GetGroupInfo(groupID uint) (*respond.GroupInfoRespond, error)
	// GetMembers 获取群成员列表
	GetMembers(groupID uint) ([]respond.GroupMemberRespond, error)
	// AddMember 拉人进群
	AddMember(groupID, userID uint) error
	// UpdateMemberRole 变更成员角色
	UpdateMemberRole(groupID, userID uint, role string) error
	// RemoveMember 移出成员
	RemoveMember(groupID, userID uint) error
}

// CallService 通话记录业务接口
type CallService interface {
	// GetCallHistory 获取用户参与的通话记录
	GetCallHistory(userID uint) ([]respond.CallRecordRespond, error)
}
