// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入与聚合
package service

import (
	"wavechat_server/internal/dao/mysql"
	myredis "wavechat_server/internal/dao/redis"
	"wavechat_server/internal/infrastructure/sms"
	"wavechat_server/internal/service/auth"
	"wavechat_server/internal/service/call"
	"wavechat_server/internal/service/group"
	"wavechat_server/internal/service/message"
	"wavechat_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// Handler 层通过 service.Svc 访问各个 Service
type Services struct {
	Auth    AuthService
	User    UserService
	Message MessageService
	Group   GroupService
	Call    CallService
}

// NewServices 创建并注入所有 Service 实例
func NewServices(repos *mysql.Repositories, cache myredis.AsyncCacheService, smsService sms.SmsService) *Services {
	return &Services{
		Auth:    auth.NewAuthService(repos.User, cache, smsService),
		User:    user.NewUserService(repos.User),
		Message: message.NewMessageService(repos.Message, repos.User, cache),
		Group:   group.NewGroupService(repos.Group, repos.GroupMember, repos.User),
		Call:    call.NewCallService(repos.Call),
	}
}

// Svc 全局 Services 实例
var Svc *Services

// InitServices 初始化全局 Services 实例
// 在 Repository 与缓存初始化之后调用
func InitServices(repos *mysql.Repositories, cache myredis.AsyncCacheService, smsService sms.SmsService) {
	Svc = NewServices(repos, cache, smsService)
}
