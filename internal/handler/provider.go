// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
package handler

import (
	"wavechat_server/internal/service"
	"wavechat_server/internal/service/chat"
)

// Handlers 聚合所有 Handler 实例
// Router 层通过此结构注册路由
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Message *MessageHandler
	Group   *GroupHandler
	Call    *CallHandler
	Ws      *WsHandler
}

// NewHandlers 创建并注入所有 Handler 实例
func NewHandlers(svc *service.Services, chatServer *chat.ChatServer) *Handlers {
	return &Handlers{
		Auth:    NewAuthHandler(svc.Auth),
		User:    NewUserHandler(svc.User),
		Message: NewMessageHandler(svc.Message),
		Group:   NewGroupHandler(svc.Group),
		Call:    NewCallHandler(svc.Call),
		Ws:      NewWsHandler(svc.Auth, chatServer),
	}
}
