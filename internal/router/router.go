// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"github.com/gin-gonic/gin"

	"wavechat_server/internal/handler"
)

// Router 路由注册器，持有 Handler 聚合
type Router struct {
	handlers *handler.Handlers
}

// NewRouter 创建路由注册器
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes 注册所有路由
// 在 https_server.Init() 中调用
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterAuthRoutes(r)
	rt.RegisterUserRoutes(r)
	rt.RegisterChatRoutes(r)
	rt.RegisterGroupRoutes(r)
	rt.RegisterCallRoutes(r)
	rt.RegisterWebSocketRoutes(r)
}
