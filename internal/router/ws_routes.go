// Package router 提供 HTTP 路由注册
// 本文件定义 WebSocket 握手路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 路由
// 令牌通过 query 传递并在 Handler 内校验，不走 Authorization 头中间件
func (rt *Router) RegisterWebSocketRoutes(r *gin.Engine) {
	// 请求示例: ws://host:port/ws?token=xxx
	r.GET("/ws", rt.handlers.Ws.Connect)
}
