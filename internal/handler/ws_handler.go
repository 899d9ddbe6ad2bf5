// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 握手
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wavechat_server/internal/service"
	"wavechat_server/internal/service/chat"
	"wavechat_server/pkg/errorx"
)

// WsHandler WebSocket 握手处理器
type WsHandler struct {
	authSvc service.AuthService
	server  *chat.ChatServer
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(authSvc service.AuthService, server *chat.ChatServer) *WsHandler {
	return &WsHandler{authSvc: authSvc, server: server}
}

// Connect 升级为 WebSocket 连接
// GET /ws?token=xxx
// 浏览器的 WebSocket API 不支持自定义 Header，令牌通过 query 传递
// 认证失败返回 401，连接不升级
func (h *WsHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "缺少令牌",
		})
		return
	}

	userID, err := h.authSvc.Resolve(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code": errorx.CodeUnauthorized,
			"msg":  "令牌无效或已过期",
		})
		return
	}

	h.server.HandleConnection(c, userID)
}
