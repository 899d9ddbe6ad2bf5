package router

import (
	"github.com/gin-gonic/gin"

	"wavechat_server/internal/infrastructure/middleware"
)

// RegisterChatRoutes 注册消息历史与会话路由，均需认证
func (rt *Router) RegisterChatRoutes(r *gin.Engine) {
	chatGroup := r.Group("/chat")
	chatGroup.Use(middleware.JWTAuth())
	{
		chatGroup.GET("/conversations", rt.handlers.Message.GetConversations)
		chatGroup.GET("/messages/:id", rt.handlers.Message.GetMessageList)
		chatGroup.GET("/groupMessages/:id", rt.handlers.Message.GetGroupMessageList)
	}
}
