package router

import (
	"github.com/gin-gonic/gin"

	"wavechat_server/internal/infrastructure/middleware"
)

// RegisterCallRoutes 注册通话记录路由，均需认证
func (rt *Router) RegisterCallRoutes(r *gin.Engine) {
	callGroup := r.Group("/call")
	callGroup.Use(middleware.JWTAuth())
	{
		callGroup.GET("/history", rt.handlers.Call.GetCallHistory)
	}
}
