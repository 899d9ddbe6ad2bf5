package router

import (
	"github.com/gin-gonic/gin"

	"wavechat_server/internal/infrastructure/middleware"
)

// RegisterUserRoutes 注册用户相关路由，均需认证
func (rt *Router) RegisterUserRoutes(r *gin.Engine) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.JWTAuth())
	{
		userGroup.GET("/profile", rt.handlers.User.GetProfile)
		userGroup.POST("/profile", rt.handlers.User.UpdateProfile)
		userGroup.GET("/list", rt.handlers.User.GetUserList)
		userGroup.GET("/search", rt.handlers.User.SearchUsers)
		userGroup.GET("/:id", rt.handlers.User.GetUserInfo)
	}
}
