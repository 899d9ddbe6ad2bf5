package router

import (
	"github.com/gin-gonic/gin"

	"wavechat_server/internal/infrastructure/middleware"
)

// RegisterGroupRoutes 注册群组相关路由，均需认证
func (rt *Router) RegisterGroupRoutes(r *gin.Engine) {
	groupGroup := r.Group("/group")
	groupGroup.Use(middleware.JWTAuth())
	{
		groupGroup.POST("/create", rt.handlers.Group.CreateGroup)
		groupGroup.GET("/:id", rt.handlers.Group.GetGroupInfo)
		groupGroup.GET("/:id/members", rt.handlers.Group.GetMembers)
		groupGroup.POST("/:id/members/:userId", rt.handlers.Group.AddMember)
		groupGroup.POST("/:id/members/:userId/role", rt.handlers.Group.UpdateMemberRole)
		groupGroup.DELETE("/:id/members/:userId", rt.handlers.Group.RemoveMember)
	}
}
