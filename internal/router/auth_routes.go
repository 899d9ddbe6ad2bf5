// Package router 提供 HTTP 路由注册
// 本文件定义认证相关的路由
package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由，全部公开，无需令牌
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		// POST /auth/register - 用户注册
		authGroup.POST("/register", rt.handlers.Auth.Register)
		// POST /auth/login - 手机号密码登录
		authGroup.POST("/login", rt.handlers.Auth.Login)
		// POST /auth/smsCode - 发送短信验证码
		authGroup.POST("/smsCode", rt.handlers.Auth.SendSmsCode)
		// POST /auth/smsLogin - 短信验证码登录
		authGroup.POST("/smsLogin", rt.handlers.Auth.SmsLogin)
		// POST /auth/refresh - 刷新 Access Token
		authGroup.POST("/refresh", rt.handlers.Auth.Refresh)
	}
}
