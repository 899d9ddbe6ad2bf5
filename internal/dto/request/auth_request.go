// Package request HTTP 请求与 WebSocket 入站事件的载荷定义
package request

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=80"`
	Phone    string `json:"phone" binding:"required,min=5,max=20"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 手机号密码登录请求
type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SmsSendRequest 发送短信验证码请求
type SmsSendRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// SmsLoginRequest 短信验证码登录请求
type SmsLoginRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required,len=6"`
}

// RefreshTokenRequest 刷新 Access Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
