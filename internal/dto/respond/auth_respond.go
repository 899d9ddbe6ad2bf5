// Package respond HTTP 响应与 WebSocket 出站事件的载荷定义
package respond

// LoginRespond 登录响应
type LoginRespond struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
	IsAdmin        int8   `json:"is_admin"`
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
}

// RegisterRespond 注册响应
type RegisterRespond struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Phone        string `json:"phone"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshTokenRespond 刷新 Token 响应
type RefreshTokenRespond struct {
	AccessToken string `json:"access_token"`
}
