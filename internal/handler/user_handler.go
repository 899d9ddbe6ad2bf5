// Package handler 提供 HTTP 请求处理器
// 本文件处理用户相关的 API 请求
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"wavechat_server/internal/dto/request"
	"wavechat_server/internal/service"
	"wavechat_server/pkg/errorx"
)

// UserHandler 用户请求处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// currentUserID 从上下文取 JWT 中间件写入的用户 ID
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// parseUintParam 解析路径参数里的数字 ID
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// GetProfile 获取当前用户资料
// GET /user/profile
// 响应: respond.UserInfoRespond
func (h *UserHandler) GetProfile(c *gin.Context) {
	selfID, ok := currentUserID(c)
	if !ok {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}
	data, err := h.userSvc.GetUserInfo(selfID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateProfile 更新当前用户资料
// POST /user/profile
// 请求体: request.UpdateUserRequest
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	selfID, ok := currentUserID(c)
	if !ok {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}
	var req request.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.UpdateUserInfo(selfID, req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetUserInfo 获取指定用户资料
// GET /user/:id
// 响应: respond.UserInfoRespond
func (h *UserHandler) GetUserInfo(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.userSvc.GetUserInfo(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUserList 获取用户列表（排除自己）
// GET /user/list
// 响应: []respond.UserInfoRespond
func (h *UserHandler) GetUserList(c *gin.Context) {
	selfID, ok := currentUserID(c)
	if !ok {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}
	data, err := h.userSvc.GetUserList(selfID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SearchUsers 按用户名模糊搜索
// GET /user/search?keyword=xxx
// 响应: []respond.UserInfoRespond
func (h *UserHandler) SearchUsers(c *gin.Context) {
	data, err := h.userSvc.SearchUsers(c.Query("keyword"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
