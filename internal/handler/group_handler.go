// Package handler 提供 HTTP 请求处理器
// 本文件处理群组相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"wavechat_server/internal/dto/request"
	"wavechat_server/internal/service"
	"wavechat_server/pkg/errorx"
)

// GroupHandler 群组请求处理器
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler 创建群组处理器实例
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// CreateGroup 创建群组
// POST /group/create
// 请求体: request.CreateGroupRequest
// 响应: respond.GroupInfoRespond
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	selfID, ok := currentUserID(c)
	if !ok {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.CreateGroup(selfID, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupInfo 获取群组信息
// GET /group/:id
// 响应: respond.GroupInfoRespond
func (h *GroupHandler) GetGroupInfo(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.groupSvc.GetGroupInfo(groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMembers 获取群成员列表
// GET /group/:id/members
// 响应: []respond.GroupMemberRespond
func (h *GroupHandler) GetMembers(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.groupSvc.GetMembers(groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AddMember 拉人进群
// POST /group/:id/members/:userId
func (h *GroupHandler) AddMember(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	if err := h.groupSvc.AddMember(groupID, userID); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// UpdateMemberRole 变更群成员角色
// POST /group/:id/members/:userId/role
// 请求体: request.UpdateMemberRoleRequest
func (h *GroupHandler) UpdateMemberRole(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	var req request.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.UpdateMemberRole(groupID, userID, req.Role); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveMember 移出群成员
// DELETE /group/:id/members/:userId
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	if err := h.groupSvc.RemoveMember(groupID, userID); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
