// Package handler 提供 HTTP 请求处理器
// 本文件处理通话记录相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"wavechat_server/internal/service"
	"wavechat_server/pkg/errorx"
)

// CallHandler 通话记录请求处理器
type CallHandler struct {
	callSvc service.CallService
}

// NewCallHandler 创建通话记录处理器实例
func NewCallHandler(callSvc service.CallService) *CallHandler {
	return &CallHandler{callSvc: callSvc}
}

// GetCallHistory 获取当前用户的通话记录
// GET /call/history
// 响应: []respond.CallRecordRespond
func (h *CallHandler) GetCallHistory(c *gin.Context) {
	selfID, ok := currentUserID(c)
	if !ok {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}
	data, err := h.callSvc.GetCallHistory(selfID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
