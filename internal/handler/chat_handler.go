// Package handler 提供 HTTP 请求处理器
// 本文件处理消息历史与会话相关的 API 请求
package handler

import (
	"github.com/gin-gonic/gin"

	"wavechat_server/internal/service"
	"wavechat_server/pkg/errorx"
)

// MessageHandler 消息查询请求处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建消息处理器实例
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// GetMessageList 获取与指定用户的私聊历史
// GET /chat/messages/:id
// 响应: []respond.MessageRespond
func (h *MessageHandler) GetMessageList(c *gin.Context) {
	selfID, ok := currentUserID(c)
	if !ok {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}
	otherID, ok := parseUintParam(c, "id")
	if !ok {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.messageSvc.GetMessageList(selfID, otherID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupMessageList 获取群聊历史
// GET /chat/groupMessages/:id
// 响应: []respond.MessageRespond
func (h *MessageHandler) GetGroupMessageList(c *gin.Context) {
	groupID, ok := parseUintParam(c, "id")
	if !ok {
		HandleError(c, errorx.ErrInvalidParam)
		return
	}
	data, err := h.messageSvc.GetGroupMessageList(groupID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetConversations 获取会话列表
// GET /chat/conversations
// 响应: []respond.ConversationRespond
func (h *MessageHandler) GetConversations(c *gin.Context) {
	selfID, ok := currentUserID(c)
	if !ok {
		HandleError(c, errorx.ErrUnauthorized)
		return
	}
	data, err := h.messageSvc.GetConversations(selfID)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
