// Package message 消息历史查询业务逻辑
// 实时投递由事件路由器负责，这里只读库和维护查询缓存
package message

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wavechat_server/internal/dao/mysql"
	myredis "wavechat_server/internal/dao/redis"
	"wavechat_server/internal/dto/respond"
	"wavechat_server/internal/model"
	"wavechat_server/pkg/constants"
	"wavechat_server/pkg/errorx"
)

type messageService struct {
	messages mysql.MessageRepository
	users    mysql.UserRepository
	cache    myredis.AsyncCacheService
}

// NewMessageService 创建消息服务实例
func NewMessageService(messages mysql.MessageRepository, users mysql.UserRepository, cache myredis.AsyncCacheService) *messageService {
	return &messageService{
		messages: messages,
		users:    users,
		cache:    cache,
	}
}

func messageListKey(selfID, otherID uint) string {
	// 两个方向共享同一份缓存，小 ID 在前
	if selfID > otherID {
		selfID, otherID = otherID, selfID
	}
	return fmt.Sprintf("message_list_%d_%d", selfID, otherID)
}

func groupMessageListKey(groupID uint) string {
	return fmt.Sprintf("group_message_list_%d", groupID)
}

// GetMessageList 获取两个用户之间的私聊历史
// 先查缓存，未命中时读库并异步回填
func (s *messageService) GetMessageList(selfID, otherID uint) ([]respond.MessageRespond, error) {
	key := messageListKey(selfID, otherID)
	if cached, err := s.cache.Get(context.Background(), key); err == nil && cached != "" {
		var rsp []respond.MessageRespond
		if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
			return rsp, nil
		}
		zap.L().Warn("消息列表缓存损坏，回退读库", zap.String("key", key))
	}

	msgs, err := s.messages.FindBetweenUsers(selfID, otherID)
	if err != nil {
		zap.L().Error("查询私聊历史失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := s.buildMessageList(msgs)

	s.cacheMessageList(key, rsp)
	return rsp, nil
}

// GetGroupMessageList 获取群聊历史
func (s *messageService) GetGroupMessageList(groupID uint) ([]respond.MessageRespond, error) {
	key := groupMessageListKey(groupID)
	if cached, err := s.cache.Get(context.Background(), key); err == nil && cached != "" {
		var rsp []respond.MessageRespond
		if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
			return rsp, nil
		}
		zap.L().Warn("群消息列表缓存损坏，回退读库", zap.String("key", key))
	}

	msgs, err := s.messages.FindByGroup(groupID)
	if err != nil {
		zap.L().Error("查询群聊历史失败", zap.Uint("group_id", groupID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	rsp := s.buildMessageList(msgs)

	s.cacheMessageList(key, rsp)
	return rsp, nil
}

// GetConversations 获取会话列表
// 按对端用户聚合私聊消息，每个会话取最近一条
func (s *messageService) GetConversations(selfID uint) ([]respond.ConversationRespond, error) {
	msgs, err := s.messages.FindByUser(selfID)
	if err != nil {
		zap.L().Error("查询会话消息失败", zap.Uint("user_id", selfID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 消息按时间升序返回，后写入的覆盖先写入的，留下的就是最近一条
	latest := make(map[uint]model.Message)
	order := make([]uint, 0)
	for _, m := range msgs {
		if m.ReceiverID == nil {
			continue
		}
		other := m.SenderID
		if other == selfID {
			other = *m.ReceiverID
		}
		if _, seen := latest[other]; !seen {
			order = append(order, other)
		}
		latest[other] = m
	}

	rsp := make([]respond.ConversationRespond, 0, len(latest))
	for _, other := range order {
		m := latest[other]
		item := respond.ConversationRespond{
			OtherUserID: other,
			LastMessage: m.Content,
			Timestamp:   m.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if u, err := s.users.FindByID(other); err == nil {
			item.Username = u.Username
			item.ProfilePicture = u.ProfilePicture
		}
		rsp = append(rsp, item)
	}
	return rsp, nil
}

// buildMessageList 把消息模型转成响应，发送者昵称批量解析
func (s *messageService) buildMessageList(msgs []model.Message) []respond.MessageRespond {
	names := make(map[uint]string)
	resolve := func(id uint) string {
		if name, ok := names[id]; ok {
			return name
		}
		name := "Unknown"
		if u, err := s.users.FindByID(id); err == nil {
			name = u.Username
		}
		names[id] = name
		return name
	}

	rsp := make([]respond.MessageRespond, 0, len(msgs))
	for _, m := range msgs {
		rsp = append(rsp, respond.MessageRespond{
			ID:          m.Uuid,
			SenderID:    m.SenderID,
			SenderName:  resolve(m.SenderID),
			ReceiverID:  m.ReceiverID,
			GroupID:     m.GroupID,
			Message:     m.Content,
			MessageType: m.MessageType,
			MediaURL:    m.MediaURL,
			Status:      m.Status,
			Timestamp:   m.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return rsp
}

// cacheMessageList 异步回填查询缓存，失败只记日志
func (s *messageService) cacheMessageList(key string, rsp []respond.MessageRespond) {
	data, err := json.Marshal(rsp)
	if err != nil {
		zap.L().Error("序列化消息列表失败", zap.Error(err))
		return
	}
	s.cache.SubmitTask(func() {
		if err := s.cache.Set(context.Background(), key, string(data), constants.REDIS_TIMEOUT*time.Minute); err != nil {
			zap.L().Error("写入消息列表缓存失败", zap.String("key", key), zap.Error(err))
		}
	})
}
