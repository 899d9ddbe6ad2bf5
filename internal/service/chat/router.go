package chat

import (
	"encoding/json"

	"go.uber.org/zap"

	"wavechat_server/internal/dao/mysql"
	"wavechat_server/internal/dto/request"
	"wavechat_server/internal/dto/respond"
	"wavechat_server/internal/infrastructure/push"
	"wavechat_server/internal/model"
	"wavechat_server/pkg/errorx"
	"wavechat_server/pkg/util/snowflake"
)

// handlerFunc 单个事件处理函数
// origin 是发起连接，Kafka 模式下可能为 nil（发起方在其他实例上）
type handlerFunc func(origin *UserConn, data json.RawMessage)

// EventRouter 事件路由器
// 按事件名分发到处理函数，每个处理函数遵循同一模式：
// 校验载荷 ->（可选）落库 -> 解析目标主题 -> 按当前订阅集合扇出
// 锁纪律：从不在持有登记表锁的情况下做存储 IO，成员集合在扇出时读取
type EventRouter struct {
	registry *PresenceRegistry
	rooms    *RoomMembership

	users    mysql.UserRepository
	messages mysql.MessageRepository
	calls    mysql.CallRepository
	notifier push.Notifier

	handlers map[string]handlerFunc
}

// NewEventRouter 创建路由器并注册全部事件处理函数
func NewEventRouter(
	registry *PresenceRegistry,
	rooms *RoomMembership,
	users mysql.UserRepository,
	messages mysql.MessageRepository,
	calls mysql.CallRepository,
	notifier push.Notifier,
) *EventRouter {
	r := &EventRouter{
		registry: registry,
		rooms:    rooms,
		users:    users,
		messages: messages,
		calls:    calls,
		notifier: notifier,
	}
	r.handlers = map[string]handlerFunc{
		EventSendMessage:  r.handleSendMessage,
		EventMarkRead:     r.handleMarkRead,
		EventJoinGroup:    r.handleJoinGroup,
		EventTyping:       r.handleTyping,
		EventStartCall:    r.handleStartCall,
		EventAnswerCall:   r.handleAnswerCall,
		EventIceCandidate: r.handleIceCandidate,
		EventEndCall:      r.handleEndCall,
	}
	return r
}

// Dispatch 解析入站帧并分发
// 任何失败只影响当前事件，从不向上传播
func (r *EventRouter) Dispatch(ev InboundEvent) {
	origin := r.registry.Get(ev.ConnID)

	var env Envelope
	if err := json.Unmarshal(ev.Frame, &env); err != nil {
		zap.L().Error("unmarshal inbound frame failed", zap.Error(err))
		r.emitError(origin, errorx.CodeInvalidParam, "帧格式错误")
		return
	}

	handler, ok := r.handlers[env.Event]
	if !ok {
		zap.L().Warn("unknown inbound event", zap.String("event", env.Event))
		r.emitError(origin, errorx.CodeInvalidParam, "未知事件: "+env.Event)
		return
	}
	handler(origin, env.Data)
}

// handleSendMessage 处理 send_message
// receiver 与 group 有且仅有其一（入库前校验），发送者昵称在发送时实时查询
func (r *EventRouter) handleSendMessage(origin *UserConn, data json.RawMessage) {
	var req request.SendMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		r.emitError(origin, errorx.CodeInvalidParam, "载荷格式错误")
		return
	}
	if req.SenderID == 0 || req.Message == "" {
		r.emitError(origin, errorx.CodeInvalidParam, "缺少发送者或消息内容")
		return
	}
	if (req.ReceiverID == nil) == (req.GroupID == nil) {
		r.emitError(origin, errorx.CodeInvalidParam, "receiver_id 与 group_id 必须二选一")
		return
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = model.MessageTypeText
	}

	message := model.Message{
		Uuid:        snowflake.GenerateID(),
		SenderID:    req.SenderID,
		ReceiverID:  req.ReceiverID,
		GroupID:     req.GroupID,
		Content:     req.Message,
		MessageType: messageType,
		MediaURL:    req.MediaURL,
		Status:      model.MessageStatusSent,
	}
	if err := r.messages.Create(&message); err != nil {
		zap.L().Error("persist message failed", zap.Error(err))
		r.emitError(origin, errorx.GetCode(err), "消息保存失败")
		return
	}

	// 昵称可能已变更，每次发送都重新查询
	senderName := "Unknown"
	if sender, err := r.users.FindByID(req.SenderID); err == nil {
		senderName = sender.Username
	} else {
		zap.L().Warn("resolve sender name failed", zap.Uint("sender_id", req.SenderID), zap.Error(err))
	}

	rsp := respond.MessageRespond{
		ID:          message.Uuid,
		SenderID:    message.SenderID,
		SenderName:  senderName,
		ReceiverID:  message.ReceiverID,
		GroupID:     message.GroupID,
		Message:     message.Content,
		MessageType: message.MessageType,
		MediaURL:    message.MediaURL,
		Status:      message.Status,
		Timestamp:   message.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	if req.GroupID != nil {
		r.emitToTopic(GroupTopic(*req.GroupID), EventNewGroupMessage, rsp)
		return
	}

	r.emitToTopic(UserTopic(*req.ReceiverID), EventNewMessage, rsp)
	// 接收者全端离线时走推送下沉，尽力而为
	if !r.registry.IsOnline(*req.ReceiverID) {
		r.notifier.Notify(*req.ReceiverID, senderName, req.Message)
	}
}

// handleMarkRead 处理 mark_read
// 通知原消息作者其消息已被读。消息状态落库是预留扩展点，
// 当前核心只做转发
func (r *EventRouter) handleMarkRead(origin *UserConn, data json.RawMessage) {
	var req request.MarkReadRequest
	if err := json.Unmarshal(data, &req); err != nil || req.SenderID == 0 || req.ReceiverID == 0 {
		r.emitError(origin, errorx.CodeInvalidParam, "载荷格式错误")
		return
	}

	// TODO: 批量把 sender->receiver 的消息状态置为 seen（repos 已具备 UpdateStatus）
	r.emitToTopic(UserTopic(req.SenderID), EventMessagesRead, respond.MessagesReadRespond{
		ReaderID: req.ReceiverID,
		SenderID: req.SenderID,
	})
}

// handleJoinGroup 处理 join_group
// 订阅群组主题，确认只回发给发起连接，不广播
func (r *EventRouter) handleJoinGroup(origin *UserConn, data json.RawMessage) {
	var req request.JoinGroupRequest
	if err := json.Unmarshal(data, &req); err != nil || req.GroupID == 0 {
		r.emitError(origin, errorx.CodeInvalidParam, "缺少群组ID")
		return
	}
	if origin == nil {
		return
	}
	r.rooms.Subscribe(origin, GroupTopic(req.GroupID))
	r.emitToConn(origin, EventGroupJoined, respond.GroupJoinedRespond{GroupID: req.GroupID})
}

// handleTyping 处理 typing，纯瞬态转发，从不落库
func (r *EventRouter) handleTyping(origin *UserConn, data json.RawMessage) {
	var req request.TypingRequest
	if err := json.Unmarshal(data, &req); err != nil || req.SenderID == 0 || req.ReceiverID == 0 {
		zap.L().Debug("typing event dropped, malformed payload")
		return
	}
	r.emitToTopic(UserTopic(req.ReceiverID), EventUserTyping, respond.UserTypingRespond{
		UserID:   req.SenderID,
		IsTyping: req.IsTyping,
	})
}

// emitToTopic 向主题的当前订阅者扇出一帧事件
// 订阅集合在本次调用时读取；没有订阅者时静默返回（既不缓存也不重试）
func (r *EventRouter) emitToTopic(topic Topic, event string, payload any) {
	frame, ok := encodeEvent(event, payload)
	if !ok {
		return
	}
	for _, c := range r.rooms.MembersOf(topic) {
		c.Deliver(frame)
	}
}

// emitToConn 仅向单条连接投递
func (r *EventRouter) emitToConn(c *UserConn, event string, payload any) {
	if c == nil {
		return
	}
	if frame, ok := encodeEvent(event, payload); ok {
		c.Deliver(frame)
	}
}

// emitError 把错误回执投递给发起连接，从不广播
func (r *EventRouter) emitError(origin *UserConn, code int, msg string) {
	r.emitToConn(origin, EventError, respond.EventErrorRespond{Code: code, Msg: msg})
}
