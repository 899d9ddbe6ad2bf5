package chat

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 入站事件名
const (
	EventSendMessage  = "send_message"
	EventMarkRead     = "mark_read"
	EventJoinGroup    = "join_group"
	EventTyping       = "typing"
	EventStartCall    = "start_call"
	EventAnswerCall   = "answer_call"
	EventIceCandidate = "ice_candidate"
	EventEndCall      = "end_call"
)

// 出站事件名
const (
	EventNewMessage      = "new_message"
	EventNewGroupMessage = "new_group_message"
	EventMessagesRead    = "messages_read"
	EventGroupJoined     = "group_joined"
	EventUserTyping      = "user_typing"
	EventUserOnline      = "user_online"
	EventUserOffline     = "user_offline"
	EventCallRequest     = "call_request"
	EventCallAnswered    = "call_answered"
	EventIceCandidateOut = "ice_candidate"
	EventCallEnded       = "call_ended"
	EventError           = "error"
)

// Envelope WebSocket 帧的统一信封
// 入站和出站共用 {"event": ..., "data": {...}} 结构
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// InboundEvent 事件总线上的一帧，携带发起连接的标识
// Kafka 模式下 ConnID 可能解析不到本实例的连接（发起方在别的实例上），
// 此时回执类投递静默降级
type InboundEvent struct {
	ConnID uuid.UUID `json:"conn_id"`
	Frame  []byte    `json:"frame"`
}

// encodeEvent 序列化一帧出站事件
func encodeEvent(event string, payload any) ([]byte, bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("marshal event payload failed", zap.String("event", event), zap.Error(err))
		return nil, false
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		zap.L().Error("marshal event envelope failed", zap.String("event", event), zap.Error(err))
		return nil, false
	}
	return frame, true
}
