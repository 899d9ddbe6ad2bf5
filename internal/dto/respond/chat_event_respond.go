package respond

// WebSocket 出站事件载荷
// 字段名与前端 socket 协议保持一致

// UserOnlineRespond user_online 事件载荷
type UserOnlineRespond struct {
	UserID uint `json:"user_id"`
}

// UserOfflineRespond user_offline 事件载荷
type UserOfflineRespond struct {
	UserID uint `json:"user_id"`
}

// MessagesReadRespond messages_read 事件载荷
type MessagesReadRespond struct {
	ReaderID uint `json:"reader_id"`
	SenderID uint `json:"sender_id"`
}

// UserTypingRespond user_typing 事件载荷
type UserTypingRespond struct {
	UserID   uint `json:"user_id"`
	IsTyping bool `json:"is_typing"`
}

// GroupJoinedRespond group_joined 确认载荷，仅回发给发起连接
type GroupJoinedRespond struct {
	GroupID uint `json:"group_id"`
}

// CallRequestRespond call_request 事件载荷
type CallRequestRespond struct {
	CallID   uint   `json:"call_id"`
	SenderID uint   `json:"sender_id"`
	CallType string `json:"call_type"`
	Offer    string `json:"offer"`
}

// CallAnsweredRespond call_answered 事件载荷
type CallAnsweredRespond struct {
	ReceiverID uint   `json:"receiver_id"`
	Answer     string `json:"answer"`
}

// IceCandidateRespond ice_candidate 事件载荷
type IceCandidateRespond struct {
	SenderID  uint   `json:"sender_id"`
	Candidate string `json:"candidate"`
}

// CallEndedRespond call_ended 事件载荷
type CallEndedRespond struct {
	Reason string `json:"reason"`
}

// EventErrorRespond error 事件载荷，仅回发给发起连接，从不广播
type EventErrorRespond struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}
