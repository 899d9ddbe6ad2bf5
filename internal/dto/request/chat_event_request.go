package request

// WebSocket 入站事件载荷
// 字段名与前端 socket 协议保持一致，由 Event Router 反序列化后校验

// SendMessageRequest send_message 事件载荷
// ReceiverID 与 GroupID 有且仅有其一，由路由器在入库前校验
type SendMessageRequest struct {
	SenderID    uint   `json:"sender_id"`
	ReceiverID  *uint  `json:"receiver_id"`
	GroupID     *uint  `json:"group_id"`
	Message     string `json:"message"`
	MessageType string `json:"message_type"`
	MediaURL    string `json:"media_url"`
}

// MarkReadRequest mark_read 事件载荷
// SenderID 是原消息作者，ReceiverID 是已读的读者（当前用户）
type MarkReadRequest struct {
	SenderID   uint `json:"sender_id"`
	ReceiverID uint `json:"receiver_id"`
}

// JoinGroupRequest join_group 事件载荷
type JoinGroupRequest struct {
	GroupID uint `json:"group_id"`
}

// TypingRequest typing 事件载荷，纯瞬态，不落库
type TypingRequest struct {
	SenderID   uint `json:"sender_id"`
	ReceiverID uint `json:"receiver_id"`
	IsTyping   bool `json:"is_typing"`
}

// StartCallRequest start_call 事件载荷
type StartCallRequest struct {
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `json:"receiver_id"`
	CallType   string `json:"call_type"`
	Offer      string `json:"offer"` // SDP offer
}

// AnswerCallRequest answer_call 事件载荷
type AnswerCallRequest struct {
	CallerID   uint   `json:"caller_id"`
	ReceiverID uint   `json:"receiver_id"`
	CallID     uint   `json:"call_id"`
	Answer     string `json:"answer"` // SDP answer
}

// IceCandidateRequest ice_candidate 事件载荷，纯转发
type IceCandidateRequest struct {
	TargetID  uint   `json:"target_id"`
	SenderID  uint   `json:"sender_id"`
	Candidate string `json:"candidate"`
}

// EndCallRequest end_call 事件载荷，纯转发
type EndCallRequest struct {
	TargetID uint `json:"target_id"`
}
