package respond

// MessageRespond 消息响应
// 既用于 new_message/new_group_message 实时推送，也用于历史记录查询
// SenderName 在发送时实时查库取得，不做缓存（昵称可能已变更）
type MessageRespond struct {
	ID          int64  `json:"id"`
	SenderID    uint   `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	ReceiverID  *uint  `json:"receiver_id,omitempty"`
	GroupID     *uint  `json:"group_id,omitempty"`
	Message     string `json:"message"`
	MessageType string `json:"message_type"`
	MediaURL    string `json:"media_url,omitempty"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
}

// ConversationRespond 会话列表项响应
type ConversationRespond struct {
	OtherUserID    uint   `json:"other_user_id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
	LastMessage    string `json:"last_message"`
	Timestamp      string `json:"timestamp"`
}

// CallRecordRespond 通话记录响应
type CallRecordRespond struct {
	ID         uint   `json:"id"`
	CallerID   uint   `json:"caller_id"`
	ReceiverID uint   `json:"receiver_id"`
	CallType   string `json:"call_type"`
	Status     string `json:"status"`
	Duration   int    `json:"duration"`
	Timestamp  string `json:"timestamp"`
}
