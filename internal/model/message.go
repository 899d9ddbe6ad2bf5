package model

import (
	"gorm.io/gorm"
)

// 消息类型
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeAudio = "audio"
)

// 消息投递状态
const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusSeen      = "seen"
)

// Message 消息模型，对应 message 表
// 单聊消息 ReceiverID 非空，群聊消息 GroupID 非空，二者有且仅有其一
// （由 Event Router 在入库前校验）
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识，雪花算法生成
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// SenderID 发送者用户 ID
	SenderID uint `gorm:"column:sender_id;index;not null;comment:发送者ID"`

	// ReceiverID 接收者用户 ID，群聊消息为空
	ReceiverID *uint `gorm:"column:receiver_id;index;comment:接收者ID"`

	// GroupID 群组 ID，单聊消息为空
	GroupID *uint `gorm:"column:group_id;index;comment:群组ID"`

	// Content 消息文本内容
	Content string `gorm:"column:content;type:TEXT;not null;comment:消息内容"`

	// MessageType 消息类型：text, image, audio
	MessageType string `gorm:"column:message_type;type:char(20);default:text;comment:消息类型"`

	// MediaURL 媒体资源链接，文本消息为空
	MediaURL string `gorm:"column:media_url;type:varchar(255);comment:媒体url"`

	// Status 投递状态：sent, delivered, seen
	Status string `gorm:"column:status;type:char(20);default:sent;comment:投递状态"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
