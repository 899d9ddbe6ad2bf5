package model

import "gorm.io/gorm"

// 通话类型
const (
	CallTypeVoice = "voice"
	CallTypeVideo = "video"
)

// 通话状态
// 新建通话记录默认 missed，有效接听转为 answered
// ended/cancelled 仅作为信令转发，不在核心路径落库（扩展点）
const (
	CallStatusMissed    = "missed"
	CallStatusAnswered  = "answered"
	CallStatusEnded     = "ended"
	CallStatusCancelled = "cancelled"
)

// Call 通话记录模型，对应 call 表
type Call struct {
	gorm.Model

	// CallerID 主叫用户 ID
	CallerID uint `gorm:"column:caller_id;index;not null;comment:主叫ID"`

	// ReceiverID 被叫用户 ID
	ReceiverID uint `gorm:"column:receiver_id;index;not null;comment:被叫ID"`

	// CallType 通话类型：voice, video
	CallType string `gorm:"column:call_type;type:char(10);comment:通话类型"`

	// Status 通话状态：missed, answered, ended, cancelled
	Status string `gorm:"column:status;type:char(20);comment:通话状态"`

	// Duration 通话时长（秒），核心不自动计算
	Duration int `gorm:"column:duration;default:0;comment:通话时长"`
}

// TableName 指定表名
func (Call) TableName() string {
	return "call"
}
