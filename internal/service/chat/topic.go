// Package chat 实时核心：在线状态登记、主题订阅、事件路由与通话信令转发
package chat

import "fmt"

// TopicKind 主题类别
type TopicKind int8

const (
	// TopicUser 用户私有主题，每条连接在建立时自动订阅自己用户的主题
	TopicUser TopicKind = iota
	// TopicGroup 群组主题，需显式 join_group 订阅
	TopicGroup
)

// Topic 类型化的广播主题
// 用判别字段区分用户主题和群组主题，避免用户 ID 与群组 ID
// 拼接成字符串后互相碰撞
type Topic struct {
	Kind TopicKind
	ID   uint
}

// UserTopic 用户私有主题
func UserTopic(userID uint) Topic {
	return Topic{Kind: TopicUser, ID: userID}
}

// GroupTopic 群组主题
func GroupTopic(groupID uint) Topic {
	return Topic{Kind: TopicGroup, ID: groupID}
}

// String 仅用于日志
func (t Topic) String() string {
	if t.Kind == TopicGroup {
		return fmt.Sprintf("group:%d", t.ID)
	}
	return fmt.Sprintf("user:%d", t.ID)
}
