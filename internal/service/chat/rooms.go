package chat

import (
	"sync"

	"github.com/google/uuid"
)

// RoomMembership 主题订阅关系
// topic -> 连接集合 的正向索引加 connID -> 主题集合 的反向索引，
// 断开时一次清空该连接的全部订阅
type RoomMembership struct {
	mu     sync.RWMutex
	topics map[Topic]map[uuid.UUID]*UserConn
	byConn map[uuid.UUID]map[Topic]struct{}
}

// NewRoomMembership 创建订阅表
func NewRoomMembership() *RoomMembership {
	return &RoomMembership{
		topics: make(map[Topic]map[uuid.UUID]*UserConn),
		byConn: make(map[uuid.UUID]map[Topic]struct{}),
	}
}

// Subscribe 订阅主题，幂等
func (m *RoomMembership) Subscribe(c *UserConn, topic Topic) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set, ok := m.topics[topic]
	if !ok {
		set = make(map[uuid.UUID]*UserConn)
		m.topics[topic] = set
	}
	set[c.ID] = c

	topics, ok := m.byConn[c.ID]
	if !ok {
		topics = make(map[Topic]struct{})
		m.byConn[c.ID] = topics
	}
	topics[topic] = struct{}{}
}

// CleanupAll 移除连接的全部订阅，断开时调用
// 未知连接为 no-op
func (m *RoomMembership) CleanupAll(connID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for topic := range m.byConn[connID] {
		if set, ok := m.topics[topic]; ok {
			delete(set, connID)
			if len(set) == 0 {
				delete(m.topics, topic)
			}
		}
	}
	delete(m.byConn, connID)
}

// MembersOf 返回主题当前订阅者的快照
// 在扇出时调用，反映调用瞬间的成员集合，而非消息产生时的集合
func (m *RoomMembership) MembersOf(topic Topic) []*UserConn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set := m.topics[topic]
	conns := make([]*UserConn, 0, len(set))
	for _, c := range set {
		conns = append(conns, c)
	}
	return conns
}
