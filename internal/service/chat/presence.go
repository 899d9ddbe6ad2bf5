package chat

import (
	"sync"

	"github.com/google/uuid"
)

// PresenceRegistry 在线状态登记表
// 维护 user -> 连接集合 的正向索引和 connID -> 连接 的反向索引，
// 断开时 O(1) 定位归属用户，不做全表扫描
// 一个用户可同时持有多条连接（多端登录），集合非空即在线
type PresenceRegistry struct {
	mu    sync.RWMutex
	users map[uint]map[uuid.UUID]*UserConn
	conns map[uuid.UUID]*UserConn
}

// NewPresenceRegistry 创建登记表
func NewPresenceRegistry() *PresenceRegistry {
	return &PresenceRegistry{
		users: make(map[uint]map[uuid.UUID]*UserConn),
		conns: make(map[uuid.UUID]*UserConn),
	}
}

// Connect 登记连接，按连接句柄幂等
// 返回该连接是否是此用户的第一条连接（上线沿）
func (r *PresenceRegistry) Connect(c *UserConn) (first bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conns[c.ID]; exists {
		return false
	}
	r.conns[c.ID] = c

	set, ok := r.users[c.UserID]
	if !ok {
		set = make(map[uuid.UUID]*UserConn)
		r.users[c.UserID] = set
	}
	first = len(set) == 0
	set[c.ID] = c
	return first
}

// Disconnect 注销连接
// 未知句柄为 no-op（断开竞态是常态，不是错误）
// 返回归属用户和该用户是否因此下线（最后一条连接消失）
func (r *PresenceRegistry) Disconnect(connID uuid.UUID) (userID uint, last bool, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.conns[connID]
	if !exists {
		return 0, false, false
	}
	delete(r.conns, connID)

	userID = c.UserID
	if set, ok := r.users[userID]; ok {
		delete(set, connID)
		if len(set) == 0 {
			delete(r.users, userID)
			last = true
		}
	}
	return userID, last, true
}

// IsOnline 用户是否至少有一条活跃连接
func (r *PresenceRegistry) IsOnline(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users[userID]) > 0
}

// ConnectionsOf 返回用户当前连接的快照
func (r *PresenceRegistry) ConnectionsOf(userID uint) []*UserConn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set := r.users[userID]
	conns := make([]*UserConn, 0, len(set))
	for _, c := range set {
		conns = append(conns, c)
	}
	return conns
}

// AllConnections 返回全部在线连接的快照
// 供 user_online/user_offline 全量广播使用，代价 O(总连接数)
func (r *PresenceRegistry) AllConnections() []*UserConn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conns := make([]*UserConn, 0, len(r.conns))
	for _, c := range r.conns {
		conns = append(conns, c)
	}
	return conns
}

// Get 按连接 ID 查找连接，未注册返回 nil
func (r *PresenceRegistry) Get(connID uuid.UUID) *UserConn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.conns[connID]
}
