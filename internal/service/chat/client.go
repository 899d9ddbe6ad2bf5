package chat

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// UserConn 表示一条 WebSocket 客户端连接
// UserID 在连接建立（认证通过）时确定，之后不可变
type UserConn struct {
	ID     uuid.UUID
	UserID uint

	conn *websocket.Conn
	send chan []byte

	mu     sync.Mutex
	closed bool
}

// NewUserConn 创建连接句柄
// conn 为 nil 时仅作为内存句柄使用（测试场景）
func NewUserConn(conn *websocket.Conn, userID uint, bufferSize int) *UserConn {
	return &UserConn{
		ID:     uuid.New(),
		UserID: userID,
		conn:   conn,
		send:   make(chan []byte, bufferSize),
	}
}

// Deliver 把一帧出站消息投递到连接的发送通道
// 连接已关闭返回 false；通道满则丢弃该帧（慢消费者不阻塞扇出）
func (c *UserConn) Deliver(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		zap.L().Warn("connection send buffer full, frame dropped",
			zap.String("conn_id", c.ID.String()),
			zap.Uint("user_id", c.UserID),
		)
		return false
	}
}

// Close 标记连接关闭并释放发送通道
// 幂等；与进行中的 Deliver 并发安全（closed 标记在同一把锁下检查）
func (c *UserConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()

	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// ReadPump 读取入站帧并发布到事件总线
// 读错误（含对端断开）退出循环，由调用方负责注销连接
func (c *UserConn) ReadPump(s *ChatServer) {
	defer s.Disconnect(c)
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			zap.L().Debug("ws read closed", zap.String("conn_id", c.ID.String()), zap.Error(err))
			return
		}
		if err := s.bus.Publish(ctx, InboundEvent{ConnID: c.ID, Frame: frame}); err != nil {
			zap.L().Error("publish inbound event failed", zap.Error(err))
		}
	}
}

// WritePump 从发送通道取出站帧写入 WebSocket
func (c *UserConn) WritePump() {
	for frame := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			zap.L().Debug("ws write closed", zap.String("conn_id", c.ID.String()), zap.Error(err))
			return
		}
	}
}
