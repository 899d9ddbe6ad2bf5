package chat

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wavechat_server/internal/dao/mysql"
	"wavechat_server/internal/dto/respond"
	"wavechat_server/internal/infrastructure/push"
	"wavechat_server/internal/model"
	"wavechat_server/pkg/constants"
)

var ctx = context.Background()

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 跨域校验交给上层 CORS 中间件
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatServer 实时核心聚合根
// 持有在线登记表、主题订阅表、事件路由器和事件总线
// 总线消费循环串行分发事件，连接注册/注销在各连接自己的 goroutine 上并发执行
type ChatServer struct {
	registry *PresenceRegistry
	rooms    *RoomMembership
	router   *EventRouter
	bus      EventBus
	users    mysql.UserRepository
}

// NewChatServer 创建实时核心
func NewChatServer(repos *mysql.Repositories, bus EventBus, notifier push.Notifier) *ChatServer {
	registry := NewPresenceRegistry()
	rooms := NewRoomMembership()
	return &ChatServer{
		registry: registry,
		rooms:    rooms,
		router: NewEventRouter(
			registry, rooms,
			repos.User, repos.Message, repos.Call,
			notifier,
		),
		bus:   bus,
		users: repos.User,
	}
}

// Start 启动事件总线消费循环
func (s *ChatServer) Start() {
	go s.bus.Consume(s.router.Dispatch)
}

// Close 关闭事件总线
func (s *ChatServer) Close() error {
	return s.bus.Close()
}

// HandleConnection 把已认证的 HTTP 请求升级为 WebSocket 连接并接入实时核心
// userID 由上层从令牌解析，升级失败由 upgrader 负责写 HTTP 错误响应
func (s *ChatServer) HandleConnection(c *gin.Context, userID uint) {
	wsConn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}

	conn := NewUserConn(wsConn, userID, constants.CHANNEL_SIZE)
	s.register(conn)

	go conn.WritePump()
	go conn.ReadPump(s)
}

// register 接入一条新连接
// 自动订阅用户私有主题；该用户的首条连接触发全员 user_online 广播
func (s *ChatServer) register(c *UserConn) {
	first := s.registry.Connect(c)
	s.rooms.Subscribe(c, UserTopic(c.UserID))

	zap.L().Info("connection registered",
		zap.String("conn_id", c.ID.String()),
		zap.Uint("user_id", c.UserID),
		zap.Bool("first", first),
	)

	if first {
		s.broadcast(EventUserOnline, respond.UserOnlineRespond{UserID: c.UserID})
	}
}

// Disconnect 注销一条连接
// 幂等：未知连接直接返回。用户最后一条连接断开时落库离线状态并广播 user_offline
func (s *ChatServer) Disconnect(c *UserConn) {
	c.Close()
	s.rooms.CleanupAll(c.ID)

	userID, last, ok := s.registry.Disconnect(c.ID)
	if !ok {
		return
	}

	zap.L().Info("connection deregistered",
		zap.String("conn_id", c.ID.String()),
		zap.Uint("user_id", userID),
		zap.Bool("last", last),
	)

	if last {
		if err := s.users.UpdatePresence(userID, model.UserStatusOffline, time.Now()); err != nil {
			zap.L().Error("persist offline presence failed", zap.Uint("user_id", userID), zap.Error(err))
		}
		s.broadcast(EventUserOffline, respond.UserOfflineRespond{UserID: userID})
	}
}

// broadcast 向全部在线连接广播一帧事件
// 逐连接遍历，连接数为 N 时复杂度 O(N)
func (s *ChatServer) broadcast(event string, payload any) {
	frame, ok := encodeEvent(event, payload)
	if !ok {
		return
	}
	for _, c := range s.registry.AllConnections() {
		c.Deliver(frame)
	}
}
