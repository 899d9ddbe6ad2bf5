// Package push 推送通知下沉
// 尽力而为的外部投递口：事件路径上只入队，从不等待投递结果
package push

import (
	"go.uber.org/zap"

	"wavechat_server/pkg/constants"
)

// Notifier 推送通知接口
type Notifier interface {
	// Notify 给指定用户推送一条通知，尽力而为，不返回错误
	Notify(userID uint, title, body string)
}

// notification 单条待投递通知
type notification struct {
	UserID uint
	Title  string
	Body   string
}

// AsyncNotifier 通道背压的异步推送实现
// 队列满时丢弃并记日志，绝不阻塞事件路径
type AsyncNotifier struct {
	queue chan notification
	send  func(n notification)
}

// NewAsyncNotifier 创建异步推送器并启动投递协程
// sender 为 nil 时使用日志投递（FCM 等真实通道作为扩展接入点）
func NewAsyncNotifier(sender func(userID uint, title, body string)) *AsyncNotifier {
	n := &AsyncNotifier{
		queue: make(chan notification, constants.PUSH_QUEUE_SIZE),
	}
	if sender == nil {
		n.send = func(msg notification) {
			zap.L().Info("push notification",
				zap.Uint("user_id", msg.UserID),
				zap.String("title", msg.Title),
				zap.String("body", msg.Body),
			)
		}
	} else {
		n.send = func(msg notification) { sender(msg.UserID, msg.Title, msg.Body) }
	}
	go n.run()
	return n
}

func (n *AsyncNotifier) run() {
	defer func() {
		if rec := recover(); rec != nil {
			zap.L().Error("push worker panic", zap.Any("recover", rec))
			go n.run()
		}
	}()
	for msg := range n.queue {
		n.send(msg)
	}
}

// Notify 入队一条通知，队列满时丢弃
func (n *AsyncNotifier) Notify(userID uint, title, body string) {
	select {
	case n.queue <- notification{UserID: userID, Title: title, Body: body}:
	default:
		zap.L().Warn("push queue full, notification dropped", zap.Uint("user_id", userID))
	}
}

// Close 停止投递协程，队列中剩余通知会投递完
func (n *AsyncNotifier) Close() {
	close(n.queue)
}
