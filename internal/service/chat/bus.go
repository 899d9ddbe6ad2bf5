package chat

import (
	"context"
	"errors"
	"sync"

	"wavechat_server/pkg/constants"
)

// ErrBusClosed 总线已关闭后的 Publish 返回该错误
var ErrBusClosed = errors.New("event bus closed")

// EventBus 入站事件总线
// ChannelBus 单机直连（默认），KafkaBus 走消息队列（infrastructure/mq），
// 在 main 中按配置注入
type EventBus interface {
	// Publish 发布一帧入站事件
	Publish(ctx context.Context, ev InboundEvent) error
	// Consume 阻塞消费循环，每帧调用 dispatch，总线关闭后返回
	Consume(dispatch func(ev InboundEvent))
	// Close 关闭总线资源
	Close() error
}

// ChannelBus 进程内事件总线
// 关闭通过 done 通知，ch 本身永不 close：
// 存活的读协程在关闭窗口内 Publish 不会写已关闭通道
type ChannelBus struct {
	ch   chan InboundEvent
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewChannelBus 创建进程内总线
func NewChannelBus() *ChannelBus {
	return &ChannelBus{
		ch:   make(chan InboundEvent, constants.CHANNEL_SIZE),
		done: make(chan struct{}),
	}
}

// Publish 投递到内部通道，通道满时阻塞（对上游读协程形成背压）
// 总线已关闭返回 ErrBusClosed
func (b *ChannelBus) Publish(ctx context.Context, ev InboundEvent) error {
	select {
	case <-b.done:
		return ErrBusClosed
	default:
	}
	select {
	case b.ch <- ev:
		return nil
	case <-b.done:
		return ErrBusClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *ChannelBus) Consume(dispatch func(ev InboundEvent)) {
	for {
		select {
		case ev := <-b.ch:
			dispatch(ev)
		case <-b.done:
			return
		}
	}
}

// Close 幂等
func (b *ChannelBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.done)
	}
	return nil
}
