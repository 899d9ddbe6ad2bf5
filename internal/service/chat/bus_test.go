package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestChannelBusDeliversInOrder(t *testing.T) {
	bus := NewChannelBus()
	defer bus.Close()

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		if err := bus.Publish(context.Background(), InboundEvent{ConnID: id}); err != nil {
			t.Fatal(err)
		}
	}

	received := make(chan InboundEvent, len(ids))
	go bus.Consume(func(ev InboundEvent) {
		received <- ev
	})

	for _, want := range ids {
		select {
		case got := <-received:
			if got.ConnID != want {
				t.Fatalf("expected %s, got %s", want, got.ConnID)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestChannelBusPublishRespectsContext(t *testing.T) {
	bus := NewChannelBus()
	defer bus.Close()

	// 填满通道，下一次 Publish 阻塞
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		err := bus.Publish(ctx, InboundEvent{ConnID: uuid.New()})
		cancel()
		if err != nil {
			if err != context.DeadlineExceeded {
				t.Fatalf("expected deadline exceeded, got %v", err)
			}
			return
		}
	}
}

func TestChannelBusPublishAfterCloseDoesNotPanic(t *testing.T) {
	bus := NewChannelBus()
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}

	// 关闭后读协程仍可能在途调用 Publish，必须返回错误而不是 panic
	if err := bus.Publish(context.Background(), InboundEvent{ConnID: uuid.New()}); err != ErrBusClosed {
		t.Fatalf("expected ErrBusClosed, got %v", err)
	}

	// 重复 Close 幂等
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestChannelBusCloseUnblocksPendingPublish(t *testing.T) {
	bus := NewChannelBus()

	// 填满缓冲，使下一次 Publish 阻塞在通道上
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		err := bus.Publish(ctx, InboundEvent{ConnID: uuid.New()})
		cancel()
		if err != nil {
			break
		}
	}

	result := make(chan error, 1)
	go func() {
		result <- bus.Publish(context.Background(), InboundEvent{ConnID: uuid.New()})
	}()

	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-result:
		if err != ErrBusClosed {
			t.Fatalf("expected ErrBusClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("pending publish not released by close")
	}
}

func TestChannelBusConsumeReturnsAfterClose(t *testing.T) {
	bus := NewChannelBus()

	done := make(chan struct{})
	go func() {
		bus.Consume(func(InboundEvent) {})
		close(done)
	}()

	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consume loop did not exit after close")
	}
}
