package chat

import (
	"sync"
	"testing"
)

func TestDeliverAfterCloseReturnsFalse(t *testing.T) {
	c := NewUserConn(nil, 1, 4)
	c.Close()

	if c.Deliver([]byte("x")) {
		t.Fatal("deliver to a closed connection must report false")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewUserConn(nil, 1, 4)
	c.Close()
	c.Close()
}

func TestDeliverDropsWhenBufferFull(t *testing.T) {
	c := NewUserConn(nil, 1, 2)

	if !c.Deliver([]byte("a")) || !c.Deliver([]byte("b")) {
		t.Fatal("deliveries within buffer capacity must succeed")
	}
	if c.Deliver([]byte("c")) {
		t.Fatal("delivery to a full buffer must drop, not block")
	}
}

// 扇出与断开的竞态：关闭期间的并发投递不得 panic
func TestConcurrentDeliverAndClose(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := NewUserConn(nil, 1, 4)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				c.Deliver([]byte("frame"))
			}
		}()
		go func() {
			defer wg.Done()
			c.Close()
		}()
		wg.Wait()
	}
}

func TestServerDisconnectRaces(t *testing.T) {
	rig := newTestRig(testUser(1, "alice"))
	server := &ChatServer{
		registry: rig.registry,
		rooms:    rig.rooms,
		router:   rig.router,
		users:    rig.users,
	}

	c := NewUserConn(nil, 1, 4)
	server.register(c)
	recvEvent(t, c) // user_online 广播
	rig.users.users[1].Status = 1

	// 读写泵先后退出时 Disconnect 会被触发两次，第二次必须是 no-op
	server.Disconnect(c)
	server.Disconnect(c)

	if rig.registry.IsOnline(1) {
		t.Fatal("user must be offline after disconnect")
	}
	if got := len(rig.rooms.MembersOf(UserTopic(1))); got != 0 {
		t.Fatalf("subscriptions must be cleaned up, got %d", got)
	}
	if rig.users.users[1].Status != 0 {
		t.Fatal("offline status must be persisted on the last disconnect")
	}
}
