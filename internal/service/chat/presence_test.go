package chat

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestConnectFirstConnectionEdge(t *testing.T) {
	reg := NewPresenceRegistry()

	c1 := NewUserConn(nil, 1, 4)
	if first := reg.Connect(c1); !first {
		t.Fatal("first connection of a user must report the online edge")
	}

	c2 := NewUserConn(nil, 1, 4)
	if first := reg.Connect(c2); first {
		t.Fatal("second connection of the same user must not report the online edge")
	}

	if !reg.IsOnline(1) {
		t.Fatal("user with live connections must be online")
	}
}

func TestConnectIdempotentPerHandle(t *testing.T) {
	reg := NewPresenceRegistry()
	c := NewUserConn(nil, 1, 4)

	if first := reg.Connect(c); !first {
		t.Fatal("expected online edge")
	}
	// 同一句柄重复登记不产生第二次上线沿
	if first := reg.Connect(c); first {
		t.Fatal("re-registering the same handle must not report another edge")
	}
	if got := len(reg.ConnectionsOf(1)); got != 1 {
		t.Fatalf("expected 1 connection, got %d", got)
	}
}

func TestDisconnectLastConnectionEdge(t *testing.T) {
	reg := NewPresenceRegistry()
	c1 := NewUserConn(nil, 1, 4)
	c2 := NewUserConn(nil, 1, 4)
	reg.Connect(c1)
	reg.Connect(c2)

	userID, last, ok := reg.Disconnect(c1.ID)
	if !ok || userID != 1 {
		t.Fatalf("expected ok disconnect for user 1, got ok=%v user=%d", ok, userID)
	}
	if last {
		t.Fatal("user still has another connection, offline edge must not fire")
	}
	if !reg.IsOnline(1) {
		t.Fatal("user must stay online while one connection remains")
	}

	_, last, ok = reg.Disconnect(c2.ID)
	if !ok || !last {
		t.Fatalf("expected offline edge on last disconnect, got ok=%v last=%v", ok, last)
	}
	if reg.IsOnline(1) {
		t.Fatal("user must be offline after last disconnect")
	}
}

func TestDisconnectUnknownConnIsNoop(t *testing.T) {
	reg := NewPresenceRegistry()

	_, _, ok := reg.Disconnect(uuid.New())
	if ok {
		t.Fatal("unknown connection must be a silent no-op")
	}

	// 同一连接重复注销也是 no-op
	c := NewUserConn(nil, 1, 4)
	reg.Connect(c)
	if _, _, ok := reg.Disconnect(c.ID); !ok {
		t.Fatal("first disconnect must succeed")
	}
	if _, _, ok := reg.Disconnect(c.ID); ok {
		t.Fatal("second disconnect of the same conn must be a no-op")
	}
}

func TestAllConnectionsSnapshot(t *testing.T) {
	reg := NewPresenceRegistry()
	for i := uint(1); i <= 3; i++ {
		reg.Connect(NewUserConn(nil, i, 4))
	}
	reg.Connect(NewUserConn(nil, 1, 4))

	if got := len(reg.AllConnections()); got != 4 {
		t.Fatalf("expected 4 connections in snapshot, got %d", got)
	}
}

func TestRegistryConcurrentChurn(t *testing.T) {
	reg := NewPresenceRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			c := NewUserConn(nil, userID, 4)
			reg.Connect(c)
			reg.IsOnline(userID)
			reg.AllConnections()
			reg.Disconnect(c.ID)
		}(uint(i % 4))
	}
	wg.Wait()

	for i := uint(0); i < 4; i++ {
		if reg.IsOnline(i) {
			t.Fatalf("user %d should be offline after churn", i)
		}
	}
}
