package chat

import (
	"testing"

	"github.com/google/uuid"
)

func TestSubscribeIdempotent(t *testing.T) {
	rooms := NewRoomMembership()
	c := NewUserConn(nil, 1, 4)

	rooms.Subscribe(c, GroupTopic(7))
	rooms.Subscribe(c, GroupTopic(7))

	if got := len(rooms.MembersOf(GroupTopic(7))); got != 1 {
		t.Fatalf("duplicate subscribe must not add a second entry, got %d", got)
	}
}

func TestMembersOfEmptyTopic(t *testing.T) {
	rooms := NewRoomMembership()
	if got := len(rooms.MembersOf(GroupTopic(99))); got != 0 {
		t.Fatalf("unknown topic must have no members, got %d", got)
	}
}

func TestCleanupAllRemovesEverySubscription(t *testing.T) {
	rooms := NewRoomMembership()
	c := NewUserConn(nil, 1, 4)
	other := NewUserConn(nil, 2, 4)

	rooms.Subscribe(c, UserTopic(1))
	rooms.Subscribe(c, GroupTopic(7))
	rooms.Subscribe(c, GroupTopic(8))
	rooms.Subscribe(other, GroupTopic(7))

	rooms.CleanupAll(c.ID)

	if got := len(rooms.MembersOf(UserTopic(1))); got != 0 {
		t.Errorf("user topic should be empty, got %d", got)
	}
	if got := len(rooms.MembersOf(GroupTopic(8))); got != 0 {
		t.Errorf("group topic 8 should be empty, got %d", got)
	}
	// 其他连接的订阅不受影响
	if got := len(rooms.MembersOf(GroupTopic(7))); got != 1 {
		t.Errorf("group topic 7 should keep the other conn, got %d", got)
	}
}

func TestCleanupAllUnknownConnIsNoop(t *testing.T) {
	rooms := NewRoomMembership()
	rooms.CleanupAll(uuid.New())
}

func TestUserAndGroupTopicsAreDistinct(t *testing.T) {
	rooms := NewRoomMembership()
	c := NewUserConn(nil, 5, 4)

	// 同一数字 ID，不同类型，互不相干
	rooms.Subscribe(c, UserTopic(5))

	if got := len(rooms.MembersOf(GroupTopic(5))); got != 0 {
		t.Fatalf("group:5 must not alias user:5, got %d members", got)
	}
	if got := len(rooms.MembersOf(UserTopic(5))); got != 1 {
		t.Fatalf("expected 1 member of user:5, got %d", got)
	}
}
