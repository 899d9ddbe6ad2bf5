package chat

import (
	"encoding/json"
	"testing"
	"time"

	"wavechat_server/internal/model"
	"wavechat_server/pkg/errorx"
)

// fakeUserRepo 内存用户仓库
type fakeUserRepo struct {
	users map[uint]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}

func (r *fakeUserRepo) FindByPhone(phone string) (*model.User, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}

func (r *fakeUserRepo) FindAllExcept(excludeID uint) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.ID != excludeID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) SearchByUsername(keyword string) ([]model.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Create(user *model.User) error { return nil }
func (r *fakeUserRepo) Update(user *model.User) error { return nil }

func (r *fakeUserRepo) UpdatePresence(id uint, status int8, lastSeen time.Time) error {
	if u, ok := r.users[id]; ok {
		u.Status = status
	}
	return nil
}

// fakeMessageRepo 内存消息仓库
type fakeMessageRepo struct {
	created []*model.Message
	fail    bool
}

func (r *fakeMessageRepo) Create(message *model.Message) error {
	if r.fail {
		return errorx.New(errorx.CodeDBError, "数据库错误")
	}
	message.CreatedAt = time.Now()
	r.created = append(r.created, message)
	return nil
}

func (r *fakeMessageRepo) FindBetweenUsers(a, b uint) ([]model.Message, error) { return nil, nil }
func (r *fakeMessageRepo) FindByGroup(groupID uint) ([]model.Message, error)   { return nil, nil }
func (r *fakeMessageRepo) FindByUser(userID uint) ([]model.Message, error)     { return nil, nil }
func (r *fakeMessageRepo) UpdateStatus(uuid int64, status string) error        { return nil }

// fakeCallRepo 内存通话仓库
type fakeCallRepo struct {
	nextID  uint
	created []*model.Call
	updated map[uint]string
}

func newFakeCallRepo() *fakeCallRepo {
	return &fakeCallRepo{nextID: 1, updated: make(map[uint]string)}
}

func (r *fakeCallRepo) Create(call *model.Call) error {
	call.ID = r.nextID
	r.nextID++
	r.created = append(r.created, call)
	return nil
}

func (r *fakeCallRepo) FindByID(id uint) (*model.Call, error) {
	for _, c := range r.created {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "通话记录不存在")
}

func (r *fakeCallRepo) FindByUser(userID uint) ([]model.Call, error) { return nil, nil }

func (r *fakeCallRepo) UpdateStatus(id uint, status string) error {
	r.updated[id] = status
	return nil
}

// fakeNotifier 记录推送调用
type fakeNotifier struct {
	notified []uint
}

func (n *fakeNotifier) Notify(userID uint, title, body string) {
	n.notified = append(n.notified, userID)
}

// testRig 组装一套带 fake 依赖的路由器
type testRig struct {
	registry *PresenceRegistry
	rooms    *RoomMembership
	users    *fakeUserRepo
	messages *fakeMessageRepo
	calls    *fakeCallRepo
	notifier *fakeNotifier
	router   *EventRouter
}

func newTestRig(users ...*model.User) *testRig {
	rig := &testRig{
		registry: NewPresenceRegistry(),
		rooms:    NewRoomMembership(),
		users:    newFakeUserRepo(users...),
		messages: &fakeMessageRepo{},
		calls:    newFakeCallRepo(),
		notifier: &fakeNotifier{},
	}
	rig.router = NewEventRouter(rig.registry, rig.rooms, rig.users, rig.messages, rig.calls, rig.notifier)
	return rig
}

// connect 建立一条测试连接并订阅用户私有主题
func (rig *testRig) connect(userID uint) *UserConn {
	c := NewUserConn(nil, userID, 16)
	rig.registry.Connect(c)
	rig.rooms.Subscribe(c, UserTopic(userID))
	return c
}

// dispatch 以 origin 身份发一帧入站事件
func (rig *testRig) dispatch(t *testing.T, origin *UserConn, event string, payload any) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		t.Fatal(err)
	}
	rig.router.Dispatch(InboundEvent{ConnID: origin.ID, Frame: frame})
}

// recvEvent 从连接取一帧出站事件并解析
func recvEvent(t *testing.T, c *UserConn) Envelope {
	t.Helper()
	select {
	case frame := <-c.send:
		var env Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			t.Fatalf("unmarshal outbound frame: %v", err)
		}
		return env
	default:
		t.Fatal("expected outbound frame, got none")
		return Envelope{}
	}
}

// expectNoEvent 断言连接上没有待投递的帧
func expectNoEvent(t *testing.T, c *UserConn) {
	t.Helper()
	select {
	case frame := <-c.send:
		t.Fatalf("unexpected outbound frame: %s", frame)
	default:
	}
}

func testUser(id uint, username string) *model.User {
	u := &model.User{Username: username}
	u.ID = id
	return u
}

func TestSendMessageDirectDelivery(t *testing.T) {
	rig := newTestRig(testUser(1, "alice"), testUser(2, "bob"))

	alice := rig.connect(1)
	bob := rig.connect(2)

	rig.dispatch(t, alice, EventSendMessage, map[string]any{
		"sender_id":   1,
		"receiver_id": 2,
		"message":     "hello",
	})

	if len(rig.messages.created) != 1 {
		t.Fatalf("expected 1 persisted message, got %d", len(rig.messages.created))
	}
	msg := rig.messages.created[0]
	if msg.Status != model.MessageStatusSent {
		t.Errorf("expected status sent, got %s", msg.Status)
	}
	if msg.Uuid == 0 {
		t.Error("expected snowflake id assigned")
	}

	env := recvEvent(t, bob)
	if env.Event != EventNewMessage {
		t.Fatalf("expected new_message, got %s", env.Event)
	}
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload["sender_name"] != "alice" {
		t.Errorf("expected sender_name alice, got %v", payload["sender_name"])
	}

	// 单聊不回显给发送者
	expectNoEvent(t, alice)
	if len(rig.notifier.notified) != 0 {
		t.Error("receiver is online, push should not fire")
	}
}

func TestSendMessageRequiresExactlyOneTarget(t *testing.T) {
	rig := newTestRig()
	origin := rig.connect(1)

	// 两个目标都带
	rig.dispatch(t, origin, EventSendMessage, map[string]any{
		"sender_id":   1,
		"receiver_id": 2,
		"group_id":    3,
		"message":     "x",
	})
	env := recvEvent(t, origin)
	if env.Event != EventError {
		t.Fatalf("expected error event, got %s", env.Event)
	}

	// 两个目标都不带
	rig.dispatch(t, origin, EventSendMessage, map[string]any{
		"sender_id": 1,
		"message":   "x",
	})
	env = recvEvent(t, origin)
	if env.Event != EventError {
		t.Fatalf("expected error event, got %s", env.Event)
	}

	if len(rig.messages.created) != 0 {
		t.Fatalf("invalid messages must not be persisted, got %d", len(rig.messages.created))
	}
}

func TestSendMessageOfflineReceiver(t *testing.T) {
	rig := newTestRig(testUser(1, "alice"))
	origin := rig.connect(1)

	rig.dispatch(t, origin, EventSendMessage, map[string]any{
		"sender_id":   1,
		"receiver_id": 2,
		"message":     "are you there",
	})

	// 接收者离线：消息照常入库，发起方不收任何错误帧
	if len(rig.messages.created) != 1 {
		t.Fatalf("expected message persisted, got %d", len(rig.messages.created))
	}
	expectNoEvent(t, origin)

	if len(rig.notifier.notified) != 1 || rig.notifier.notified[0] != 2 {
		t.Fatalf("expected push to user 2, got %v", rig.notifier.notified)
	}
}

func TestSendMessagePersistFailure(t *testing.T) {
	rig := newTestRig()
	rig.messages.fail = true
	origin := rig.connect(1)
	receiver := rig.connect(2)

	rig.dispatch(t, origin, EventSendMessage, map[string]any{
		"sender_id":   1,
		"receiver_id": 2,
		"message":     "x",
	})

	env := recvEvent(t, origin)
	if env.Event != EventError {
		t.Fatalf("expected error event to origin, got %s", env.Event)
	}
	expectNoEvent(t, receiver)
}

func TestGroupMessageFanout(t *testing.T) {
	rig := newTestRig(testUser(1, "alice"))

	sender := rig.connect(1)
	member := rig.connect(2)
	outsider := rig.connect(3)

	rig.rooms.Subscribe(sender, GroupTopic(7))
	rig.rooms.Subscribe(member, GroupTopic(7))

	rig.dispatch(t, sender, EventSendMessage, map[string]any{
		"sender_id": 1,
		"group_id":  7,
		"message":   "hi all",
	})

	for _, c := range []*UserConn{sender, member} {
		env := recvEvent(t, c)
		if env.Event != EventNewGroupMessage {
			t.Fatalf("expected new_group_message, got %s", env.Event)
		}
	}
	// 未订阅群主题的连接收不到，即使其用户在线
	expectNoEvent(t, outsider)
}

func TestJoinGroupAckOnlyToOrigin(t *testing.T) {
	rig := newTestRig()
	origin := rig.connect(1)
	other := rig.connect(2)

	rig.dispatch(t, origin, EventJoinGroup, map[string]any{"group_id": 5})

	env := recvEvent(t, origin)
	if env.Event != EventGroupJoined {
		t.Fatalf("expected group_joined, got %s", env.Event)
	}
	expectNoEvent(t, other)

	if members := rig.rooms.MembersOf(GroupTopic(5)); len(members) != 1 {
		t.Fatalf("expected 1 member of group topic, got %d", len(members))
	}
}

func TestTypingRelay(t *testing.T) {
	rig := newTestRig()
	origin := rig.connect(1)
	peer := rig.connect(2)

	rig.dispatch(t, origin, EventTyping, map[string]any{
		"sender_id":   1,
		"receiver_id": 2,
		"is_typing":   true,
	})

	env := recvEvent(t, peer)
	if env.Event != EventUserTyping {
		t.Fatalf("expected user_typing, got %s", env.Event)
	}
	if len(rig.messages.created) != 0 {
		t.Error("typing must never be persisted")
	}
}

func TestTypingToOfflineUserIsNoop(t *testing.T) {
	rig := newTestRig()
	origin := rig.connect(1)

	rig.dispatch(t, origin, EventTyping, map[string]any{
		"sender_id":   1,
		"receiver_id": 9,
		"is_typing":   true,
	})

	expectNoEvent(t, origin)
	if len(rig.notifier.notified) != 0 {
		t.Error("typing must not trigger push")
	}
}

func TestMarkReadRelay(t *testing.T) {
	rig := newTestRig()
	reader := rig.connect(2)
	author := rig.connect(1)

	rig.dispatch(t, reader, EventMarkRead, map[string]any{
		"sender_id":   1,
		"receiver_id": 2,
	})

	env := recvEvent(t, author)
	if env.Event != EventMessagesRead {
		t.Fatalf("expected messages_read, got %s", env.Event)
	}
	var payload map[string]any
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload["reader_id"] != float64(2) {
		t.Errorf("expected reader_id 2, got %v", payload["reader_id"])
	}
}

func TestUnknownEventAcknowledgedWithError(t *testing.T) {
	rig := newTestRig()
	origin := rig.connect(1)

	rig.router.Dispatch(InboundEvent{
		ConnID: origin.ID,
		Frame:  []byte(`{"event":"no_such_event","data":{}}`),
	})

	env := recvEvent(t, origin)
	if env.Event != EventError {
		t.Fatalf("expected error event, got %s", env.Event)
	}
}

func TestMalformedFrameDoesNotPanic(t *testing.T) {
	rig := newTestRig()
	origin := rig.connect(1)

	rig.router.Dispatch(InboundEvent{ConnID: origin.ID, Frame: []byte("not json")})

	env := recvEvent(t, origin)
	if env.Event != EventError {
		t.Fatalf("expected error event, got %s", env.Event)
	}
}
