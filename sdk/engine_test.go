package sdk

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChannel records emissions and lets tests dispatch incoming frames
type fakeChannel struct {
	handlers map[string]EventHandler
	emitted  []Frame
	joined   []int64
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{handlers: make(map[string]EventHandler)}
}

func (f *fakeChannel) Connect() error { return nil }

func (f *fakeChannel) JoinConversation(conversationId int64) error {
	f.joined = append(f.joined, conversationId)
	return nil
}

func (f *fakeChannel) Emit(event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	f.emitted = append(f.emitted, Frame{Event: event, Data: data})
	return nil
}

func (f *fakeChannel) On(event string, handler EventHandler) { f.handlers[event] = handler }
func (f *fakeChannel) Off(event string)                      { delete(f.handlers, event) }
func (f *fakeChannel) Close() error                          { return nil }

// dispatch simulates a server frame arriving
func (f *fakeChannel) dispatch(t *testing.T, event string, payload interface{}) {
	t.Helper()
	handler := f.handlers[event]
	require.NotNil(t, handler, "no handler bound for %s", event)
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	handler(data)
}

func (f *fakeChannel) emittedEvents(name string) int {
	n := 0
	for _, fr := range f.emitted {
		if fr.Event == name {
			n++
		}
	}
	return n
}

// fakeAPI is a scriptable conversationAPI
type fakeAPI struct {
	authenticated bool
	conversation  *Conversation
	inbox         []*ConversationInfo
	history       map[int64][]*Message

	listCalls     int
	sendCalls     int
	markReadCalls chan int64

	// onListMessages runs inside ListMessages, before returning
	onListMessages func()
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		authenticated: true,
		history:       make(map[int64][]*Message),
		markReadCalls: make(chan int64, 16),
	}
}

func (f *fakeAPI) Authenticated() bool { return f.authenticated }

func (f *fakeAPI) MyConversation(ctx context.Context) (*Conversation, error) {
	return f.conversation, nil
}

func (f *fakeAPI) ListConversations(ctx context.Context) ([]*ConversationInfo, error) {
	return f.inbox, nil
}

func (f *fakeAPI) ListMessages(ctx context.Context, conversationId int64) ([]*Message, error) {
	f.listCalls++
	if f.onListMessages != nil {
		hook := f.onListMessages
		f.onListMessages = nil
		hook()
	}
	return f.history[conversationId], nil
}

func (f *fakeAPI) SendMessage(ctx context.Context, conversationId int64, content string) (*Message, error) {
	f.sendCalls++
	return &Message{Id: int64(f.sendCalls), ConversationId: conversationId, Content: content}, nil
}

func (f *fakeAPI) MarkRead(ctx context.Context, conversationId int64) ([]int64, error) {
	f.markReadCalls <- conversationId
	return nil, nil
}

func waitForMarkRead(t *testing.T, api *fakeAPI) int64 {
	t.Helper()
	select {
	case id := <-api.markReadCalls:
		return id
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for mark read call")
		return 0
	}
}

func msg(id, convId int64, role Role, content string) *Message {
	return &Message{Id: id, ConversationId: convId, SenderRole: role, Content: content}
}

func TestEngine_InitializeUnauthenticated(t *testing.T) {
	api := newFakeAPI()
	api.authenticated = false
	ch := newFakeChannel()

	engine := NewConversationEngine(api, ch, 1, RolePetOwner)
	engine.Initialize(context.Background())

	assert.Equal(t, StateIdle, engine.State())
	assert.Nil(t, engine.Conversation())
	assert.Empty(t, ch.handlers, "no handlers should be bound")
	assert.Empty(t, ch.joined, "no room should be joined")
}

func TestEngine_InitializeOwner(t *testing.T) {
	api := newFakeAPI()
	api.conversation = &Conversation{Id: 7, OwnerId: 1, UnreadCount: 2}
	ch := newFakeChannel()

	engine := NewConversationEngine(api, ch, 1, RolePetOwner)
	engine.Initialize(context.Background())

	require.NotNil(t, engine.Conversation())
	assert.Equal(t, int64(7), engine.Conversation().Id)
	assert.Equal(t, 2, engine.UnreadCount())
	assert.True(t, engine.HasUnread())
	assert.Equal(t, []int64{7}, ch.joined)
}

func TestEngine_InitializeAdmin(t *testing.T) {
	api := newFakeAPI()
	api.inbox = []*ConversationInfo{
		{ConversationId: 1, OwnerId: 10, UnreadCount: 1},
		{ConversationId: 2, OwnerId: 11},
	}
	ch := newFakeChannel()

	engine := NewConversationEngine(api, ch, 99, RoleAdmin)
	engine.Initialize(context.Background())

	assert.Len(t, engine.Conversations(), 2)
	assert.Equal(t, []int64{1, 2}, ch.joined, "every inbox row's room joins up front")
}

func TestEngine_AdminInboxLiveUpdate(t *testing.T) {
	api := newFakeAPI()
	api.inbox = []*ConversationInfo{
		{ConversationId: 1, OwnerId: 10},
		{ConversationId: 2, OwnerId: 11},
	}
	ch := newFakeChannel()

	engine := NewConversationEngine(api, ch, 99, RoleAdmin)
	engine.Initialize(context.Background())
	engine.LoadMessages(context.Background(), 1)

	// A broadcast for an unopened conversation lands on its inbox row
	ch.dispatch(t, EventNewMessage, &Message{
		Id: 30, ConversationId: 2, SenderRole: RolePetOwner,
		Content: "is Biscuit still available?", CreatedAt: 1700000000000,
	})

	rows := engine.Conversations()
	require.Len(t, rows, 2)
	assert.Equal(t, "is Biscuit still available?", rows[1].LastMessage)
	assert.Equal(t, int64(1700000000000), rows[1].LastMessageAt)
	assert.Equal(t, int64(1), rows[1].UnreadCount)
	assert.Zero(t, rows[0].UnreadCount)
}

func TestEngine_MarkReadClearsInboxRow(t *testing.T) {
	api := newFakeAPI()
	api.inbox = []*ConversationInfo{
		{ConversationId: 7, OwnerId: 10, UnreadCount: 3},
		{ConversationId: 8, OwnerId: 11, UnreadCount: 1},
	}
	ch := newFakeChannel()

	engine := NewConversationEngine(api, ch, 99, RoleAdmin)
	engine.Initialize(context.Background())
	engine.LoadMessages(context.Background(), 7)

	engine.MarkRead(context.Background(), 7)
	waitForMarkRead(t, api)

	rows := engine.Conversations()
	require.Len(t, rows, 2)
	assert.Zero(t, rows[0].UnreadCount, "the row just read must clear its badge")
	assert.Equal(t, int64(1), rows[1].UnreadCount, "other rows keep their counts")
}

func TestEngine_IncomingMessageDedup(t *testing.T) {
	api := newFakeAPI()
	ch := newFakeChannel()

	engine := NewConversationEngine(api, ch, 1, RolePetOwner)
	engine.bindHandlers()
	engine.LoadMessages(context.Background(), 7)

	m := msg(100, 7, RoleAdmin, "hello")
	ch.dispatch(t, EventNewMessage, m)
	ch.dispatch(t, EventNewMessage, m)
	ch.dispatch(t, EventNewMessage, m)

	require.Len(t, engine.Messages(), 1)
	assert.Equal(t, int64(100), engine.Messages()[0].Id)
}

func TestEngine_LoadDedupsAgainstLiveMessages(t *testing.T) {
	api := newFakeAPI()
	api.history[7] = []*Message{
		msg(1, 7, RolePetOwner, "hi"),
		msg(2, 7, RoleAdmin, "hello"),
	}
	ch := newFakeChannel()

	engine := NewConversationEngine(api, ch, 1, RolePetOwner)
	engine.bindHandlers()

	// The broadcast for message 2 and a brand new message 3 land while the
	// history fetch is in flight
	api.onListMessages = func() {
		ch.dispatch(t, EventNewMessage, msg(2, 7, RoleAdmin, "hello"))
		ch.dispatch(t, EventNewMessage, msg(3, 7, RoleAdmin, "anyone there?"))
	}

	engine.LoadMessages(context.Background(), 7)

	msgs := engine.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, int64(1), msgs[0].Id)
	assert.Equal(t, int64(2), msgs[1].Id)
	assert.Equal(t, int64(3), msgs[2].Id)
	assert.Equal(t, StateReady, engine.State())
}

func TestEngine_StaleLoadDiscarded(t *testing.T) {
	api := newFakeAPI()
	api.history[1] = []*Message{msg(10, 1, RoleAdmin, "old thread")}
	api.history[2] = []*Message{msg(20, 2, RoleAdmin, "new thread")}
	ch := newFakeChannel()

	engine := NewConversationEngine(api, ch, 99, RoleAdmin)
	engine.bindHandlers()

	// While conversation 1's fetch is in flight the admin switches to
	// conversation 2; the first load must not clobber the second
	api.onListMessages = func() {
		engine.LoadMessages(context.Background(), 2)
	}

	engine.LoadMessages(context.Background(), 1)

	msgs := engine.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, int64(20), msgs[0].Id)
}

func TestEngine_MarkReadIdempotent(t *testing.T) {
	api := newFakeAPI()
	api.history[7] = []*Message{
		msg(1, 7, RolePetOwner, "question one"),
		msg(2, 7, RolePetOwner, "question two"),
		msg(3, 7, RolePetOwner, "question three"),
		msg(4, 7, RoleAdmin, "noted"),
	}
	ch := newFakeChannel()

	engine := NewConversationEngine(api, ch, 99, RoleAdmin)
	engine.bindHandlers()
	engine.LoadMessages(context.Background(), 7)

	engine.Hide()
	ch.dispatch(t, EventNewMessage, msg(5, 7, RolePetOwner, "still there?"))
	require.Equal(t, 1, engine.UnreadCount())

	engine.MarkRead(context.Background(), 7)
	waitForMarkRead(t, api)
	engine.MarkRead(context.Background(), 7)
	waitForMarkRead(t, api)

	assert.Equal(t, 0, engine.UnreadCount())
	assert.False(t, engine.HasUnread())

	for _, m := range engine.Messages() {
		if m.SenderRole == RolePetOwner {
			assert.True(t, m.IsRead, "owner message %d should be read", m.Id)
		} else {
			assert.False(t, m.IsRead, "own message %d must not be touched", m.Id)
		}
	}
}

func TestEngine_SendMessage(t *testing.T) {
	api := newFakeAPI()
	ch := newFakeChannel()
	engine := NewConversationEngine(api, ch, 1, RolePetOwner)
	engine.bindHandlers()
	engine.LoadMessages(context.Background(), 7)

	t.Run("blank content rejected before network", func(t *testing.T) {
		err := engine.SendMessage(context.Background(), 7, "   \n\t ")
		assert.ErrorIs(t, err, ErrMessageEmpty)
		assert.Equal(t, 0, api.sendCalls)
	})

	t.Run("no local append, broadcast is the source of truth", func(t *testing.T) {
		require.NoError(t, engine.SendMessage(context.Background(), 7, "hello"))
		assert.Equal(t, 1, api.sendCalls)
		assert.Empty(t, engine.Messages())

		ch.dispatch(t, EventNewMessage, msg(1, 7, RolePetOwner, "hello"))
		assert.Len(t, engine.Messages(), 1)

		// A second delivery of the same broadcast is dropped
		ch.dispatch(t, EventNewMessage, msg(1, 7, RolePetOwner, "hello"))
		assert.Len(t, engine.Messages(), 1)
	})
}

func TestEngine_UnreadOnlyWhenHiddenAndCounterpart(t *testing.T) {
	api := newFakeAPI()
	ch := newFakeChannel()
	engine := NewConversationEngine(api, ch, 1, RolePetOwner)
	engine.bindHandlers()
	engine.LoadMessages(context.Background(), 7)
	engine.Show(context.Background())
	waitForMarkRead(t, api)

	ch.dispatch(t, EventNewMessage, msg(1, 7, RoleAdmin, "visible"))
	assert.Equal(t, 0, engine.UnreadCount(), "visible messages don't badge")

	engine.Hide()
	ch.dispatch(t, EventNewMessage, msg(2, 7, RoleAdmin, "hidden"))
	assert.Equal(t, 1, engine.UnreadCount())
	assert.True(t, engine.HasUnread())

	ch.dispatch(t, EventNewMessage, msg(3, 7, RolePetOwner, "my own"))
	assert.Equal(t, 1, engine.UnreadCount(), "own messages never count as unread")
}

func TestEngine_ReadReceiptFlipsOnlyOwnMessages(t *testing.T) {
	api := newFakeAPI()
	api.history[7] = []*Message{
		msg(1, 7, RolePetOwner, "mine"),
		msg(2, 7, RoleAdmin, "theirs"),
		msg(3, 7, RolePetOwner, "mine too"),
	}
	ch := newFakeChannel()
	engine := NewConversationEngine(api, ch, 1, RolePetOwner)
	engine.bindHandlers()
	engine.LoadMessages(context.Background(), 7)

	ch.dispatch(t, EventMessagesRead, &readReceipt{
		ConversationId: 7,
		ReaderRole:     RoleAdmin,
		MessageIds:     []int64{1, 3},
	})

	msgs := engine.Messages()
	assert.True(t, msgs[0].IsRead)
	assert.False(t, msgs[1].IsRead, "counterpart's message is their read state, not ours")
	assert.True(t, msgs[2].IsRead)
}

func TestEngine_TypingSignals(t *testing.T) {
	api := newFakeAPI()
	ch := newFakeChannel()
	engine := NewConversationEngine(api, ch, 1, RolePetOwner)
	engine.bindHandlers()
	engine.LoadMessages(context.Background(), 7)

	t.Run("incoming typing filtered by conversation and role", func(t *testing.T) {
		ch.dispatch(t, EventTyping, &typingPayload{ConversationId: 8, SenderRole: RoleAdmin})
		assert.False(t, engine.PeerTyping(), "other conversation's typing ignored")

		ch.dispatch(t, EventTyping, &typingPayload{ConversationId: 7, SenderRole: RolePetOwner})
		assert.False(t, engine.PeerTyping(), "own role's typing ignored")

		ch.dispatch(t, EventTyping, &typingPayload{ConversationId: 7, SenderRole: RoleAdmin})
		assert.True(t, engine.PeerTyping())

		ch.dispatch(t, EventStopTyping, &typingPayload{ConversationId: 7, SenderRole: RoleAdmin})
		assert.False(t, engine.PeerTyping())
	})
}

func TestEngine_TypingEmissionCoalesced(t *testing.T) {
	api := newFakeAPI()
	ch := newFakeChannel()
	engine := NewConversationEngine(api, ch, 1, RolePetOwner)

	var pending []func()
	engine.afterFunc = func(d time.Duration, f func()) *time.Timer {
		pending = append(pending, f)
		return time.NewTimer(time.Hour)
	}

	for i := 0; i < 10; i++ {
		engine.NotifyKeystroke(7)
	}

	assert.Equal(t, 1, ch.emittedEvents(EventTyping), "rapid typing emits one typing event")
	assert.Equal(t, 0, ch.emittedEvents(EventStopTyping))

	// Quiet window elapses: only the last countdown is still owned by the
	// conversation's timer entry
	pending[len(pending)-1]()

	assert.Equal(t, 1, ch.emittedEvents(EventStopTyping), "one stop_typing after the pause")

	// Next keystroke starts a fresh typing burst
	engine.NotifyKeystroke(7)
	assert.Equal(t, 2, ch.emittedEvents(EventTyping))
}

func TestEngine_ShutdownUnbindsHandlers(t *testing.T) {
	api := newFakeAPI()
	ch := newFakeChannel()
	engine := NewConversationEngine(api, ch, 1, RolePetOwner)
	engine.bindHandlers()
	require.Len(t, ch.handlers, 4)

	engine.Shutdown()
	assert.Empty(t, ch.handlers)
}
