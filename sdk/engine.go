package sdk

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/mbeoliero/kit/log"
)

// EngineState tracks history loading for a conversation view
type EngineState int

const (
	StateIdle EngineState = iota
	StateLoading
	StateReady
)

// TypingQuietWindow is how long the engine waits after the last keystroke
// before emitting stop_typing
const TypingQuietWindow = 2 * time.Second

// conversationAPI is the REST surface the engine needs. *Client satisfies it;
// tests inject a fake.
type conversationAPI interface {
	Authenticated() bool
	MyConversation(ctx context.Context) (*Conversation, error)
	ListConversations(ctx context.Context) ([]*ConversationInfo, error)
	ListMessages(ctx context.Context, conversationId int64) ([]*Message, error)
	SendMessage(ctx context.Context, conversationId int64, content string) (*Message, error)
	MarkRead(ctx context.Context, conversationId int64) ([]int64, error)
}

// Authenticated reports whether the client holds a login session
func (c *Client) Authenticated() bool {
	return c.token != "" && c.userId != 0
}

// typingPayload is the body of typing and stop_typing emissions
type typingPayload struct {
	ConversationId int64 `json:"conversation_id"`
	SenderId       int64 `json:"sender_id"`
	SenderRole     Role  `json:"sender_role"`
}

// readReceipt is the messages_read payload
type readReceipt struct {
	ConversationId int64   `json:"conversation_id"`
	ReaderRole     Role    `json:"reader_role"`
	MessageIds     []int64 `json:"message_ids"`
}

// ConversationEngine drives one conversation view: message history, unread
// counters, read receipts and typing signals. Owner views hold their single
// conversation; admin views hold the inbox and switch between conversations.
type ConversationEngine struct {
	api     conversationAPI
	channel EventChannel
	userId  int64
	role    Role

	mu           sync.Mutex
	state        EngineState
	visible      bool
	activeConvId int64
	messages     []*Message
	seen         map[int64]struct{}
	unreadCount  int
	hasUnread    bool
	peerTyping   bool

	conversation  *Conversation       // owner view
	conversations []*ConversationInfo // admin view

	loadGen      uint64
	typingTimers map[int64]*time.Timer

	// afterFunc is swapped out in tests to drive the quiet window by hand
	afterFunc   func(d time.Duration, f func()) *time.Timer
	quietWindow time.Duration
}

// NewConversationEngine creates an engine for one view. role decides the
// initialize path: pet owners fetch their single conversation, admins fetch
// the inbox.
func NewConversationEngine(api conversationAPI, channel EventChannel, userId int64, role Role) *ConversationEngine {
	return &ConversationEngine{
		api:          api,
		channel:      channel,
		userId:       userId,
		role:         role,
		seen:         make(map[int64]struct{}),
		typingTimers: make(map[int64]*time.Timer),
		afterFunc:    time.AfterFunc,
		quietWindow:  TypingQuietWindow,
	}
}

// Initialize connects the channel, binds handlers and fetches the view's
// conversation(s). When the user is not logged in it does nothing: chat is
// optional until login, so the caller sees an empty engine, not an error.
func (e *ConversationEngine) Initialize(ctx context.Context) {
	if e.api == nil || !e.api.Authenticated() {
		log.CtxDebug(ctx, "conversation engine: not authenticated, skipping init")
		return
	}

	if err := e.channel.Connect(); err != nil {
		log.CtxWarn(ctx, "conversation engine: connect failed: %v", err)
		return
	}

	e.bindHandlers()

	if e.role == RoleAdmin {
		convs, err := e.api.ListConversations(ctx)
		if err != nil {
			log.CtxWarn(ctx, "conversation engine: list conversations failed: %v", err)
			return
		}
		e.mu.Lock()
		e.conversations = convs
		e.mu.Unlock()

		// Every inbox row needs its room joined up front, otherwise no
		// broadcasts arrive for conversations the view has not opened and
		// the inbox never moves in real time.
		for _, conv := range convs {
			if err := e.channel.JoinConversation(conv.ConversationId); err != nil {
				log.CtxWarn(ctx, "conversation engine: join failed: %v", err)
			}
		}
		return
	}

	conv, err := e.api.MyConversation(ctx)
	if err != nil {
		log.CtxWarn(ctx, "conversation engine: fetch conversation failed: %v", err)
		return
	}

	e.mu.Lock()
	e.conversation = conv
	e.unreadCount = int(conv.UnreadCount)
	e.hasUnread = conv.UnreadCount > 0
	e.mu.Unlock()

	if err := e.channel.JoinConversation(conv.Id); err != nil {
		log.CtxWarn(ctx, "conversation engine: join failed: %v", err)
	}
}

// bindHandlers subscribes the engine's handlers, unbinding any previous
// registration first so remounting a view never stacks duplicates
func (e *ConversationEngine) bindHandlers() {
	e.channel.Off(EventNewMessage)
	e.channel.On(EventNewMessage, e.onNewMessage)

	e.channel.Off(EventTyping)
	e.channel.On(EventTyping, e.onTyping)

	e.channel.Off(EventStopTyping)
	e.channel.On(EventStopTyping, e.onStopTyping)

	e.channel.Off(EventMessagesRead)
	e.channel.On(EventMessagesRead, e.onMessagesRead)
}

// LoadMessages makes conversationId the active conversation and replaces the
// in-memory history with the server's. A generation counter captured before
// the fetch keeps a superseded load from clobbering a newer one, and live
// messages that raced in during the fetch are kept.
func (e *ConversationEngine) LoadMessages(ctx context.Context, conversationId int64) {
	e.mu.Lock()
	e.loadGen++
	gen := e.loadGen
	e.activeConvId = conversationId
	e.state = StateLoading
	e.peerTyping = false
	e.mu.Unlock()

	if err := e.channel.JoinConversation(conversationId); err != nil {
		log.CtxWarn(ctx, "conversation engine: join failed: %v", err)
	}

	msgs, err := e.api.ListMessages(ctx, conversationId)
	if err != nil {
		log.CtxWarn(ctx, "conversation engine: load messages failed: %v", err)
		e.mu.Lock()
		if e.loadGen == gen {
			e.state = StateIdle
		}
		e.mu.Unlock()
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.loadGen != gen {
		// A newer load or conversation switch superseded this fetch
		return
	}

	seen := make(map[int64]struct{}, len(msgs))
	history := make([]*Message, 0, len(msgs))
	for _, m := range msgs {
		if _, ok := seen[m.Id]; ok {
			continue
		}
		seen[m.Id] = struct{}{}
		history = append(history, m)
	}

	// Keep live messages that arrived for this conversation mid-fetch
	for _, m := range e.messages {
		if m.ConversationId != conversationId {
			continue
		}
		if _, ok := seen[m.Id]; ok {
			continue
		}
		seen[m.Id] = struct{}{}
		history = append(history, m)
	}

	e.messages = history
	e.seen = seen
	e.state = StateReady
}

// SendMessage posts a message. Blank content is rejected before any network
// call. The stored message is not appended locally; the authoritative copy
// arrives through the channel broadcast and the seen-set keeps the two
// delivery paths from duplicating it.
func (e *ConversationEngine) SendMessage(ctx context.Context, conversationId int64, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrMessageEmpty
	}

	if _, err := e.api.SendMessage(ctx, conversationId, content); err != nil {
		log.CtxWarn(ctx, "conversation engine: send failed: %v", err)
		return err
	}
	return nil
}

// MarkRead flips the counterpart's messages to read, locally first and then
// on the server. Running it again with nothing unread changes nothing.
func (e *ConversationEngine) MarkRead(ctx context.Context, conversationId int64) {
	e.mu.Lock()
	if e.activeConvId == conversationId {
		for _, m := range e.messages {
			if m.SenderRole != e.role {
				m.IsRead = true
			}
		}
	}
	for _, conv := range e.conversations {
		if conv.ConversationId == conversationId {
			conv.UnreadCount = 0
		}
	}
	e.unreadCount = 0
	e.hasUnread = false
	e.mu.Unlock()

	go func() {
		if _, err := e.api.MarkRead(ctx, conversationId); err != nil {
			log.CtxWarn(ctx, "conversation engine: mark read failed: %v", err)
		}
	}()
}

// Show marks the view visible and reads the active conversation
func (e *ConversationEngine) Show(ctx context.Context) {
	e.mu.Lock()
	e.visible = true
	e.hasUnread = false
	convId := e.activeConvId
	e.mu.Unlock()

	if convId != 0 {
		e.MarkRead(ctx, convId)
	}
}

// Hide marks the view hidden. Loaded state is kept.
func (e *ConversationEngine) Hide() {
	e.mu.Lock()
	e.visible = false
	e.mu.Unlock()
}

// NotifyKeystroke feeds the typing emitter. The first keystroke emits a
// typing event; every keystroke restarts the quiet window; when it elapses
// with no further input, one stop_typing goes out.
func (e *ConversationEngine) NotifyKeystroke(conversationId int64) {
	e.mu.Lock()
	prev, active := e.typingTimers[conversationId]
	if active {
		prev.Stop()
	}
	var timer *time.Timer
	timer = e.afterFunc(e.quietWindow, func() {
		e.typingExpired(conversationId, timer)
	})
	e.typingTimers[conversationId] = timer
	e.mu.Unlock()

	if !active {
		e.emitTyping(EventTyping, conversationId)
	}
}

// typingExpired fires when the quiet window elapses. A countdown that was
// already replaced by a newer keystroke does nothing.
func (e *ConversationEngine) typingExpired(conversationId int64, timer *time.Timer) {
	e.mu.Lock()
	if e.typingTimers[conversationId] != timer {
		e.mu.Unlock()
		return
	}
	delete(e.typingTimers, conversationId)
	e.mu.Unlock()

	e.emitTyping(EventStopTyping, conversationId)
}

func (e *ConversationEngine) emitTyping(event string, conversationId int64) {
	err := e.channel.Emit(event, &typingPayload{
		ConversationId: conversationId,
		SenderId:       e.userId,
		SenderRole:     e.role,
	})
	if err != nil {
		log.Debug("conversation engine: emit %s failed: %v", event, err)
	}
}

// onNewMessage appends a broadcast message to the active history. When the
// view is hidden and the sender is the counterpart, the unread counter and
// badge flag go up. A visible message still stays unread until MarkRead.
func (e *ConversationEngine) onNewMessage(data json.RawMessage) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Warn("conversation engine: bad new_message payload: %v", err)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if msg.ConversationId != e.activeConvId {
		e.bumpInboxLocked(&msg)
		return
	}

	if _, ok := e.seen[msg.Id]; ok {
		return
	}
	e.seen[msg.Id] = struct{}{}
	e.messages = append(e.messages, &msg)

	if !e.visible && msg.SenderRole != e.role {
		e.unreadCount++
		e.hasUnread = true
	}
}

// bumpInboxLocked updates the admin inbox row for a message in a
// conversation the view is not currently showing
func (e *ConversationEngine) bumpInboxLocked(msg *Message) {
	for _, conv := range e.conversations {
		if conv.ConversationId == msg.ConversationId {
			conv.LastMessage = msg.Content
			conv.LastMessageAt = msg.CreatedAt
			if msg.SenderRole != e.role {
				conv.UnreadCount++
			}
			return
		}
	}
}

func (e *ConversationEngine) onTyping(data json.RawMessage) {
	e.setPeerTyping(data, true)
}

func (e *ConversationEngine) onStopTyping(data json.RawMessage) {
	e.setPeerTyping(data, false)
}

func (e *ConversationEngine) setPeerTyping(data json.RawMessage, typing bool) {
	var payload typingPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if payload.ConversationId != e.activeConvId || payload.SenderRole == e.role {
		return
	}
	e.peerTyping = typing
}

// onMessagesRead applies a counterpart's read receipt: only messages the
// current user sent flip, never the reverse direction
func (e *ConversationEngine) onMessagesRead(data json.RawMessage) {
	var receipt readReceipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if receipt.ConversationId != e.activeConvId || receipt.ReaderRole == e.role {
		return
	}

	ids := make(map[int64]struct{}, len(receipt.MessageIds))
	for _, id := range receipt.MessageIds {
		ids[id] = struct{}{}
	}

	for _, m := range e.messages {
		if m.SenderRole != e.role {
			continue
		}
		if _, ok := ids[m.Id]; ok {
			m.IsRead = true
		}
	}
}

// Shutdown unbinds the engine's handlers and cancels any typing timers.
// The shared channel stays open for other consumers.
func (e *ConversationEngine) Shutdown() {
	e.channel.Off(EventNewMessage)
	e.channel.Off(EventTyping)
	e.channel.Off(EventStopTyping)
	e.channel.Off(EventMessagesRead)

	e.mu.Lock()
	for id, timer := range e.typingTimers {
		timer.Stop()
		delete(e.typingTimers, id)
	}
	e.mu.Unlock()
}

// State returns the loading state
func (e *ConversationEngine) State() EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Messages returns the active conversation's history in send order
func (e *ConversationEngine) Messages() []*Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Message, len(e.messages))
	copy(out, e.messages)
	return out
}

// UnreadCount returns the unread counter for the active view
func (e *ConversationEngine) UnreadCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unreadCount
}

// HasUnread reports whether unread messages arrived while hidden
func (e *ConversationEngine) HasUnread() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hasUnread
}

// PeerTyping reports whether the counterpart is currently typing
func (e *ConversationEngine) PeerTyping() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.peerTyping
}

// Conversation returns the owner view's conversation, nil before Initialize
func (e *ConversationEngine) Conversation() *Conversation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conversation
}

// Conversations returns the admin inbox, nil for owner views
func (e *ConversationEngine) Conversations() []*ConversationInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conversations
}
