package sdk

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

// Frame is the wire format for socket events
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// EventHandler handles one incoming event's payload
type EventHandler func(data json.RawMessage)

// EventChannel is a live event connection to the server. One handler
// per event name; subscribing again replaces the previous handler.
type EventChannel interface {
	// Connect opens the socket. Calling it on an open channel is a no-op.
	Connect() error

	// JoinConversation subscribes the socket to a conversation's events
	JoinConversation(conversationId int64) error

	// Emit sends a named event to the server
	Emit(event string, payload interface{}) error

	// On registers the handler for an event, replacing any previous one
	On(event string, handler EventHandler)

	// Off removes the handler for an event
	Off(event string)

	// Close shuts the socket down. The channel can be connected again.
	Close() error
}

// wsChannel implements EventChannel over a gorilla websocket connection
type wsChannel struct {
	wsURL      string
	token      string
	userId     int64
	platformId int

	mu       sync.Mutex
	conn     *websocket.Conn
	handlers map[string]EventHandler
	done     chan struct{}
}

// EventChannel creates a channel bound to the client's credentials.
// The client must be logged in first.
func (c *Client) EventChannel(wsURL string) (EventChannel, error) {
	if c.token == "" || c.userId == 0 {
		return nil, ErrUnauthorized
	}

	return &wsChannel{
		wsURL:      wsURL,
		token:      c.token,
		userId:     c.userId,
		platformId: c.platformId,
		handlers:   make(map[string]EventHandler),
	}, nil
}

func (ch *wsChannel) Connect() error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.conn != nil {
		return nil
	}

	u, err := url.Parse(ch.wsURL)
	if err != nil {
		return fmt.Errorf("invalid websocket url: %w", err)
	}

	query := u.Query()
	query.Set("token", ch.token)
	query.Set("send_id", fmt.Sprintf("%d", ch.userId))
	query.Set("platform_id", fmt.Sprintf("%d", ch.platformId))
	u.RawQuery = query.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial websocket: %w", err)
	}

	ch.conn = conn
	ch.done = make(chan struct{})

	go ch.readLoop(conn, ch.done)

	return nil
}

// readLoop reads frames until the connection dies and dispatches each
// to the subscribed handler, if any
func (ch *wsChannel) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			ch.mu.Lock()
			if ch.conn == conn {
				ch.conn = nil
			}
			ch.mu.Unlock()
			return
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}
		if frame.Event == "" {
			continue
		}

		ch.mu.Lock()
		handler := ch.handlers[frame.Event]
		ch.mu.Unlock()

		if handler != nil {
			handler(frame.Data)
		}
	}
}

type joinConversationData struct {
	ConversationId int64 `json:"conversation_id"`
}

func (ch *wsChannel) JoinConversation(conversationId int64) error {
	return ch.Emit(EventJoinConversation, &joinConversationData{ConversationId: conversationId})
}

func (ch *wsChannel) Emit(event string, payload interface{}) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	if ch.conn == nil {
		return ErrConnClosed
	}

	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal event payload: %w", err)
		}
		data = b
	}

	raw, err := json.Marshal(&Frame{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	return ch.conn.WriteMessage(websocket.TextMessage, raw)
}

func (ch *wsChannel) On(event string, handler EventHandler) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.handlers[event] = handler
}

func (ch *wsChannel) Off(event string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	delete(ch.handlers, event)
}

func (ch *wsChannel) Close() error {
	ch.mu.Lock()
	conn := ch.conn
	ch.conn = nil
	ch.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}
