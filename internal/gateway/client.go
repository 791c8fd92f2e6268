package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/mbeoliero/kit/log"
)

// Client represents a connected WebSocket client
type Client struct {
	mu         sync.Mutex
	conn       ClientConn
	UserId     int64
	Role       constant.Role
	PlatformId int
	Token      string
	ConnId     string
	server     *WsServer
	closed     atomic.Bool
	closedErr  error
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewClient creates a new client
func NewClient(conn ClientConn, userId int64, role constant.Role, platformId int, token, connId string, server *WsServer) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		conn:       conn,
		UserId:     userId,
		Role:       role,
		PlatformId: platformId,
		Token:      token,
		ConnId:     connId,
		server:     server,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the client message handling
func (c *Client) Start() {
	go c.readLoop()
}

// readLoop continuously reads frames from the connection
func (c *Client) readLoop() {
	defer func() {
		if r := recover(); r != nil {
			c.closedErr = ErrPanic
			log.CtxError(c.ctx, "client read loop panic: user_id=%d, error=%v", c.UserId, r)
		}
		c.close()
	}()

	for {
		message, err := c.conn.ReadMessage()
		if err != nil {
			log.CtxDebug(c.ctx, "read message error: user_id=%d, error=%v", c.UserId, err)
			c.closedErr = err
			return
		}

		if c.closed.Load() {
			c.closedErr = ErrConnClosed
			return
		}

		if err := c.handleFrame(message); err != nil {
			log.CtxWarn(c.ctx, "handle frame error: user_id=%d, error=%v", c.UserId, err)
			c.closedErr = err
			return
		}
	}
}

// handleFrame handles a single incoming frame
func (c *Client) handleFrame(message []byte) error {
	frame, err := DecodeFrame(message)
	if err != nil {
		return err
	}

	log.CtxDebug(c.ctx, "received frame: event=%s, user_id=%d", frame.Event, c.UserId)

	switch frame.Event {
	case constant.EventJoinConversation:
		return c.handleJoin(frame.Data)
	case constant.EventTyping, constant.EventStopTyping:
		return c.handleTyping(frame.Event, frame.Data)
	default:
		// Unknown events are ignored so older clients stay connected
		log.CtxWarn(c.ctx, "unknown event: event=%s, user_id=%d", frame.Event, c.UserId)
		return nil
	}
}

// handleJoin subscribes the connection to a conversation's room
func (c *Client) handleJoin(data json.RawMessage) error {
	var req JoinConversationData
	if err := json.Unmarshal(data, &req); err != nil {
		return ErrInvalidProtocol
	}
	return c.server.JoinRoom(c.ctx, c, req.ConversationId)
}

// handleTyping relays a typing indicator to the rest of the room
func (c *Client) handleTyping(event string, data json.RawMessage) error {
	var req TypingData
	if err := json.Unmarshal(data, &req); err != nil {
		return ErrInvalidProtocol
	}
	req.SenderId = c.UserId
	req.SenderRole = string(c.Role)
	c.server.RelayTyping(c.ctx, c, event, &req)
	return nil
}

// Send writes an encoded frame to the client
func (c *Client) Send(event string, payload interface{}) error {
	if c.closed.Load() {
		return ErrConnClosed
	}

	data, err := EncodeFrame(event, payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return ErrConnClosed
	}
	return c.conn.WriteMessage(data)
}

// Close closes the client connection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return nil
	}

	c.closed.Store(true)
	c.cancel()
	return c.conn.Close()
}

// close handles cleanup when connection is closed
func (c *Client) close() {
	c.Close()
	c.server.UnregisterClient(c)
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	return c.closed.Load()
}
