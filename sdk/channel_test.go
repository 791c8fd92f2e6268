package sdk

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventChannel_RequiresLogin(t *testing.T) {
	c := MustNewClient("http://localhost:8080")

	_, err := c.EventChannel("ws://localhost:8080/ws")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestEventChannel_HandlerTable(t *testing.T) {
	ch := &wsChannel{handlers: make(map[string]EventHandler)}

	var firstCalls, secondCalls int
	ch.On(EventNewMessage, func(data json.RawMessage) { firstCalls++ })

	// Re-registering replaces, never stacks
	ch.On(EventNewMessage, func(data json.RawMessage) { secondCalls++ })

	ch.mu.Lock()
	handler := ch.handlers[EventNewMessage]
	ch.mu.Unlock()
	require.NotNil(t, handler)
	handler(nil)

	assert.Equal(t, 0, firstCalls)
	assert.Equal(t, 1, secondCalls)

	ch.Off(EventNewMessage)
	ch.mu.Lock()
	_, bound := ch.handlers[EventNewMessage]
	ch.mu.Unlock()
	assert.False(t, bound)

	assert.NotPanics(t, func() { ch.Off(EventNewMessage) }, "off on an unbound event is a no-op")
}

func TestEventChannel_EmitWhileDisconnected(t *testing.T) {
	ch := &wsChannel{handlers: make(map[string]EventHandler)}

	err := ch.Emit(EventTyping, &typingPayload{ConversationId: 1})
	assert.ErrorIs(t, err, ErrConnClosed)
}

func TestEventChannel_CloseIdempotent(t *testing.T) {
	ch := &wsChannel{handlers: make(map[string]EventHandler)}
	assert.NoError(t, ch.Close())
	assert.NoError(t, ch.Close())
}
