package gateway

import (
	"encoding/json"
	"testing"

	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	raw, err := EncodeFrame(constant.EventNewMessage, &NewMessageData{
		MessageId:      42,
		ConversationId: 7,
		SenderId:       1,
		SenderRole:     string(constant.RolePetOwner),
		Content:        "hello",
	})
	require.NoError(t, err)

	frame, err := DecodeFrame(raw)
	require.NoError(t, err)
	assert.Equal(t, constant.EventNewMessage, frame.Event)

	var data NewMessageData
	require.NoError(t, json.Unmarshal(frame.Data, &data))
	assert.Equal(t, int64(42), data.MessageId)
	assert.Equal(t, int64(7), data.ConversationId)
	assert.Equal(t, "hello", data.Content)
}

func TestDecodeFrameRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "not json at all"},
		{"missing event", `{"data":{"conversation_id":1}}`},
		{"empty event", `{"event":"","data":{}}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := DecodeFrame([]byte(c.raw))
			assert.ErrorIs(t, err, ErrInvalidProtocol)
		})
	}
}

func TestDecodeFrameUnknownEventPassesThrough(t *testing.T) {
	// Unknown event names are the client's business to ignore, not a
	// protocol error
	frame, err := DecodeFrame([]byte(`{"event":"future_thing","data":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "future_thing", frame.Event)
}
