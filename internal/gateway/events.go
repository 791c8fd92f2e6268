package gateway

import "encoding/json"

// Frame is the wire envelope for every WebSocket exchange. The event name
// selects the payload shape carried in data.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EncodeFrame marshals an event and its payload into a wire frame
func EncodeFrame(event string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Frame{Event: event, Data: data})
}

// DecodeFrame parses a wire frame
func DecodeFrame(raw []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, ErrInvalidProtocol
	}
	if f.Event == "" {
		return nil, ErrInvalidProtocol
	}
	return &f, nil
}

// JoinConversationData asks the server to route a conversation's events
// to this connection
type JoinConversationData struct {
	ConversationId int64 `json:"conversation_id"`
}

// NewMessageData announces a freshly stored message to a conversation's room
type NewMessageData struct {
	MessageId      int64  `json:"message_id"`
	ConversationId int64  `json:"conversation_id"`
	SenderId       int64  `json:"sender_id"`
	SenderRole     string `json:"sender_role"`
	Content        string `json:"content"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      int64  `json:"created_at"`
}

// TypingData signals that a participant started or stopped typing
type TypingData struct {
	ConversationId int64  `json:"conversation_id"`
	SenderId       int64  `json:"sender_id"`
	SenderRole     string `json:"sender_role"`
}

// MessagesReadData announces which messages a reader just marked as read
type MessagesReadData struct {
	ConversationId int64   `json:"conversation_id"`
	ReaderRole     string  `json:"reader_role"`
	MessageIds     []int64 `json:"message_ids"`
}
