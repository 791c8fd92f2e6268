package sdk

import (
	"context"
	"fmt"
)

// MyConversation returns the caller's conversation with the clinic,
// creating it on first use
func (c *Client) MyConversation(ctx context.Context) (*Conversation, error) {
	var conv Conversation
	if err := c.get(ctx, "/conversations/me", nil, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns the staff inbox (staff only)
func (c *Client) ListConversations(ctx context.Context) ([]*ConversationInfo, error) {
	var convs []*ConversationInfo
	if err := c.get(ctx, "/conversations", nil, &convs); err != nil {
		return nil, err
	}
	return convs, nil
}

// ListMessages returns a conversation's messages in send order
func (c *Client) ListMessages(ctx context.Context, conversationId int64) ([]*Message, error) {
	var msgs []*Message
	if err := c.get(ctx, fmt.Sprintf("/conversations/%d/messages", conversationId), nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SendMessage appends a message to a conversation
func (c *Client) SendMessage(ctx context.Context, conversationId int64, content string) (*Message, error) {
	req := &SendMessageRequest{Content: content}

	var msg Message
	if err := c.post(ctx, fmt.Sprintf("/conversations/%d/messages", conversationId), req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

type markReadData struct {
	MessageIds []int64 `json:"message_ids"`
}

// MarkRead marks the counterpart's messages as read and returns the
// ids that were flipped
func (c *Client) MarkRead(ctx context.Context, conversationId int64) ([]int64, error) {
	var data markReadData
	if err := c.post(ctx, fmt.Sprintf("/conversations/%d/read", conversationId), nil, &data); err != nil {
		return nil, err
	}
	return data.MessageIds, nil
}
