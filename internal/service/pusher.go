package service

import (
	"context"

	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/pkg/constant"
)

// EventPusher fans conversation events out to connected clients. The
// WebSocket gateway implements it; services stay unaware of connections.
type EventPusher interface {
	PushNewMessage(ctx context.Context, msg *entity.Message)
	PushMessagesRead(ctx context.Context, conversationId int64, readerRole constant.Role, messageIds []int64)
}

// nopPusher drops every event. Used until the gateway is wired in, and in tests.
type nopPusher struct{}

func (nopPusher) PushNewMessage(ctx context.Context, msg *entity.Message) {}
func (nopPusher) PushMessagesRead(ctx context.Context, conversationId int64, readerRole constant.Role, messageIds []int64) {
}
