package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/lmxriel/petcare/internal/middleware"
	"github.com/lmxriel/petcare/internal/service"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/lmxriel/petcare/pkg/response"
)

// ConversationHandler handles conversation and message requests
type ConversationHandler struct {
	convService *service.ConversationService
	msgService  *service.MessageService
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(convService *service.ConversationService, msgService *service.MessageService) *ConversationHandler {
	return &ConversationHandler{convService: convService, msgService: msgService}
}

// GetMine returns the caller's conversation, creating it on first contact
func (h *ConversationHandler) GetMine(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	conv, err := h.convService.GetMine(ctx, userId)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, conv)
}

// ListAll returns the staff inbox
func (h *ConversationHandler) ListAll(ctx context.Context, c *app.RequestContext) {
	convs, err := h.convService.ListAll(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, convs)
}

// ListMessages returns a conversation's messages in send order
func (h *ConversationHandler) ListMessages(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	convId, ok := paramId(c, "id")
	if !ok {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	msgs, err := h.msgService.List(ctx, userId, middleware.GetRole(c), convId)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, msgs)
}

// SendMessage stores and fans out a new message
func (h *ConversationHandler) SendMessage(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	convId, ok := paramId(c, "id")
	if !ok {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	var req service.SendMessageRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	msg, err := h.msgService.Send(ctx, userId, middleware.GetRole(c), convId, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, msg)
}

// MarkRead flips the counterpart's messages to read
func (h *ConversationHandler) MarkRead(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	convId, ok := paramId(c, "id")
	if !ok {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	ids, err := h.msgService.MarkRead(ctx, userId, middleware.GetRole(c), convId)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{
		"message_ids": ids,
	})
}
