package service

import (
	"context"
	"strings"

	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/internal/repository"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/lmxriel/petcare/pkg/idgen"
	"github.com/mbeoliero/kit/log"
	"gorm.io/gorm"
)

// MessageService handles message storage and fan-out
type MessageService struct {
	repos       *repository.Repositories
	convService *ConversationService
	idGen       idgen.Generator
	pusher      EventPusher
}

// NewMessageService creates a new MessageService
func NewMessageService(repos *repository.Repositories, convService *ConversationService, idGen idgen.Generator) *MessageService {
	return &MessageService{
		repos:       repos,
		convService: convService,
		idGen:       idGen,
		pusher:      nopPusher{},
	}
}

// SetPusher wires in the realtime gateway
func (s *MessageService) SetPusher(p EventPusher) {
	if p != nil {
		s.pusher = p
	}
}

// SendMessageRequest represents a send request
type SendMessageRequest struct {
	Content string `json:"content"`
}

// Send stores a message and fans it out to the conversation's room
func (s *MessageService) Send(ctx context.Context, userId int64, role constant.Role, conversationId int64, req *SendMessageRequest) (*entity.Message, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errcode.ErrMessageEmpty
	}

	if err := s.convService.CanAccess(ctx, userId, role, conversationId); err != nil {
		return nil, err
	}

	msgId, err := s.idGen.NextId()
	if err != nil {
		log.CtxError(ctx, "generate message id failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	msg := &entity.Message{
		Id:             msgId,
		ConversationId: conversationId,
		SenderId:       userId,
		SenderRole:     role,
		Content:        content,
		IsRead:         false,
		CreatedAt:      entity.NowUnixMilli(),
	}

	err = s.repos.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repos.Message.CreateWithTx(ctx, tx, msg); err != nil {
			return err
		}
		return s.repos.Conversation.Touch(ctx, tx, conversationId)
	})
	if err != nil {
		log.CtxError(ctx, "store message failed: conversation_id=%d, error=%v", conversationId, err)
		return nil, errcode.ErrSendFailed
	}

	s.pusher.PushNewMessage(ctx, msg)

	log.CtxInfo(ctx, "message sent: message_id=%d, conversation_id=%d, sender_id=%d", msg.Id, conversationId, userId)
	return msg, nil
}

// List returns a conversation's messages in send order
func (s *MessageService) List(ctx context.Context, userId int64, role constant.Role, conversationId int64) ([]*entity.Message, error) {
	if err := s.convService.CanAccess(ctx, userId, role, conversationId); err != nil {
		return nil, err
	}

	msgs, err := s.repos.Message.ListByConversation(ctx, conversationId)
	if err != nil {
		log.CtxError(ctx, "list messages failed: conversation_id=%d, error=%v", conversationId, err)
		return nil, errcode.ErrInternalServer
	}
	return msgs, nil
}

// MarkRead flips the counterpart's unread messages to read and announces the
// receipt. Re-running it finds nothing to flip and emits nothing.
func (s *MessageService) MarkRead(ctx context.Context, userId int64, role constant.Role, conversationId int64) ([]int64, error) {
	if err := s.convService.CanAccess(ctx, userId, role, conversationId); err != nil {
		return nil, err
	}

	ids, err := s.repos.Message.MarkCounterpartRead(ctx, conversationId, role)
	if err != nil {
		log.CtxError(ctx, "mark read failed: conversation_id=%d, error=%v", conversationId, err)
		return nil, errcode.ErrInternalServer
	}

	if len(ids) > 0 {
		s.pusher.PushMessagesRead(ctx, conversationId, role, ids)
		log.CtxInfo(ctx, "messages read: conversation_id=%d, reader_role=%s, count=%d", conversationId, role, len(ids))
	}

	return ids, nil
}
