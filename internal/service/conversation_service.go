package service

import (
	"context"

	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/internal/repository"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/mbeoliero/kit/log"
)

// ConversationService handles owner/staff conversation threads
type ConversationService struct {
	repos *repository.Repositories
}

// NewConversationService creates a new ConversationService
func NewConversationService(repos *repository.Repositories) *ConversationService {
	return &ConversationService{repos: repos}
}

// MyConversation is a pet owner's thread with its unread counter
type MyConversation struct {
	*entity.Conversation
	UnreadCount int64 `json:"unread_count"`
}

// GetMine returns the caller's conversation, creating it on first contact
func (s *ConversationService) GetMine(ctx context.Context, userId int64) (*MyConversation, error) {
	conv, err := s.repos.Conversation.GetOrCreate(ctx, userId)
	if err != nil {
		log.CtxError(ctx, "get or create conversation failed: user_id=%d, error=%v", userId, err)
		return nil, errcode.ErrInternalServer
	}

	unread, err := s.repos.Message.UnreadCount(ctx, conv.Id, constant.RolePetOwner)
	if err != nil {
		log.CtxError(ctx, "unread count failed: conversation_id=%d, error=%v", conv.Id, err)
		return nil, errcode.ErrInternalServer
	}

	return &MyConversation{Conversation: conv, UnreadCount: unread}, nil
}

// ListAll returns the staff inbox
func (s *ConversationService) ListAll(ctx context.Context) ([]*entity.ConversationInfo, error) {
	convs, err := s.repos.Conversation.ListWithDetail(ctx)
	if err != nil {
		log.CtxError(ctx, "list conversations failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return convs, nil
}

// GetById returns a conversation or ErrConvNotFound
func (s *ConversationService) GetById(ctx context.Context, id int64) (*entity.Conversation, error) {
	conv, err := s.repos.Conversation.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get conversation failed: id=%d, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}
	if conv == nil {
		return nil, errcode.ErrConvNotFound
	}
	return conv, nil
}

// CanAccess checks whether a user may read or join a conversation. Staff may
// access any thread; a pet owner only their own.
func (s *ConversationService) CanAccess(ctx context.Context, userId int64, role constant.Role, conversationId int64) error {
	conv, err := s.GetById(ctx, conversationId)
	if err != nil {
		return err
	}
	if role == constant.RoleAdmin {
		return nil
	}
	if conv.OwnerId != userId {
		return errcode.ErrNoPermission
	}
	return nil
}
