package repository

import (
	"context"

	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// MessageRepo is the repository for message operations
type MessageRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewMessageRepo creates a new MessageRepo
func NewMessageRepo(db *gorm.DB, rdb *redis.Client) *MessageRepo {
	return &MessageRepo{db: db, rdb: rdb}
}

// CreateWithTx inserts a message inside a transaction
func (r *MessageRepo) CreateWithTx(ctx context.Context, tx *gorm.DB, msg *entity.Message) error {
	return tx.WithContext(ctx).Create(msg).Error
}

// ListByConversation lists a conversation's messages in send order
func (r *MessageRepo) ListByConversation(ctx context.Context, conversationId int64) ([]*entity.Message, error) {
	var msgs []*entity.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationId).
		Order("id ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkCounterpartRead marks every unread message NOT sent by readerRole as
// read, and returns the ids that flipped. Running it again is a no-op.
func (r *MessageRepo) MarkCounterpartRead(ctx context.Context, conversationId int64, readerRole constant.Role) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&entity.Message{}).
		Where("conversation_id = ? AND sender_role = ? AND is_read = ?",
			conversationId, readerRole.Counterpart(), false).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	err = r.db.WithContext(ctx).Model(&entity.Message{}).
		Where("id IN ?", ids).
		Update("is_read", true).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UnreadCount counts messages sent TO readerRole that it has not read yet
func (r *MessageRepo) UnreadCount(ctx context.Context, conversationId int64, readerRole constant.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Message{}).
		Where("conversation_id = ? AND sender_role = ? AND is_read = ?",
			conversationId, readerRole.Counterpart(), false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
