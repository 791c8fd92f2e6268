package repository

import (
	"context"
	"errors"

	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationRepo is the repository for conversation operations
type ConversationRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewConversationRepo creates a new ConversationRepo
func NewConversationRepo(db *gorm.DB, rdb *redis.Client) *ConversationRepo {
	return &ConversationRepo{db: db, rdb: rdb}
}

// GetByOwner gets the owner's conversation, nil if not found
func (r *ConversationRepo) GetByOwner(ctx context.Context, ownerId int64) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerId).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// GetById gets a conversation by Id, nil if not found
func (r *ConversationRepo) GetById(ctx context.Context, id int64) (*entity.Conversation, error) {
	var conv entity.Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// GetOrCreate returns the owner's conversation, creating it on first use.
// The unique index on owner_id keeps concurrent callers from creating two.
func (r *ConversationRepo) GetOrCreate(ctx context.Context, ownerId int64) (*entity.Conversation, error) {
	conv, err := r.GetByOwner(ctx, ownerId)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	now := entity.NowUnixMilli()
	conv = &entity.Conversation{
		OwnerId:   ownerId,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		DoNothing: true,
	}).Create(conv).Error
	if err != nil {
		return nil, err
	}
	if conv.Id == 0 {
		// lost the race, fetch the winner's row
		return r.GetByOwner(ctx, ownerId)
	}
	return conv, nil
}

// Touch updates the updated_at timestamp
func (r *ConversationRepo) Touch(ctx context.Context, tx *gorm.DB, id int64) error {
	return tx.WithContext(ctx).
		Model(&entity.Conversation{}).
		Where("id = ?", id).
		Update("updated_at", entity.NowUnixMilli()).Error
}

// ListWithDetail lists all conversations for the staff inbox: owner name,
// latest message preview and count of owner messages the staff has not read
func (r *ConversationRepo) ListWithDetail(ctx context.Context) ([]*entity.ConversationInfo, error) {
	var results []*entity.ConversationInfo
	err := r.db.WithContext(ctx).
		Table("conversations c").
		Select(`
			c.id as conversation_id,
			c.owner_id,
			u.first_name,
			u.last_name,
			COALESCE(lm.content, '') as last_message,
			COALESCE(lm.created_at, c.created_at) as last_message_at,
			(SELECT COUNT(*) FROM messages m
				WHERE m.conversation_id = c.id
				AND m.sender_role = ?
				AND m.is_read = 0) as unread_count
		`, constant.RolePetOwner).
		Joins("JOIN users u ON u.id = c.owner_id").
		Joins(`LEFT JOIN messages lm ON lm.id = (
			SELECT m2.id FROM messages m2
			WHERE m2.conversation_id = c.id
			ORDER BY m2.id DESC LIMIT 1
		)`).
		Order("last_message_at DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
