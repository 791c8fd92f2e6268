package repository

import (
	"context"
	"errors"

	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// PetRepo is the repository for pet operations
type PetRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewPetRepo creates a new PetRepo
func NewPetRepo(db *gorm.DB, rdb *redis.Client) *PetRepo {
	return &PetRepo{db: db, rdb: rdb}
}

// Create creates a new pet
func (r *PetRepo) Create(ctx context.Context, pet *entity.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

// GetById gets a non-deleted pet by Id, nil if not found
func (r *PetRepo) GetById(ctx context.Context, id int64) (*entity.Pet, error) {
	var pet entity.Pet
	err := r.db.WithContext(ctx).Where("id = ? AND deleted = ?", id, false).First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pet, nil
}

// List lists all non-deleted pets, newest first
func (r *PetRepo) List(ctx context.Context) ([]*entity.Pet, error) {
	var pets []*entity.Pet
	err := r.db.WithContext(ctx).
		Where("deleted = ?", false).
		Order("created_at DESC").
		Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

// Update updates pet fields
func (r *PetRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	updates["updated_at"] = entity.NowUnixMilli()
	return r.db.WithContext(ctx).Model(&entity.Pet{}).Where("id = ?", id).Updates(updates).Error
}

// SoftDelete marks a pet as deleted
func (r *PetRepo) SoftDelete(ctx context.Context, id int64) error {
	return r.Update(ctx, id, map[string]interface{}{"deleted": true})
}

// SetStatusWithTx updates a pet's adoption status inside a transaction
func (r *PetRepo) SetStatusWithTx(ctx context.Context, tx *gorm.DB, id int64, status constant.PetStatus) error {
	return tx.WithContext(ctx).Model(&entity.Pet{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": entity.NowUnixMilli(),
	}).Error
}

// CountByStatus counts non-deleted pets in the given status
func (r *PetRepo) CountByStatus(ctx context.Context, status constant.PetStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Pet{}).
		Where("deleted = ? AND status = ?", false, status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
