package repository

import (
	"context"
	"errors"

	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// AdoptionRepo is the repository for adoption request operations
type AdoptionRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewAdoptionRepo creates a new AdoptionRepo
func NewAdoptionRepo(db *gorm.DB, rdb *redis.Client) *AdoptionRepo {
	return &AdoptionRepo{db: db, rdb: rdb}
}

// Create creates a new adoption request
func (r *AdoptionRepo) Create(ctx context.Context, req *entity.AdoptionRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetById gets an adoption request by Id, nil if not found
func (r *AdoptionRepo) GetById(ctx context.Context, id int64) (*entity.AdoptionRequest, error) {
	var req entity.AdoptionRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// HasPendingForPet checks whether the user already has a pending request for the pet
func (r *AdoptionRepo) HasPendingForPet(ctx context.Context, userId, petId int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.AdoptionRequest{}).
		Where("user_id = ? AND pet_id = ? AND status = ?", userId, petId, constant.ReviewStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListWithDetail lists adoption requests joined with applicant and pet info
func (r *AdoptionRepo) ListWithDetail(ctx context.Context) ([]*entity.AdoptionWithDetail, error) {
	var results []*entity.AdoptionWithDetail
	err := r.db.WithContext(ctx).
		Table("adoption_requests a").
		Select(`
			a.*,
			u.first_name,
			u.last_name,
			u.email,
			p.name as pet_name,
			p.breed as pet_breed
		`).
		Joins("JOIN users u ON u.id = a.user_id").
		Joins("JOIN pets p ON p.id = a.pet_id").
		Order("a.created_at DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ListByUser lists a user's adoption requests, newest first
func (r *AdoptionRepo) ListByUser(ctx context.Context, userId int64) ([]*entity.AdoptionRequest, error) {
	var reqs []*entity.AdoptionRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&reqs).Error
	if err != nil {
		return nil, err
	}
	return reqs, nil
}

// UpdateStatusWithTx sets a request's review status inside a transaction
func (r *AdoptionRepo) UpdateStatusWithTx(ctx context.Context, tx *gorm.DB, id int64, status constant.ReviewStatus) error {
	now := entity.NowUnixMilli()
	return tx.WithContext(ctx).Model(&entity.AdoptionRequest{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      status,
		"reviewed_at": now,
		"updated_at":  now,
	}).Error
}

// CountByStatus counts adoption requests in the given status
func (r *AdoptionRepo) CountByStatus(ctx context.Context, status constant.ReviewStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.AdoptionRequest{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
