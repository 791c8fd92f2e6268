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

// AppointmentRepo is the repository for appointment operations
type AppointmentRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewAppointmentRepo creates a new AppointmentRepo
func NewAppointmentRepo(db *gorm.DB, rdb *redis.Client) *AppointmentRepo {
	return &AppointmentRepo{db: db, rdb: rdb}
}

// GetById gets an appointment by Id, nil if not found
func (r *AppointmentRepo) GetById(ctx context.Context, id int64) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appt, nil
}

// BookedTimes returns the times already held on a date. Rejected appointments
// release their slot; pending and approved ones hold it.
func (r *AppointmentRepo) BookedTimes(ctx context.Context, date string) ([]string, error) {
	var times []string
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("date = ? AND status <> ?", date, constant.ReviewStatusRejected).
		Pluck("time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

// SlotTakenWithTx checks inside a transaction whether a slot is already held.
// The read locks the (date, time) index range, so a concurrent booker's
// insert for the same slot blocks until this transaction commits.
func (r *AppointmentRepo) SlotTakenWithTx(ctx context.Context, tx *gorm.DB, date, t string) (bool, error) {
	var ids []int64
	err := tx.WithContext(ctx).Model(&entity.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("date = ? AND time = ? AND status <> ?", date, t, constant.ReviewStatusRejected).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

// CreateWithTx creates an appointment inside a transaction
func (r *AppointmentRepo) CreateWithTx(ctx context.Context, tx *gorm.DB, appt *entity.Appointment) error {
	return tx.WithContext(ctx).Create(appt).Error
}

// ListWithUser lists appointments joined with the requester's info
func (r *AppointmentRepo) ListWithUser(ctx context.Context) ([]*entity.AppointmentWithUser, error) {
	var results []*entity.AppointmentWithUser
	err := r.db.WithContext(ctx).
		Table("appointments a").
		Select(`
			a.*,
			u.first_name,
			u.last_name,
			u.email,
			u.phone
		`).
		Joins("JOIN users u ON u.id = a.user_id").
		Order("a.date ASC, a.time ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ListByUser lists a user's appointments, soonest first
func (r *AppointmentRepo) ListByUser(ctx context.Context, userId int64) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("date ASC, time ASC").
		Find(&appts).Error
	if err != nil {
		return nil, err
	}
	return appts, nil
}

// UpdateStatus sets an appointment's review status
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, status constant.ReviewStatus) error {
	now := entity.NowUnixMilli()
	return r.db.WithContext(ctx).Model(&entity.Appointment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      status,
		"reviewed_at": now,
		"updated_at":  now,
	}).Error
}

// CountByStatus counts appointments in the given status
func (r *AppointmentRepo) CountByStatus(ctx context.Context, status constant.ReviewStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
