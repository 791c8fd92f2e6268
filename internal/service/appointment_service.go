package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lmxriel/petcare/internal/config"
	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/internal/repository"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/mbeoliero/kit/log"
	"gorm.io/gorm"
)

// AppointmentService handles clinic slot booking and review
type AppointmentService struct {
	repos    *repository.Repositories
	cfg      *config.Config
	holidays map[string]bool
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(repos *repository.Repositories, cfg *config.Config) *AppointmentService {
	holidays := make(map[string]bool, len(cfg.Clinic.Holidays))
	for _, d := range cfg.Clinic.Holidays {
		holidays[d] = true
	}
	return &AppointmentService{
		repos:    repos,
		cfg:      cfg,
		holidays: holidays,
	}
}

// BookRequest represents a booking request
type BookRequest struct {
	Service string `json:"appointment_type"`
	Date    string `json:"appointment_date"`
	Time    string `json:"timeschedule"`
}

// Availability is the per-date slot picture handed to clients
type Availability struct {
	Date        string   `json:"date"`
	Blocked     bool     `json:"blocked"`
	Slots       []string `json:"slots"`
	BookedTimes []string `json:"booked"`
}

// DateBlocked reports whether the clinic is closed on the date
// (weekend or configured holiday). Malformed dates are invalid, not blocked.
func (s *AppointmentService) DateBlocked(date string) (bool, error) {
	weekend, err := entity.IsWeekend(date)
	if err != nil {
		return false, errcode.ErrInvalidParam
	}
	return weekend || s.holidays[date], nil
}

// GetAvailability returns the slot picture for a date. Booked times come
// from a short-lived Redis cache when warm.
func (s *AppointmentService) GetAvailability(ctx context.Context, date string) (*Availability, error) {
	blocked, err := s.DateBlocked(date)
	if err != nil {
		return nil, err
	}

	avail := &Availability{
		Date:    date,
		Blocked: blocked,
		Slots:   entity.TimeSlots(),
	}
	if blocked {
		avail.BookedTimes = []string{}
		return avail, nil
	}

	booked, err := s.bookedTimes(ctx, date)
	if err != nil {
		log.CtxError(ctx, "get booked times failed: date=%s, error=%v", date, err)
		return nil, errcode.ErrInternalServer
	}
	avail.BookedTimes = booked
	return avail, nil
}

// bookedTimes reads booked times through the Redis cache
func (s *AppointmentService) bookedTimes(ctx context.Context, date string) ([]string, error) {
	key := fmt.Sprintf(constant.RedisKeyBookedSlots(), date)

	cached, err := s.repos.Redis.Get(ctx, key).Result()
	if err == nil {
		var times []string
		if err := json.Unmarshal([]byte(cached), &times); err == nil {
			return times, nil
		}
	}

	times, err := s.repos.Appointment.BookedTimes(ctx, date)
	if err != nil {
		return nil, err
	}
	if times == nil {
		times = []string{}
	}

	if data, err := json.Marshal(times); err == nil {
		if err := s.repos.Redis.Set(ctx, key, data, s.cfg.Clinic.SlotCacheTTL).Err(); err != nil {
			log.CtxWarn(ctx, "cache booked times failed: date=%s, error=%v", date, err)
		}
	}
	return times, nil
}

// invalidateSlotCache drops the cached availability for a date
func (s *AppointmentService) invalidateSlotCache(ctx context.Context, date string) {
	key := fmt.Sprintf(constant.RedisKeyBookedSlots(), date)
	if err := s.repos.Redis.Del(ctx, key).Err(); err != nil {
		log.CtxWarn(ctx, "invalidate slot cache failed: date=%s, error=%v", date, err)
	}
}

// pastDate reports whether d falls before today's calendar date in the
// server's timezone
func pastDate(d time.Time) bool {
	today, _ := entity.ParseDate(time.Now().Format(entity.DateLayout))
	return d.Before(today)
}

// Book reserves a slot for the caller. The slot existence check and insert
// run in one transaction so two bookers cannot share a slot.
func (s *AppointmentService) Book(ctx context.Context, userId int64, req *BookRequest) (*entity.Appointment, error) {
	svc := constant.AppointmentType(req.Service)
	if !constant.ValidAppointmentType(svc) {
		return nil, errcode.ErrInvalidService
	}

	blocked, err := s.DateBlocked(req.Date)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, errcode.ErrDateBlocked
	}

	d, _ := entity.ParseDate(req.Date)
	if pastDate(d) {
		return nil, errcode.ErrInvalidParam
	}

	if !entity.ValidSlot(req.Time) {
		return nil, errcode.ErrInvalidSlot
	}

	appt := &entity.Appointment{
		UserId:  userId,
		Service: svc,
		Date:    req.Date,
		Time:    req.Time,
		Status:  constant.ReviewStatusPending,
	}

	err = s.repos.Transaction(ctx, func(tx *gorm.DB) error {
		taken, err := s.repos.Appointment.SlotTakenWithTx(ctx, tx, req.Date, req.Time)
		if err != nil {
			return err
		}
		if taken {
			return errcode.ErrSlotTaken
		}
		return s.repos.Appointment.CreateWithTx(ctx, tx, appt)
	})
	if err != nil {
		if err == errcode.ErrSlotTaken {
			return nil, errcode.ErrSlotTaken
		}
		log.CtxError(ctx, "book appointment failed: user_id=%d, date=%s, time=%s, error=%v",
			userId, req.Date, req.Time, err)
		return nil, errcode.ErrInternalServer
	}

	s.invalidateSlotCache(ctx, req.Date)

	log.CtxInfo(ctx, "appointment booked: id=%d, user_id=%d, date=%s, time=%s",
		appt.Id, userId, req.Date, req.Time)
	return appt, nil
}

// ListAll returns every appointment with requester details
func (s *AppointmentService) ListAll(ctx context.Context) ([]*entity.AppointmentWithUser, error) {
	results, err := s.repos.Appointment.ListWithUser(ctx)
	if err != nil {
		log.CtxError(ctx, "list appointments failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return results, nil
}

// ListMine returns the caller's own appointments
func (s *AppointmentService) ListMine(ctx context.Context, userId int64) ([]*entity.Appointment, error) {
	appts, err := s.repos.Appointment.ListByUser(ctx, userId)
	if err != nil {
		log.CtxError(ctx, "list user appointments failed: user_id=%d, error=%v", userId, err)
		return nil, errcode.ErrInternalServer
	}
	return appts, nil
}

// Review approves or rejects a pending appointment. Rejection releases the
// slot, so the availability cache is dropped.
func (s *AppointmentService) Review(ctx context.Context, id int64, status constant.ReviewStatus) (*entity.Appointment, error) {
	if status != constant.ReviewStatusApproved && status != constant.ReviewStatusRejected {
		return nil, errcode.ErrInvalidParam
	}

	appt, err := s.repos.Appointment.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get appointment failed: id=%d, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}
	if appt == nil {
		return nil, errcode.ErrAppointmentNotFound
	}
	if appt.Status != constant.ReviewStatusPending {
		return nil, errcode.ErrAppointmentReviewed
	}

	if err := s.repos.Appointment.UpdateStatus(ctx, id, status); err != nil {
		log.CtxError(ctx, "review appointment failed: id=%d, status=%s, error=%v", id, status, err)
		return nil, errcode.ErrInternalServer
	}

	if status == constant.ReviewStatusRejected {
		s.invalidateSlotCache(ctx, appt.Date)
	}

	log.CtxInfo(ctx, "appointment reviewed: id=%d, status=%s", id, status)
	return s.repos.Appointment.GetById(ctx, id)
}
