package service

import (
	"context"

	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/internal/repository"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/mbeoliero/kit/log"
)

// ReportService aggregates dashboard counters and report rows
type ReportService struct {
	repos *repository.Repositories
}

// NewReportService creates a new ReportService
func NewReportService(repos *repository.Repositories) *ReportService {
	return &ReportService{repos: repos}
}

// StatusCounts breaks a workflow down by review status
type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

// DashboardCounts is the admin landing page summary
type DashboardCounts struct {
	Users        int64 `json:"users"`
	Adoptions    int64 `json:"adoptions"`
	Appointments int64 `json:"appointments"`
}

// UserCount counts registered pet owners
func (s *ReportService) UserCount(ctx context.Context) (int64, error) {
	count, err := s.repos.User.CountByRole(ctx, constant.RolePetOwner)
	if err != nil {
		log.CtxError(ctx, "count users failed: %v", err)
		return 0, errcode.ErrInternalServer
	}
	return count, nil
}

// AdoptionCounts breaks adoption requests down by status
func (s *ReportService) AdoptionCounts(ctx context.Context) (*StatusCounts, error) {
	return s.statusCounts(ctx, s.repos.Adoption.CountByStatus)
}

// AppointmentCounts breaks appointments down by status
func (s *ReportService) AppointmentCounts(ctx context.Context) (*StatusCounts, error) {
	return s.statusCounts(ctx, s.repos.Appointment.CountByStatus)
}

func (s *ReportService) statusCounts(ctx context.Context, countFn func(context.Context, constant.ReviewStatus) (int64, error)) (*StatusCounts, error) {
	var counts StatusCounts
	for _, st := range []constant.ReviewStatus{
		constant.ReviewStatusPending,
		constant.ReviewStatusApproved,
		constant.ReviewStatusRejected,
	} {
		n, err := countFn(ctx, st)
		if err != nil {
			log.CtxError(ctx, "count by status failed: status=%s, error=%v", st, err)
			return nil, errcode.ErrInternalServer
		}
		switch st {
		case constant.ReviewStatusPending:
			counts.Pending = n
		case constant.ReviewStatusApproved:
			counts.Approved = n
		case constant.ReviewStatusRejected:
			counts.Rejected = n
		}
		counts.Total += n
	}
	return &counts, nil
}

// Dashboard returns the top-level counters in one call
func (s *ReportService) Dashboard(ctx context.Context) (*DashboardCounts, error) {
	users, err := s.UserCount(ctx)
	if err != nil {
		return nil, err
	}
	adoptions, err := s.AdoptionCounts(ctx)
	if err != nil {
		return nil, err
	}
	appointments, err := s.AppointmentCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &DashboardCounts{
		Users:        users,
		Adoptions:    adoptions.Total,
		Appointments: appointments.Total,
	}, nil
}

// AdoptionReport returns the full adoption detail rows
func (s *ReportService) AdoptionReport(ctx context.Context) ([]*entity.AdoptionWithDetail, error) {
	rows, err := s.repos.Adoption.ListWithDetail(ctx)
	if err != nil {
		log.CtxError(ctx, "adoption report failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return rows, nil
}

// AppointmentReport returns the full appointment detail rows
func (s *ReportService) AppointmentReport(ctx context.Context) ([]*entity.AppointmentWithUser, error) {
	rows, err := s.repos.Appointment.ListWithUser(ctx)
	if err != nil {
		log.CtxError(ctx, "appointment report failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return rows, nil
}
