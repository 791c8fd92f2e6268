package service

import (
	"context"
	"time"

	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/internal/repository"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/mbeoliero/kit/log"
	"gorm.io/gorm"
)

// AdoptionService handles adoption applications and their review
type AdoptionService struct {
	repos *repository.Repositories
}

// NewAdoptionService creates a new AdoptionService
func NewAdoptionService(repos *repository.Repositories) *AdoptionService {
	return &AdoptionService{repos: repos}
}

// ApplyRequest represents an adoption application
type ApplyRequest struct {
	PetId   int64  `json:"pet_id"`
	Purpose string `json:"purpose_of_adoption,omitempty"`
}

// Apply files an adoption request for the calling pet owner. Applicants must
// be at least 18 and the pet still available.
func (s *AdoptionService) Apply(ctx context.Context, userId int64, req *ApplyRequest) (*entity.AdoptionRequest, error) {
	user, err := s.repos.User.GetById(ctx, userId)
	if err != nil {
		log.CtxError(ctx, "get user failed: user_id=%d, error=%v", userId, err)
		return nil, errcode.ErrInternalServer
	}

	today := time.Now().Format(entity.DateLayout)
	if user.AgeAt(today) < constant.MinAdopterAge {
		return nil, errcode.ErrAdopterUnderage
	}

	pet, err := s.repos.Pet.GetById(ctx, req.PetId)
	if err != nil {
		log.CtxError(ctx, "get pet failed: pet_id=%d, error=%v", req.PetId, err)
		return nil, errcode.ErrInternalServer
	}
	if pet == nil {
		return nil, errcode.ErrPetNotFound
	}
	if pet.Status != constant.PetStatusAvailable {
		return nil, errcode.ErrPetNotAvailable
	}

	pending, err := s.repos.Adoption.HasPendingForPet(ctx, userId, req.PetId)
	if err != nil {
		log.CtxError(ctx, "check pending adoption failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if pending {
		return nil, errcode.ErrAdoptionDuplicate
	}

	adoption := &entity.AdoptionRequest{
		UserId:  userId,
		PetId:   req.PetId,
		Purpose: req.Purpose,
		Status:  constant.ReviewStatusPending,
	}
	if err := s.repos.Adoption.Create(ctx, adoption); err != nil {
		log.CtxError(ctx, "create adoption failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	log.CtxInfo(ctx, "adoption filed: id=%d, user_id=%d, pet_id=%d", adoption.Id, userId, req.PetId)
	return adoption, nil
}

// ListAll returns every adoption request with applicant and pet details
func (s *AdoptionService) ListAll(ctx context.Context) ([]*entity.AdoptionWithDetail, error) {
	results, err := s.repos.Adoption.ListWithDetail(ctx)
	if err != nil {
		log.CtxError(ctx, "list adoptions failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return results, nil
}

// ListMine returns the caller's own adoption requests
func (s *AdoptionService) ListMine(ctx context.Context, userId int64) ([]*entity.AdoptionRequest, error) {
	reqs, err := s.repos.Adoption.ListByUser(ctx, userId)
	if err != nil {
		log.CtxError(ctx, "list user adoptions failed: user_id=%d, error=%v", userId, err)
		return nil, errcode.ErrInternalServer
	}
	return reqs, nil
}

// Review approves or rejects a pending request. Approval also flips the pet
// to Adopted, in the same transaction.
func (s *AdoptionService) Review(ctx context.Context, id int64, status constant.ReviewStatus) (*entity.AdoptionRequest, error) {
	if status != constant.ReviewStatusApproved && status != constant.ReviewStatusRejected {
		return nil, errcode.ErrInvalidParam
	}

	adoption, err := s.repos.Adoption.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get adoption failed: id=%d, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}
	if adoption == nil {
		return nil, errcode.ErrAdoptionNotFound
	}
	if adoption.Status != constant.ReviewStatusPending {
		return nil, errcode.ErrAdoptionReviewed
	}

	err = s.repos.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.repos.Adoption.UpdateStatusWithTx(ctx, tx, id, status); err != nil {
			return err
		}
		if status == constant.ReviewStatusApproved {
			return s.repos.Pet.SetStatusWithTx(ctx, tx, adoption.PetId, constant.PetStatusAdopted)
		}
		return nil
	})
	if err != nil {
		log.CtxError(ctx, "review adoption failed: id=%d, status=%s, error=%v", id, status, err)
		return nil, errcode.ErrInternalServer
	}

	log.CtxInfo(ctx, "adoption reviewed: id=%d, status=%s", id, status)
	return s.repos.Adoption.GetById(ctx, id)
}
