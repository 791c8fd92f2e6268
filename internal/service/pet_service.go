package service

import (
	"context"
	"strings"

	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/internal/repository"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/mbeoliero/kit/log"
)

// PetService handles the adoption catalog
type PetService struct {
	petRepo *repository.PetRepo
}

// NewPetService creates a new PetService
func NewPetService(petRepo *repository.PetRepo) *PetService {
	return &PetService{petRepo: petRepo}
}

// AddPetRequest represents a new catalog entry
type AddPetRequest struct {
	Name          string `json:"name"`
	Breed         string `json:"breed"`
	Size          string `json:"size,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Weight        string `json:"weight,omitempty"`
	Color         string `json:"color,omitempty"`
	MedicalStatus string `json:"medical_status,omitempty"`
	Image         string `json:"image,omitempty"`
}

// UpdatePetRequest represents editable catalog fields
type UpdatePetRequest struct {
	Name          string `json:"name,omitempty"`
	Breed         string `json:"breed,omitempty"`
	Size          string `json:"size,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Weight        string `json:"weight,omitempty"`
	Color         string `json:"color,omitempty"`
	Status        string `json:"status,omitempty"`
	MedicalStatus string `json:"medical_status,omitempty"`
	Image         string `json:"image,omitempty"`
}

// AddPet lists a new pet as available for adoption
func (s *PetService) AddPet(ctx context.Context, req *AddPetRequest) (*entity.Pet, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errcode.ErrInvalidParam
	}

	pet := &entity.Pet{
		Name:          req.Name,
		Breed:         req.Breed,
		Size:          req.Size,
		Gender:        req.Gender,
		Weight:        req.Weight,
		Color:         req.Color,
		Status:        constant.PetStatusAvailable,
		MedicalStatus: req.MedicalStatus,
		Image:         req.Image,
	}

	if err := s.petRepo.Create(ctx, pet); err != nil {
		log.CtxError(ctx, "create pet failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	log.CtxInfo(ctx, "pet added: pet_id=%d, name=%s", pet.Id, pet.Name)
	return pet, nil
}

// GetPet returns one catalog entry
func (s *PetService) GetPet(ctx context.Context, id int64) (*entity.Pet, error) {
	pet, err := s.petRepo.GetById(ctx, id)
	if err != nil {
		log.CtxError(ctx, "get pet failed: pet_id=%d, error=%v", id, err)
		return nil, errcode.ErrInternalServer
	}
	if pet == nil {
		return nil, errcode.ErrPetNotFound
	}
	return pet, nil
}

// ListPets returns the catalog, newest first
func (s *PetService) ListPets(ctx context.Context) ([]*entity.Pet, error) {
	pets, err := s.petRepo.List(ctx)
	if err != nil {
		log.CtxError(ctx, "list pets failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	return pets, nil
}

// UpdatePet edits a catalog entry
func (s *PetService) UpdatePet(ctx context.Context, id int64, req *UpdatePetRequest) (*entity.Pet, error) {
	pet, err := s.GetPet(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Breed != "" {
		updates["breed"] = req.Breed
	}
	if req.Size != "" {
		updates["size"] = req.Size
	}
	if req.Gender != "" {
		updates["gender"] = req.Gender
	}
	if req.Weight != "" {
		updates["weight"] = req.Weight
	}
	if req.Color != "" {
		updates["color"] = req.Color
	}
	if req.Status != "" {
		switch constant.PetStatus(req.Status) {
		case constant.PetStatusAvailable, constant.PetStatusPending, constant.PetStatusAdopted:
			updates["status"] = req.Status
		default:
			return nil, errcode.ErrInvalidParam
		}
	}
	if req.MedicalStatus != "" {
		updates["medical_status"] = req.MedicalStatus
	}
	if req.Image != "" {
		updates["image"] = req.Image
	}

	if len(updates) > 0 {
		if err := s.petRepo.Update(ctx, pet.Id, updates); err != nil {
			log.CtxError(ctx, "update pet failed: pet_id=%d, error=%v", id, err)
			return nil, errcode.ErrInternalServer
		}
	}

	return s.GetPet(ctx, id)
}

// DeletePet removes a pet from the catalog. The row is kept so past adoption
// requests still resolve.
func (s *PetService) DeletePet(ctx context.Context, id int64) error {
	if _, err := s.GetPet(ctx, id); err != nil {
		return err
	}

	if err := s.petRepo.SoftDelete(ctx, id); err != nil {
		log.CtxError(ctx, "delete pet failed: pet_id=%d, error=%v", id, err)
		return errcode.ErrInternalServer
	}

	log.CtxInfo(ctx, "pet deleted: pet_id=%d", id)
	return nil
}
