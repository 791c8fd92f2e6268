package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/lmxriel/petcare/internal/service"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/lmxriel/petcare/pkg/response"
)

// PetHandler handles adoption catalog requests
type PetHandler struct {
	petService *service.PetService
}

// NewPetHandler creates a new PetHandler
func NewPetHandler(petService *service.PetService) *PetHandler {
	return &PetHandler{petService: petService}
}

// ListPets returns the catalog
func (h *PetHandler) ListPets(ctx context.Context, c *app.RequestContext) {
	pets, err := h.petService.ListPets(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, pets)
}

// GetPet returns one catalog entry
func (h *PetHandler) GetPet(ctx context.Context, c *app.RequestContext) {
	id, ok := paramId(c, "id")
	if !ok {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	pet, err := h.petService.GetPet(ctx, id)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, pet)
}

// AddPet lists a new pet
func (h *PetHandler) AddPet(ctx context.Context, c *app.RequestContext) {
	var req service.AddPetRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	pet, err := h.petService.AddPet(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, pet)
}

// UpdatePet edits a catalog entry
func (h *PetHandler) UpdatePet(ctx context.Context, c *app.RequestContext) {
	id, ok := paramId(c, "id")
	if !ok {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	var req service.UpdatePetRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	pet, err := h.petService.UpdatePet(ctx, id, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, pet)
}

// DeletePet removes a catalog entry
func (h *PetHandler) DeletePet(ctx context.Context, c *app.RequestContext) {
	id, ok := paramId(c, "id")
	if !ok {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.petService.DeletePet(ctx, id); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}
