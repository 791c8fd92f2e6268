package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/lmxriel/petcare/internal/middleware"
	"github.com/lmxriel/petcare/internal/service"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/lmxriel/petcare/pkg/response"
)

// AdoptionHandler handles adoption application requests
type AdoptionHandler struct {
	adoptionService *service.AdoptionService
}

// NewAdoptionHandler creates a new AdoptionHandler
func NewAdoptionHandler(adoptionService *service.AdoptionService) *AdoptionHandler {
	return &AdoptionHandler{adoptionService: adoptionService}
}

// Apply files an adoption request
func (h *AdoptionHandler) Apply(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	var req service.ApplyRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	adoption, err := h.adoptionService.Apply(ctx, userId, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, adoption)
}

// ListAll returns every request for admin review
func (h *AdoptionHandler) ListAll(ctx context.Context, c *app.RequestContext) {
	results, err := h.adoptionService.ListAll(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, results)
}

// ListMine returns the caller's requests
func (h *AdoptionHandler) ListMine(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	reqs, err := h.adoptionService.ListMine(ctx, userId)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, reqs)
}

// Approve approves a pending request
func (h *AdoptionHandler) Approve(ctx context.Context, c *app.RequestContext) {
	h.review(ctx, c, constant.ReviewStatusApproved)
}

// Reject rejects a pending request
func (h *AdoptionHandler) Reject(ctx context.Context, c *app.RequestContext) {
	h.review(ctx, c, constant.ReviewStatusRejected)
}

func (h *AdoptionHandler) review(ctx context.Context, c *app.RequestContext, status constant.ReviewStatus) {
	id, ok := paramId(c, "id")
	if !ok {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	adoption, err := h.adoptionService.Review(ctx, id, status)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, adoption)
}
