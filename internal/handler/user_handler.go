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

// UserHandler handles user profile requests
type UserHandler struct {
	authService        *service.AuthService
	adoptionService    *service.AdoptionService
	appointmentService *service.AppointmentService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService *service.AuthService, adoptionService *service.AdoptionService, appointmentService *service.AppointmentService) *UserHandler {
	return &UserHandler{
		authService:        authService,
		adoptionService:    adoptionService,
		appointmentService: appointmentService,
	}
}

// Me returns the caller's profile
func (h *UserHandler) Me(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	info, err := h.authService.GetUserInfo(ctx, userId)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, info)
}

// UpdateProfile edits the caller's profile
func (h *UserHandler) UpdateProfile(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	var req service.UpdateProfileRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	info, err := h.authService.UpdateProfile(ctx, userId, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, info)
}

// Notifications returns the caller's reviewed adoption requests and
// appointments, the inputs for the notification bell
func (h *UserHandler) Notifications(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	adoptions, err := h.adoptionService.ListMine(ctx, userId)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	appointments, err := h.appointmentService.ListMine(ctx, userId)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	reviewedAdoptions := adoptions[:0:0]
	for _, a := range adoptions {
		if a.Status != constant.ReviewStatusPending {
			reviewedAdoptions = append(reviewedAdoptions, a)
		}
	}
	reviewedAppointments := appointments[:0:0]
	for _, a := range appointments {
		if a.Status != constant.ReviewStatusPending {
			reviewedAppointments = append(reviewedAppointments, a)
		}
	}

	response.Success(ctx, c, map[string]interface{}{
		"adoptions":    reviewedAdoptions,
		"appointments": reviewedAppointments,
	})
}
