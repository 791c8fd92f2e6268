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

// AppointmentHandler handles clinic booking requests
type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// Availability returns the slot picture for a date
func (h *AppointmentHandler) Availability(ctx context.Context, c *app.RequestContext) {
	date := c.Query("date")
	if date == "" {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	avail, err := h.appointmentService.GetAvailability(ctx, date)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, avail)
}

// Book reserves a slot for the caller
func (h *AppointmentHandler) Book(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	var req service.BookRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	appt, err := h.appointmentService.Book(ctx, userId, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, appt)
}

// ListAll returns every appointment for the admin schedule
func (h *AppointmentHandler) ListAll(ctx context.Context, c *app.RequestContext) {
	results, err := h.appointmentService.ListAll(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, results)
}

// ListMine returns the caller's appointments
func (h *AppointmentHandler) ListMine(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	appts, err := h.appointmentService.ListMine(ctx, userId)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, appts)
}

// Approve approves a pending appointment
func (h *AppointmentHandler) Approve(ctx context.Context, c *app.RequestContext) {
	h.review(ctx, c, constant.ReviewStatusApproved)
}

// Reject rejects a pending appointment, releasing its slot
func (h *AppointmentHandler) Reject(ctx context.Context, c *app.RequestContext) {
	h.review(ctx, c, constant.ReviewStatusRejected)
}

func (h *AppointmentHandler) review(ctx context.Context, c *app.RequestContext, status constant.ReviewStatus) {
	id, ok := paramId(c, "id")
	if !ok {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	appt, err := h.appointmentService.Review(ctx, id, status)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, appt)
}
