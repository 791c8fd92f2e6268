package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/lmxriel/petcare/internal/service"
	"github.com/lmxriel/petcare/pkg/response"
)

// ReportHandler handles dashboard and report requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Dashboard returns the top-level counters
func (h *ReportHandler) Dashboard(ctx context.Context, c *app.RequestContext) {
	counts, err := h.reportService.Dashboard(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, counts)
}

// UserCount counts registered pet owners
func (h *ReportHandler) UserCount(ctx context.Context, c *app.RequestContext) {
	count, err := h.reportService.UserCount(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, map[string]interface{}{"count": count})
}

// AdoptionCounts breaks adoptions down by status
func (h *ReportHandler) AdoptionCounts(ctx context.Context, c *app.RequestContext) {
	counts, err := h.reportService.AdoptionCounts(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, counts)
}

// AppointmentCounts breaks appointments down by status
func (h *ReportHandler) AppointmentCounts(ctx context.Context, c *app.RequestContext) {
	counts, err := h.reportService.AppointmentCounts(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, counts)
}

// AdoptionReport returns the adoption detail rows
func (h *ReportHandler) AdoptionReport(ctx context.Context, c *app.RequestContext) {
	rows, err := h.reportService.AdoptionReport(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, rows)
}

// AppointmentReport returns the appointment detail rows
func (h *ReportHandler) AppointmentReport(ctx context.Context, c *app.RequestContext) {
	rows, err := h.reportService.AppointmentReport(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, rows)
}
