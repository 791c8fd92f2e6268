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

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles account registration
func (h *AuthHandler) Register(ctx context.Context, c *app.RequestContext) {
	var req service.RegisterRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	info, err := h.authService.Register(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, info)
}

// Login handles login
func (h *AuthHandler) Login(ctx context.Context, c *app.RequestContext) {
	var req service.LoginRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}
	if req.PlatformId == 0 {
		req.PlatformId = constant.PlatformIdWeb
	}

	resp, err := h.authService.Login(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, resp)
}

// Logout handles logout
func (h *AuthHandler) Logout(ctx context.Context, c *app.RequestContext) {
	userId := middleware.GetUserId(c)
	if userId == 0 {
		response.ErrorWithCode(ctx, c, errcode.ErrUnauthorized)
		return
	}

	err := h.authService.Logout(ctx, userId, middleware.GetPlatformId(c), middleware.GetToken(c))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, nil)
}

// OTPRequest represents a one-time code request
type OTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest represents a one-time code check
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ResetPasswordRequest represents a password reset
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// RequestRegisterOTP issues a registration code
func (h *AuthHandler) RequestRegisterOTP(ctx context.Context, c *app.RequestContext) {
	h.requestOTP(ctx, c, constant.RedisKeyRegisterOTP())
}

// RequestPasswordOTP issues a password reset code
func (h *AuthHandler) RequestPasswordOTP(ctx context.Context, c *app.RequestContext) {
	h.requestOTP(ctx, c, constant.RedisKeyPasswordOTP())
}

func (h *AuthHandler) requestOTP(ctx context.Context, c *app.RequestContext, keyPattern string) {
	var req OTPRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	code, err := h.authService.RequestOTP(ctx, keyPattern, req.Email)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"otp": code,
	})
}

// ResetPassword sets a new password after code verification
func (h *AuthHandler) ResetPassword(ctx context.Context, c *app.RequestContext) {
	var req ResetPasswordRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.ErrorWithCode(ctx, c, errcode.ErrInvalidParam)
		return
	}

	if err := h.authService.ResetPassword(ctx, req.Email, req.Code, req.NewPassword); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, nil)
}
