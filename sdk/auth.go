package sdk

import (
	"context"
)

// Register creates a new pet owner account
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*UserInfo, error) {
	var info UserInfo
	if err := c.post(ctx, "/users/register", req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Login authenticates and stores the token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := &LoginRequest{
		Email:      email,
		Password:   password,
		PlatformId: c.platformId,
	}

	var resp LoginResponse
	if err := c.post(ctx, "/users/login", req, &resp); err != nil {
		return nil, err
	}

	c.token = resp.Token
	if resp.UserInfo != nil {
		c.userId = resp.UserInfo.Id
	}
	return &resp, nil
}

// Logout invalidates the current token
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/users/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	c.userId = 0
	return nil
}

// Me returns the logged-in user's profile
func (c *Client) Me(ctx context.Context) (*UserInfo, error) {
	var info UserInfo
	if err := c.get(ctx, "/users/me", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateProfile updates the logged-in user's profile
func (c *Client) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*UserInfo, error) {
	var info UserInfo
	if err := c.put(ctx, "/process/updateProfile", req, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Notifications returns the user's reviewed adoption and appointment requests
func (c *Client) Notifications(ctx context.Context) (*Notifications, error) {
	var n Notifications
	if err := c.get(ctx, "/users/notification", nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

type otpRequest struct {
	Email string `json:"email"`
}

type otpData struct {
	OTP string `json:"otp"`
}

// RequestRegisterOTP requests a one-time code for registration
func (c *Client) RequestRegisterOTP(ctx context.Context, email string) (string, error) {
	var data otpData
	if err := c.post(ctx, "/users/otp/register", &otpRequest{Email: email}, &data); err != nil {
		return "", err
	}
	return data.OTP, nil
}

// RequestPasswordOTP requests a one-time code for a password reset
func (c *Client) RequestPasswordOTP(ctx context.Context, email string) (string, error) {
	var data otpData
	if err := c.post(ctx, "/users/otp/password", &otpRequest{Email: email}, &data); err != nil {
		return "", err
	}
	return data.OTP, nil
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// ResetPassword sets a new password using a one-time code
func (c *Client) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return c.post(ctx, "/users/resetPassword", &resetPasswordRequest{
		Email:       email,
		Code:        code,
		NewPassword: newPassword,
	}, nil)
}
