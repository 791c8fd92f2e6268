package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/lmxriel/petcare/internal/config"
	"github.com/lmxriel/petcare/internal/entity"
	"github.com/lmxriel/petcare/internal/repository"
	"github.com/lmxriel/petcare/pkg/constant"
	"github.com/lmxriel/petcare/pkg/errcode"
	"github.com/lmxriel/petcare/pkg/jwt"
	"github.com/mbeoliero/kit/log"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles authentication logic
type AuthService struct {
	userRepo   *repository.UserRepo
	cfg        *config.Config
	rdb        *redis.Client
	tokenStore *jwt.TokenStore
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo *repository.UserRepo, cfg *config.Config, rdb *redis.Client) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		cfg:        cfg,
		rdb:        rdb,
		tokenStore: jwt.NewTokenStore(rdb, cfg.JWT.ExpireHours),
	}
}

// RegisterRequest represents user registration request
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthdate string `json:"birthdate"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	OTP       string `json:"otp,omitempty"`
}

// LoginRequest represents user login request
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	PlatformId int    `json:"platform_id"`
}

// LoginResponse represents user login response
type LoginResponse struct {
	Token    string           `json:"token"`
	UserInfo *entity.UserInfo `json:"user_info"`
}

// UpdateProfileRequest represents profile update request
type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
}

// Register registers a new pet owner account. When an OTP was requested for
// the email it must be supplied and match.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*entity.UserInfo, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || req.FirstName == "" {
		return nil, errcode.ErrInvalidParam
	}
	if req.Birthdate != "" {
		if _, err := entity.ParseDate(req.Birthdate); err != nil {
			return nil, errcode.ErrInvalidParam
		}
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.CtxError(ctx, "check user exists failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if existing != nil {
		return nil, errcode.ErrUserExists
	}

	if req.OTP != "" {
		if err := s.VerifyOTP(ctx, constant.RedisKeyRegisterOTP(), email, req.OTP); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.CtxError(ctx, "hash password failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	user := &entity.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      constant.RolePetOwner,
		Birthdate: req.Birthdate,
		Phone:     req.Phone,
		Address:   req.Address,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		log.CtxError(ctx, "create user failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	log.CtxInfo(ctx, "user registered: user_id=%d, email=%s", user.Id, email)
	return user.ToUserInfo(), nil
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.CtxError(ctx, "get user failed: %v", err)
		return nil, errcode.ErrInternalServer
	}
	if user == nil {
		return nil, errcode.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errcode.ErrPasswordWrong
	}

	token, err := jwt.GenerateToken(user.Id, user.Role, req.PlatformId, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		log.CtxError(ctx, "generate token failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	if err := s.tokenStore.StoreToken(ctx, user.Id, req.PlatformId, token); err != nil {
		log.CtxError(ctx, "store token failed: %v", err)
		return nil, errcode.ErrInternalServer
	}

	// Single device per platform policy
	kickedTokens, err := s.tokenStore.KickOtherTokens(ctx, user.Id, req.PlatformId, token)
	if err != nil {
		log.CtxWarn(ctx, "kick other tokens failed: %v", err)
	} else if len(kickedTokens) > 0 {
		log.CtxInfo(ctx, "kicked %d tokens for user_id=%d, platform_id=%d", len(kickedTokens), user.Id, req.PlatformId)
	}

	log.CtxInfo(ctx, "user logged in: user_id=%d, platform_id=%d", user.Id, req.PlatformId)
	return &LoginResponse{
		Token:    token,
		UserInfo: user.ToUserInfo(),
	}, nil
}

// ValidateToken validates a token and returns claims
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := jwt.ParseToken(token, s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}

	valid, err := s.tokenStore.IsTokenValid(ctx, claims.UserId, claims.PlatformId, token)
	if err != nil {
		log.CtxWarn(ctx, "check token status failed: %v", err)
		// Fall back to JWT validation only if Redis check fails
		return claims, nil
	}
	if !valid {
		return nil, errcode.ErrTokenInvalid
	}

	return claims, nil
}

// Logout invalidates a user's token
func (s *AuthService) Logout(ctx context.Context, userId int64, platformId int, token string) error {
	if err := s.tokenStore.InvalidateToken(ctx, userId, platformId, token); err != nil {
		log.CtxError(ctx, "invalidate token failed: %v", err)
		return errcode.ErrInternalServer
	}
	log.CtxInfo(ctx, "user logged out: user_id=%d, platform_id=%d", userId, platformId)
	return nil
}

// GetUserInfo returns a user's profile
func (s *AuthService) GetUserInfo(ctx context.Context, userId int64) (*entity.UserInfo, error) {
	user, err := s.userRepo.GetById(ctx, userId)
	if err != nil {
		return nil, errcode.ErrUserNotFound
	}
	return user.ToUserInfo(), nil
}

// UpdateProfile updates the caller's profile fields
func (s *AuthService) UpdateProfile(ctx context.Context, userId int64, req *UpdateProfileRequest) (*entity.UserInfo, error) {
	updates := make(map[string]interface{})
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.Birthdate != "" {
		if _, err := entity.ParseDate(req.Birthdate); err != nil {
			return nil, errcode.ErrInvalidParam
		}
		updates["birthdate"] = req.Birthdate
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(ctx, userId, updates); err != nil {
			log.CtxError(ctx, "update profile failed: user_id=%d, error=%v", userId, err)
			return nil, errcode.ErrInternalServer
		}
	}

	return s.GetUserInfo(ctx, userId)
}

// RequestOTP generates a one-time code for the email and stores it in Redis.
// The code is returned to the caller; delivery is out of scope here.
func (s *AuthService) RequestOTP(ctx context.Context, keyPattern, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errcode.ErrInvalidParam
	}

	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	key := fmt.Sprintf(keyPattern, email)
	if err := s.rdb.Set(ctx, key, code, s.cfg.Clinic.OTPExpire).Err(); err != nil {
		log.CtxError(ctx, "store otp failed: %v", err)
		return "", errcode.ErrInternalServer
	}

	log.CtxInfo(ctx, "otp issued: email=%s", email)
	return code, nil
}

// VerifyOTP checks a one-time code and consumes it on success
func (s *AuthService) VerifyOTP(ctx context.Context, keyPattern, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	key := fmt.Sprintf(keyPattern, email)

	stored, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return errcode.ErrOTPInvalid
		}
		log.CtxError(ctx, "get otp failed: %v", err)
		return errcode.ErrInternalServer
	}
	if stored != code {
		return errcode.ErrOTPInvalid
	}

	s.rdb.Del(ctx, key)
	return nil
}

// ResetPassword sets a new password after OTP verification
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if newPassword == "" {
		return errcode.ErrInvalidParam
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.CtxError(ctx, "get user failed: %v", err)
		return errcode.ErrInternalServer
	}
	if user == nil {
		return errcode.ErrUserNotFound
	}

	if err := s.VerifyOTP(ctx, constant.RedisKeyPasswordOTP(), email, code); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.CtxError(ctx, "hash password failed: %v", err)
		return errcode.ErrInternalServer
	}

	if err := s.userRepo.Update(ctx, user.Id, map[string]interface{}{"password": string(hashedPassword)}); err != nil {
		log.CtxError(ctx, "update password failed: %v", err)
		return errcode.ErrInternalServer
	}

	// Old sessions stop working once the password changes
	if err := s.tokenStore.ForceLogoutUser(ctx, user.Id); err != nil {
		log.CtxWarn(ctx, "force logout after reset failed: %v", err)
	}

	log.CtxInfo(ctx, "password reset: user_id=%d", user.Id)
	return nil
}
