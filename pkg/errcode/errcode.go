package errcode

import "fmt"

// Error represents a business error
type Error struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("errcode: %d, msg: %s", e.Code, e.Msg)
}

// New creates a new error with code and message
func New(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Wrap wraps an error with additional context
func (e *Error) Wrap(err error) *Error {
	if err == nil {
		return e
	}
	return &Error{
		Code: e.Code,
		Msg:  fmt.Sprintf("%s: %v", e.Msg, err),
	}
}

// Common error codes
var (
	// Success
	ErrSuccess = New(0, "success")

	// Common errors (1xxx)
	ErrInvalidParam    = New(1001, "invalid parameter")
	ErrInternalServer  = New(1002, "internal server error")
	ErrUnauthorized    = New(1003, "unauthorized")
	ErrForbidden       = New(1004, "forbidden")
	ErrNotFound        = New(1005, "not found")
	ErrTooManyRequests = New(1006, "too many requests")
	ErrNoPermission    = New(1007, "no permission to access this resource")

	// Auth errors (2xxx)
	ErrTokenInvalid  = New(2001, "token invalid")
	ErrTokenExpired  = New(2002, "token expired")
	ErrTokenMissing  = New(2003, "token missing")
	ErrTokenMismatch = New(2004, "token user mismatch")
	ErrLoginFailed   = New(2005, "login failed")
	ErrUserNotFound  = New(2006, "user not found")
	ErrUserExists    = New(2007, "user already exists")
	ErrPasswordWrong = New(2008, "password wrong")
	ErrOTPInvalid    = New(2009, "verification code invalid or expired")

	// Pet and adoption errors (3xxx)
	ErrPetNotFound       = New(3001, "pet not found")
	ErrPetNotAvailable   = New(3002, "pet is not available for adoption")
	ErrAdoptionNotFound  = New(3003, "adoption request not found")
	ErrAdoptionReviewed  = New(3004, "adoption request already reviewed")
	ErrAdopterUnderage   = New(3005, "adopter must be at least 18 years old")
	ErrAdoptionDuplicate = New(3006, "pending adoption request already exists for this pet")

	// Appointment errors (4xxx)
	ErrAppointmentNotFound = New(4001, "appointment not found")
	ErrDateBlocked         = New(4002, "date falls on a weekend or holiday")
	ErrInvalidSlot         = New(4003, "time is not a bookable slot")
	ErrSlotTaken           = New(4004, "time slot already booked")
	ErrAppointmentReviewed = New(4005, "appointment already reviewed")
	ErrInvalidService      = New(4006, "unknown appointment service type")

	// Conversation and message errors (5xxx)
	ErrConvNotFound    = New(5001, "conversation not found")
	ErrMessageEmpty    = New(5002, "message content is empty")
	ErrMessageNotFound = New(5003, "message not found")
	ErrSendFailed      = New(5004, "message send failed")

	// WebSocket errors (6xxx)
	ErrConnOverLimit   = New(6001, "connection over max limit")
	ErrConnClosed      = New(6002, "connection closed")
	ErrInvalidProtocol = New(6003, "invalid protocol")
	ErrPushFailed      = New(6004, "push message failed")
)
