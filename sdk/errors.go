package sdk

import "fmt"

// Error represents an API error
type Error struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.Code, e.Msg)
}

// NewError creates a new error
func NewError(code int, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// IsSuccess checks if the error code indicates success
func (e *Error) IsSuccess() bool {
	return e.Code == 0
}

// Common error codes
const (
	// Success
	CodeSuccess = 0

	// Common errors (1xxx)
	CodeInvalidParam    = 1001
	CodeInternalServer  = 1002
	CodeUnauthorized    = 1003
	CodeForbidden       = 1004
	CodeNotFound        = 1005
	CodeTooManyRequests = 1006
	CodeNoPermission    = 1007

	// Auth errors (2xxx)
	CodeTokenInvalid  = 2001
	CodeTokenExpired  = 2002
	CodeTokenMissing  = 2003
	CodeTokenMismatch = 2004
	CodeLoginFailed   = 2005
	CodeUserNotFound  = 2006
	CodeUserExists    = 2007
	CodePasswordWrong = 2008
	CodeOTPInvalid    = 2009

	// Pet and adoption errors (3xxx)
	CodePetNotFound       = 3001
	CodePetNotAvailable   = 3002
	CodeAdoptionNotFound  = 3003
	CodeAdoptionReviewed  = 3004
	CodeAdopterUnderage   = 3005
	CodeAdoptionDuplicate = 3006

	// Appointment errors (4xxx)
	CodeAppointmentNotFound = 4001
	CodeDateBlocked         = 4002
	CodeInvalidSlot         = 4003
	CodeSlotTaken           = 4004
	CodeAppointmentReviewed = 4005
	CodeInvalidService      = 4006

	// Conversation and message errors (5xxx)
	CodeConvNotFound    = 5001
	CodeMessageEmpty    = 5002
	CodeMessageNotFound = 5003
	CodeSendFailed      = 5004

	// WebSocket errors (6xxx)
	CodeConnOverLimit   = 6001
	CodeConnClosed      = 6002
	CodeInvalidProtocol = 6003
	CodePushFailed      = 6004
)

// Predefined errors
var (
	ErrInvalidParam   = NewError(CodeInvalidParam, "invalid parameter")
	ErrInternalServer = NewError(CodeInternalServer, "internal server error")
	ErrUnauthorized   = NewError(CodeUnauthorized, "unauthorized")
	ErrNoPermission   = NewError(CodeNoPermission, "no permission to access this resource")

	ErrTokenInvalid  = NewError(CodeTokenInvalid, "token invalid")
	ErrTokenMissing  = NewError(CodeTokenMissing, "token missing")
	ErrUserNotFound  = NewError(CodeUserNotFound, "user not found")
	ErrUserExists    = NewError(CodeUserExists, "user already exists")
	ErrPasswordWrong = NewError(CodePasswordWrong, "password wrong")

	ErrPetNotFound     = NewError(CodePetNotFound, "pet not found")
	ErrPetNotAvailable = NewError(CodePetNotAvailable, "pet is not available for adoption")

	ErrDateBlocked  = NewError(CodeDateBlocked, "date falls on a weekend or holiday")
	ErrInvalidSlot  = NewError(CodeInvalidSlot, "time is not a bookable slot")
	ErrSlotTaken    = NewError(CodeSlotTaken, "time slot already booked")
	ErrConvNotFound = NewError(CodeConvNotFound, "conversation not found")
	ErrMessageEmpty = NewError(CodeMessageEmpty, "message content is empty")
	ErrConnClosed   = NewError(CodeConnClosed, "connection closed")
)

// IsCode reports whether err is an API error with the given code
func IsCode(err error, code int) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Code == code
}
