package constant

// Role is the participant role carried on sessions and messages.
// Compared with typed equality everywhere; raw role strings from the wire
// are parsed through ParseRole.
type Role string

const (
	RoleAdmin    Role = "admin"
	RolePetOwner Role = "pet owner"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RolePetOwner
}

// Counterpart returns the other side of an owner/admin conversation.
func (r Role) Counterpart() Role {
	if r == RoleAdmin {
		return RolePetOwner
	}
	return RoleAdmin
}

// ParseRole converts a wire string to a Role, RoleUnknown-free: an
// unrecognised value comes back as the zero Role and ok=false.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, true
	case RolePetOwner:
		return RolePetOwner, true
	}
	return "", false
}

// PetStatus is a pet's adoption lifecycle state
type PetStatus string

const (
	PetStatusAvailable PetStatus = "Available"
	PetStatusPending   PetStatus = "Pending"
	PetStatusAdopted   PetStatus = "Adopted"
)

// ReviewStatus is the review state of an adoption request or appointment
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "Pending"
	ReviewStatusApproved ReviewStatus = "Approved"
	ReviewStatusRejected ReviewStatus = "Rejected"
)

// AppointmentType is the clinic service being booked
type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "Consultation"
	AppointmentTypeVaccination  AppointmentType = "Vaccination"
	AppointmentTypeGeneral      AppointmentType = "General"
)

// ValidAppointmentType reports whether t is a bookable service type.
func ValidAppointmentType(t AppointmentType) bool {
	switch t {
	case AppointmentTypeConsultation, AppointmentTypeVaccination, AppointmentTypeGeneral:
		return true
	}
	return false
}

// MinAdopterAge is the minimum adopter age in years.
const MinAdopterAge = 18

// Event names on the realtime channel, shared by the gateway and the SDK.
const (
	EventJoinConversation = "join_conversation"
	EventNewMessage       = "new_message"
	EventTyping           = "typing"
	EventStopTyping       = "stop_typing"
	EventMessagesRead     = "messages_read"
)

// Platform Ids
const (
	PlatformIdUnknown = 0
	PlatformIdWeb     = 1
	PlatformIdAdmin   = 2
)

// Redis key patterns (without prefix, use RedisKey() getters for full keys)
const (
	redisKeyToken       = "token:%d:%d"     // token:{user_id}:{platform_id}
	redisKeyOnline      = "online:%d"       // online:{user_id}
	redisKeyBookedSlots = "slots:booked:%s" // slots:booked:{date}
	redisKeyRegisterOTP = "otp:register:%s" // otp:register:{email}
	redisKeyPasswordOTP = "otp:password:%s" // otp:password:{email}
)

// redisKeyPrefix is the global prefix for all Redis keys
var redisKeyPrefix = "petcare:"

// InitRedisKeyPrefix initializes the Redis key prefix from config
func InitRedisKeyPrefix(prefix string) {
	if prefix != "" {
		redisKeyPrefix = prefix
	}
}

// GetRedisKeyPrefix returns the current Redis key prefix
func GetRedisKeyPrefix() string {
	return redisKeyPrefix
}

// Redis key getters with prefix
func RedisKeyToken() string       { return redisKeyPrefix + redisKeyToken }
func RedisKeyOnline() string      { return redisKeyPrefix + redisKeyOnline }
func RedisKeyBookedSlots() string { return redisKeyPrefix + redisKeyBookedSlots }
func RedisKeyRegisterOTP() string { return redisKeyPrefix + redisKeyRegisterOTP }
func RedisKeyPasswordOTP() string { return redisKeyPrefix + redisKeyPasswordOTP }
