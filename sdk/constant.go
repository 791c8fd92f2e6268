package sdk

// Role identifies a conversation participant's side. Typed so role checks
// cannot silently compare against an arbitrary string.
type Role string

// Participant roles
const (
	RoleAdmin    Role = "admin"
	RolePetOwner Role = "pet owner"
)

// Event names on the realtime channel
const (
	EventJoinConversation = "join_conversation"
	EventNewMessage       = "new_message"
	EventTyping           = "typing"
	EventStopTyping       = "stop_typing"
	EventMessagesRead     = "messages_read"
)

// Pet status
const (
	PetStatusAvailable = "Available"
	PetStatusPending   = "Pending"
	PetStatusAdopted   = "Adopted"
)

// Review status
const (
	ReviewStatusPending  = "Pending"
	ReviewStatusApproved = "Approved"
	ReviewStatusRejected = "Rejected"
)

// Appointment service types
const (
	ServiceConsultation = "Consultation"
	ServiceVaccination  = "Vaccination"
	ServiceGeneral      = "General"
)

// Platform Ids
const (
	PlatformIdUnknown = 0
	PlatformIdWeb     = 1
	PlatformIdAdmin   = 2
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// TimeSlots lists the clinic's bookable times in display order
var TimeSlots = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"13:00", "13:30", "14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

// Holidays lists the clinic's closed dates for the current year,
// in addition to weekends
var Holidays = []string{
	"2025-01-01", "2025-01-29", "2025-04-09", "2025-04-17", "2025-04-18",
	"2025-04-19", "2025-05-01", "2025-06-12", "2025-08-21", "2025-08-25",
	"2025-11-01", "2025-11-30", "2025-12-08", "2025-12-24", "2025-12-25",
	"2025-12-30", "2025-12-31",
}
