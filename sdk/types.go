package sdk

// Response represents the standard API response
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// UserInfo represents public user info
type UserInfo struct {
	Id        int64  `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
	Birthdate string `json:"birthdate,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// Pet represents a catalog entry
type Pet struct {
	Id            int64  `json:"pet_id"`
	Name          string `json:"name"`
	Breed         string `json:"breed"`
	Size          string `json:"size"`
	Gender        string `json:"gender"`
	Weight        string `json:"weight"`
	Color         string `json:"color"`
	Status        string `json:"status"`
	MedicalStatus string `json:"medical_status"`
	Image         string `json:"image"`
	CreatedAt     int64  `json:"created_at"`
	UpdatedAt     int64  `json:"updated_at"`
}

// AdoptionRequest represents an adoption application
type AdoptionRequest struct {
	Id         int64  `json:"id"`
	UserId     int64  `json:"user_id"`
	PetId      int64  `json:"pet_id"`
	Purpose    string `json:"purpose_of_adoption"`
	Status     string `json:"status"`
	ReviewedAt int64  `json:"reviewed_at,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}

// AdoptionWithDetail is an admin review row
type AdoptionWithDetail struct {
	AdoptionRequest
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	PetName   string `json:"pet_name"`
	PetBreed  string `json:"pet_breed"`
}

// Appointment represents a clinic booking
type Appointment struct {
	Id         int64  `json:"id"`
	UserId     int64  `json:"user_id"`
	Service    string `json:"service"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	ReviewedAt int64  `json:"reviewed_at,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}

// AppointmentWithUser is an admin schedule row
type AppointmentWithUser struct {
	Appointment
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Availability is the per-date slot picture
type Availability struct {
	Date        string   `json:"date"`
	Blocked     bool     `json:"blocked"`
	Slots       []string `json:"slots"`
	BookedTimes []string `json:"booked"`
}

// Conversation represents a thread with the clinic staff
type Conversation struct {
	Id          int64 `json:"conversation_id"`
	OwnerId     int64 `json:"owner_id"`
	UnreadCount int64 `json:"unread_count"`
	CreatedAt   int64 `json:"created_at"`
	UpdatedAt   int64 `json:"updated_at"`
}

// ConversationInfo is a staff inbox row
type ConversationInfo struct {
	ConversationId int64  `json:"conversation_id"`
	OwnerId        int64  `json:"owner_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	LastMessage    string `json:"last_message"`
	LastMessageAt  int64  `json:"last_message_at"`
	UnreadCount    int64  `json:"unread_count"`
}

// Message represents one chat message
type Message struct {
	Id             int64  `json:"message_id"`
	ConversationId int64  `json:"conversation_id"`
	SenderId       int64  `json:"sender_id"`
	SenderRole     Role   `json:"sender_role"`
	Content        string `json:"content"`
	IsRead         bool   `json:"is_read"`
	CreatedAt      int64  `json:"created_at"`
}

// ===== Request types =====

// RegisterRequest represents account registration
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

// LoginRequest represents login
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	PlatformId int    `json:"platform_id"`
}

// LoginResponse represents login response
type LoginResponse struct {
	Token    string    `json:"token"`
	UserInfo *UserInfo `json:"user_info"`
}

// UpdateProfileRequest represents profile edits
type UpdateProfileRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
}

// AddPetRequest represents a new catalog entry
type AddPetRequest struct {
	Name          string `json:"name"`
	Breed         string `json:"breed"`
	Size          string `json:"size,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Weight        string `json:"weight,omitempty"`
	Color         string `json:"color,omitempty"`
	MedicalStatus string `json:"medical_status,omitempty"`
	Image         string `json:"image,omitempty"`
}

// UpdatePetRequest represents catalog edits
type UpdatePetRequest struct {
	Name          string `json:"name,omitempty"`
	Breed         string `json:"breed,omitempty"`
	Size          string `json:"size,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Weight        string `json:"weight,omitempty"`
	Color         string `json:"color,omitempty"`
	Status        string `json:"status,omitempty"`
	MedicalStatus string `json:"medical_status,omitempty"`
	Image         string `json:"image,omitempty"`
}

// ApplyAdoptionRequest represents an adoption application
type ApplyAdoptionRequest struct {
	PetId   int64  `json:"pet_id"`
	Purpose string `json:"purpose_of_adoption,omitempty"`
}

// BookRequest represents a slot booking
type BookRequest struct {
	Service string `json:"appointment_type"`
	Date    string `json:"appointment_date"`
	Time    string `json:"timeschedule"`
}

// SendMessageRequest represents a send request
type SendMessageRequest struct {
	Content string `json:"content"`
}

// Notifications bundles a user's reviewed requests
type Notifications struct {
	Adoptions    []*AdoptionRequest `json:"adoptions"`
	Appointments []*Appointment     `json:"appointments"`
}
