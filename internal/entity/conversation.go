package entity

// Conversation is a single thread between one pet owner and the clinic staff.
// Each owner has at most one conversation.
type Conversation struct {
	Id        int64 `json:"conversation_id" gorm:"column:id;primaryKey;autoIncrement"`
	OwnerId   int64 `json:"owner_id" gorm:"column:owner_id;uniqueIndex"`
	CreatedAt int64 `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
	UpdatedAt int64 `json:"updated_at" gorm:"column:updated_at;autoUpdateTime:milli"`
}

// TableName returns the table name for Conversation
func (Conversation) TableName() string {
	return "conversations"
}

// ConversationInfo is the admin inbox row: the thread plus its owner's name,
// the newest message preview and how many owner messages are still unread.
type ConversationInfo struct {
	ConversationId int64  `json:"conversation_id"`
	OwnerId        int64  `json:"owner_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	LastMessage    string `json:"last_message"`
	LastMessageAt  int64  `json:"last_message_at"`
	UnreadCount    int64  `json:"unread_count"`
}
