package entity

import "github.com/lmxriel/petcare/pkg/constant"

// Message is one chat message inside a conversation. Ids come from the
// snowflake generator so ordering by id matches send order.
type Message struct {
	Id             int64         `json:"message_id" gorm:"column:id;primaryKey"`
	ConversationId int64         `json:"conversation_id" gorm:"column:conversation_id;index"`
	SenderId       int64         `json:"sender_id" gorm:"column:sender_id"`
	SenderRole     constant.Role `json:"sender_role" gorm:"column:sender_role"`
	Content        string        `json:"content" gorm:"column:content;type:text"`
	IsRead         bool          `json:"is_read" gorm:"column:is_read"`
	CreatedAt      int64         `json:"created_at" gorm:"column:created_at;autoCreateTime:milli"`
}

// TableName returns the table name for Message
func (Message) TableName() string {
	return "messages"
}
