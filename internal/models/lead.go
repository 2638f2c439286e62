package models

import (
	"time"

	"gorm.io/datatypes"
)

// ConversationTurn is one message of a captured chatbot transcript.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant".
	Content string `json:"content"`
}

// Lead is a captured contact record in a tenant database.
type Lead struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name    string `gorm:"type:text;not null"` // Contact name.
	Email   string `gorm:"type:text;not null"` // Contact email.
	Message string `gorm:"type:text;not null"` // Free-form message.

	Conversation datatypes.JSON `gorm:"type:jsonb"` // Transcript turns as JSON.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index"` // Capture timestamp.
}

// TableName keeps the historical collection name.
func (Lead) TableName() string { return "leads" }
