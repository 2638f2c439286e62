package models

import (
	"time"
)

// APIUsage records model token consumption for a single chatbot request.
type APIUsage struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Model string `gorm:"type:text;not null;index"` // Model name.

	OpenAITokens     int64 `gorm:"column:openai_tokens;not null;default:0"` // Upstream token count.
	PromptTokens     int64 `gorm:"not null;default:0"`                      // Prompt token count.
	CompletionTokens int64 `gorm:"not null;default:0"`                      // Completion token count.
	TotalTokens      int64 `gorm:"not null"`                                // Total token count.

	UserType    string `gorm:"type:text;default:client"` // Caller category.
	UserMessage string `gorm:"type:text"`                // Triggering user message.

	Timestamp time.Time `gorm:"not null;autoCreateTime;index"` // Request timestamp.
}

// TableName keeps the historical collection name.
func (APIUsage) TableName() string { return "apiusage" }
