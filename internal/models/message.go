package models

import (
	"time"
)

// MaxMessageLength caps warble text at 140 characters.
const MaxMessageLength = 140

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null;size:140" json:"text"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Likes []Like `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}
