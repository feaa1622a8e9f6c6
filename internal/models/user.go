package models

import (
	"time"
)

// Placeholder images applied when a signup or profile edit leaves them blank.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"unique;not null;size:80" json:"username"`
	Email          string    `gorm:"unique;not null;size:120" json:"email"`
	PasswordHash   string    `gorm:"not null;size:255" json:"-"`
	ImageURL       string    `gorm:"size:255" json:"image_url"`
	HeaderImageURL string    `gorm:"size:255" json:"header_image_url"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Location       string    `gorm:"size:100" json:"location"`
	APIKey         string    `gorm:"unique;index;size:36" json:"api_key"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	Messages       []Message `gorm:"foreignKey:UserID" json:"messages,omitempty"`
}
