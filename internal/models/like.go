package models

// Like links a user to a message they liked. message_id is unique on its
// own, so a message can hold at most one like system-wide. The constraint
// is inherited from the legacy schema and kept on purpose.
type Like struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	UserID    uint  `gorm:"not null;index" json:"user_id"`
	MessageID uint  `gorm:"not null;unique" json:"message_id"`
	User      *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Like) TableName() string {
	return "likes"
}
