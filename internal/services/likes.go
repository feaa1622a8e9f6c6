package services

import (
	"errors"

	"warble/internal/models"

	"gorm.io/gorm"
)

type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// Toggle flips the like state for (user, message) and reports whether the
// message is liked afterwards. Liking your own warble is refused outright.
// The legacy schema allows one like per message system-wide, so an insert
// losing to someone else's like surfaces as ErrDuplicate.
func (s *LikeService) Toggle(userID, messageID uint) (bool, error) {
	var message models.Message
	if err := s.db.First(&message, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	if message.UserID == userID {
		return false, ErrSelfLike
	}

	var existing models.Like
	err := s.db.Where("user_id = ? AND message_id = ?", userID, messageID).First(&existing).Error
	if err == nil {
		if err := s.db.Delete(&models.Like{}, existing.ID).Error; err != nil {
			return true, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := models.Like{UserID: userID, MessageID: messageID}
	if err := s.db.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, ErrDuplicate
		}
		return false, err
	}
	return true, nil
}

// LikedBy returns the messages a user has liked, newest first.
func (s *LikeService) LikedBy(userID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Preload("User").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("messages.created_at DESC, messages.id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
