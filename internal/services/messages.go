package services

import (
	"errors"
	"time"
	"unicode/utf8"

	"warble/internal/models"

	"gorm.io/gorm"
)

// FeedLimit caps how many messages the home feed and profile pages return.
const FeedLimit = 100

type MessageService struct {
	db *gorm.DB
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// Post validates the text (1-140 characters) and stores it with the
// creation time. The timestamp is never touched again.
func (s *MessageService) Post(userID uint, text string) (*models.Message, error) {
	length := utf8.RuneCountInString(text)
	if length < 1 || length > models.MaxMessageLength {
		return nil, ErrValidation
	}

	message := models.Message{
		Text:      text,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	return &message, nil
}

func (s *MessageService) Get(id uint) (*models.Message, error) {
	var message models.Message
	if err := s.db.Preload("User").First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

// Delete removes a message and its like edges. Only the author may delete.
func (s *MessageService) Delete(messageID, requesterID uint) error {
	var message models.Message
	if err := s.db.First(&message, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if message.UserID != requesterID {
		return ErrUnauthorized
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("message_id = ?", messageID).Delete(&models.Like{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&models.Message{}, messageID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// ByUser returns a user's own messages, newest first.
func (s *MessageService) ByUser(userID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// FeedFor assembles the home feed: messages authored by the user or by
// anyone the user follows, newest first, capped at limit. A single OR over
// a subquery keeps each message in the result once even when the follow
// graph loops back to the author.
func (s *MessageService) FeedFor(userID uint, limit int) ([]models.Message, error) {
	followed := s.db.Model(&models.Follow{}).Select("followed_id").Where("follower_id = ?", userID)

	var messages []models.Message
	err := s.db.Preload("User").
		Where("user_id = ? OR user_id IN (?)", userID, followed).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
