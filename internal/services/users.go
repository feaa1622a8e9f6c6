package services

import (
	"errors"
	"fmt"

	"warble/internal/models"
	"warble/pkg/utils"

	"gorm.io/gorm"
)

type SignupDTO struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

type ProfileUpdateDTO struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Signup creates a user with a hashed credential and a fresh API key.
// Uniqueness of username and email is decided by the database at commit
// time; there is no pre-check, so concurrent signups race safely and the
// loser gets ErrDuplicate.
func (s *UserService) Signup(dto SignupDTO) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(dto.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	imageURL := dto.ImageURL
	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := models.User{
		Username:       dto.Username,
		Email:          dto.Email,
		PasswordHash:   hashedPassword,
		ImageURL:       imageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
		APIKey:         utils.GenerateAPIKey(),
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return &user, nil
}

// Authenticate looks a user up by exact username and verifies the password.
// A missing user and a wrong password both return (nil, nil); the caller
// cannot tell them apart. The error is only ever a storage failure.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil
	}

	return &user, nil
}

func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Search lists users by username substring; an empty query lists everyone.
func (s *UserService) Search(q string) ([]models.User, error) {
	var users []models.User
	query := s.db
	if q != "" {
		query = query.Where("username LIKE ?", "%"+q+"%")
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile re-verifies the current password before applying changes.
// Blank image fields fall back to the placeholders; username/email
// collisions surface as ErrDuplicate at commit.
func (s *UserService) UpdateProfile(userID uint, currentPassword string, dto ProfileUpdateDTO) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return nil, ErrUnauthorized
	}

	user.Username = dto.Username
	user.Email = dto.Email
	user.ImageURL = dto.ImageURL
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultImageURL
	}
	user.HeaderImageURL = dto.HeaderImageURL
	if user.HeaderImageURL == "" {
		user.HeaderImageURL = models.DefaultHeaderImageURL
	}
	user.Bio = dto.Bio
	user.Location = dto.Location

	if err := s.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserService) RotateAPIKey(userID uint) (string, error) {
	newKey := utils.GenerateAPIKey()
	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Update("api_key", newKey).Error; err != nil {
		return "", err
	}
	return newKey, nil
}

// DeleteAccount removes the user and everything hanging off them: likes on
// their messages, likes they placed, follow edges in both directions, their
// messages, then the user row. One transaction, all or nothing.
func (s *UserService) DeleteAccount(userID uint) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	ownMessages := tx.Model(&models.Message{}).Select("id").Where("user_id = ?", userID)
	if err := tx.Where("message_id IN (?)", ownMessages).Delete(&models.Like{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("follower_id = ? OR followed_id = ?", userID, userID).Delete(&models.Follow{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Message{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&models.User{}, userID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
