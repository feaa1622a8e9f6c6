package services

import (
	"errors"

	"warble/internal/models"

	"gorm.io/gorm"
)

type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow inserts a follower -> followed edge. Following yourself is
// rejected; following someone twice is a no-op (the unique index decides,
// not a pre-check, so concurrent follows cannot double-insert).
func (s *FollowService) Follow(followerID, followedID uint) error {
	if followerID == followedID {
		return ErrValidation
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("id = ?", followedID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	edge := models.Follow{FollowerID: followerID, FollowedID: followedID}
	if err := s.db.Create(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Already following.
			return nil
		}
		return err
	}
	return nil
}

// Unfollow removes the edge if present; removing an absent edge is a no-op.
func (s *FollowService) Unfollow(followerID, followedID uint) error {
	return s.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

func (s *FollowService) IsFollowing(followerID, followedID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

func (s *FollowService) IsFollowedBy(userID, otherID uint) (bool, error) {
	return s.IsFollowing(otherID, userID)
}

// Following lists the users a user follows.
func (s *FollowService) Following(userID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Followers lists the users following a user.
func (s *FollowService) Followers(userID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
