package models

// Follow is a directed edge: follower -> followed. The composite unique
// index allows at most one edge per ordered pair; both columns carry their
// own index because membership is queried in either direction.
type Follow struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	FollowerID uint  `gorm:"not null;index;uniqueIndex:idx_follows_follower_followed" json:"follower_id"`
	FollowedID uint  `gorm:"not null;index;uniqueIndex:idx_follows_follower_followed" json:"followed_id"`
	Follower   *User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed   *User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

func (Follow) TableName() string {
	return "follows"
}
