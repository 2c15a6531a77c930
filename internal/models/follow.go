package models

import "time"

// Follow is a directed edge in the social graph: the follower sees the
// followed user's posts in their home feed. The composite unique index
// keeps the (follower, followed) pair single-valued.
type Follow struct {
	ID         uint      `gorm:"primaryKey"`
	FollowerID uint      `gorm:"index;uniqueIndex:idx_follower_followed;not null"`
	FollowedID uint      `gorm:"index;uniqueIndex:idx_follower_followed;not null"`
	CreatedAt  time.Time
}

func (Follow) TableName() string { return "follows" }
