package database

import (
	"gorm.io/gorm/clause"

	"github.com/thekizzer/microblog/internal/models"
)

// FollowUser inserts the (follower, followed) edge. Following a user twice
// is a no-op: the insert is absorbed by the unique index on the pair.
// Self-follows are rejected before touching the store.
func (d *Database) FollowUser(followerID, followedID uint) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	if _, err := d.GetUser(followedID); err != nil {
		return err
	}

	edge := models.Follow{FollowerID: followerID, FollowedID: followedID}
	return translate(d.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error)
}

// UnfollowUser removes the edge if present. Unfollowing a user that was
// never followed is a no-op.
func (d *Database) UnfollowUser(followerID, followedID uint) error {
	err := d.db.
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
	return translate(err)
}

func (d *Database) IsFollowing(followerID, followedID uint) (bool, error) {
	var count int64
	err := d.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// FollowersOf returns the users following userID.
func (d *Database) FollowersOf(userID uint) ([]models.User, error) {
	var users []models.User
	err := d.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// FollowingOf returns the users that userID follows.
func (d *Database) FollowingOf(userID uint) ([]models.User, error) {
	var users []models.User
	err := d.db.
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}

// FollowerIDs returns just the follower ids of userID, for fan-out.
func (d *Database) FollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := d.db.Model(&models.Follow{}).
		Where("followed_id = ?", userID).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	return ids, nil
}

func (d *Database) FollowerCount(userID uint) (int64, error) {
	var count int64
	err := d.db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, translate(err)
}

func (d *Database) FollowingCount(userID uint) (int64, error) {
	var count int64
	err := d.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, translate(err)
}
