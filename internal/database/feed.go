package database

import (
	"gorm.io/gorm"

	"github.com/thekizzer/microblog/internal/models"
)

// FeedPage is one window of a reverse-chronological post listing.
type FeedPage struct {
	Posts    []models.Post
	Page     int
	PageSize int
	HasNext  bool
	HasPrev  bool
}

// HomeFeed returns one page of posts by the users that userID follows,
// plus userID's own posts, newest first. Users see their own posts in
// their home feed on purpose.
func (d *Database) HomeFeed(userID uint, page, pageSize int) (*FeedPage, error) {
	if _, err := d.GetUser(userID); err != nil {
		return nil, err
	}

	followed := d.db.Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", userID)

	query := d.db.Model(&models.Post{}).
		Where("user_id IN (?) OR user_id = ?", followed, userID)

	return d.paginatePosts(query, page, pageSize)
}

// ExploreFeed returns one page of all posts by all users, newest first.
func (d *Database) ExploreFeed(page, pageSize int) (*FeedPage, error) {
	return d.paginatePosts(d.db.Model(&models.Post{}), page, pageSize)
}

// UserPosts returns one page of posts authored by userID, newest first.
func (d *Database) UserPosts(userID uint, page, pageSize int) (*FeedPage, error) {
	if _, err := d.GetUser(userID); err != nil {
		return nil, err
	}
	query := d.db.Model(&models.Post{}).Where("user_id = ?", userID)
	return d.paginatePosts(query, page, pageSize)
}

// paginatePosts applies the shared windowing contract: 1-indexed pages,
// created_at DESC with id DESC as the deterministic tie-break, and one
// extra row fetched to decide HasNext without a second count query.
// A page below 1 is clamped to 1; a page past the end comes back empty.
func (d *Database) paginatePosts(query *gorm.DB, page, pageSize int) (*FeedPage, error) {
	if pageSize < 1 {
		return nil, ErrInvalidPage
	}
	if page < 1 {
		page = 1
	}

	var posts []models.Post
	err := query.
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize + 1).
		Preload("User").
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}

	hasNext := len(posts) > pageSize
	if hasNext {
		posts = posts[:pageSize]
	}

	return &FeedPage{
		Posts:    posts,
		Page:     page,
		PageSize: pageSize,
		HasNext:  hasNext,
		HasPrev:  page > 1,
	}, nil
}
