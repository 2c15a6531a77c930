package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thekizzer/microblog/internal/database"
	"github.com/thekizzer/microblog/internal/middleware"
)

const maxPageSize = 100

type FeedHandler struct {
	db              *database.Database
	defaultPageSize int
}

func NewFeedHandler(db *database.Database, defaultPageSize int) *FeedHandler {
	return &FeedHandler{db: db, defaultPageSize: defaultPageSize}
}

// HomeFeed returns the current user's personalized feed: their own posts
// and posts by everyone they follow, newest first.
func (h *FeedHandler) HomeFeed(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)
	page, pageSize := h.pagination(c)

	feed, err := h.db.HomeFeed(userID, page, pageSize)
	if err != nil {
		abortDBError(c, err, "failed to load feed")
		return
	}

	c.JSON(http.StatusOK, formatFeedPage(feed))
}

// Explore returns all posts by all users, newest first. It is the one
// read surface that works without authentication.
func (h *FeedHandler) Explore(c *gin.Context) {
	page, pageSize := h.pagination(c)

	feed, err := h.db.ExploreFeed(page, pageSize)
	if err != nil {
		abortDBError(c, err, "failed to load feed")
		return
	}

	c.JSON(http.StatusOK, formatFeedPage(feed))
}

// UserPosts returns the posts authored by :username, newest first.
func (h *FeedHandler) UserPosts(c *gin.Context) {
	user, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	page, pageSize := h.pagination(c)

	feed, err := h.db.UserPosts(user.ID, page, pageSize)
	if err != nil {
		abortDBError(c, err, "failed to load posts")
		return
	}

	c.JSON(http.StatusOK, formatFeedPage(feed))
}

// pagination reads page/per_page query parameters. Out-of-range values
// fall back to defaults rather than erroring: page defaults to 1 and
// per_page is capped.
func (h *FeedHandler) pagination(c *gin.Context) (int, int) {
	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	pageSize := h.defaultPageSize
	if s := c.Query("per_page"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 {
			if parsed > maxPageSize {
				parsed = maxPageSize
			}
			pageSize = parsed
		}
	}

	return page, pageSize
}
