package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thekizzer/microblog/internal/database"
	"github.com/thekizzer/microblog/internal/middleware"
	"github.com/thekizzer/microblog/internal/models"
)

type FollowHandler struct {
	db *database.Database
}

func NewFollowHandler(db *database.Database) *FollowHandler {
	return &FollowHandler{db: db}
}

// Follow makes the current user follow :username. Following someone you
// already follow succeeds without effect.
func (h *FollowHandler) Follow(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	target, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.db.FollowUser(userID, target.ID); err != nil {
		abortDBError(c, err, "failed to follow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": true})
}

// Unfollow removes the edge; unfollowing someone you never followed is
// not an error.
func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	target, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if err := h.db.UnfollowUser(userID, target.ID); err != nil {
		abortDBError(c, err, "failed to unfollow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": false})
}

// Followers lists the users following :username.
func (h *FollowHandler) Followers(c *gin.Context) {
	h.listRelated(c, h.db.FollowersOf)
}

// Following lists the users that :username follows.
func (h *FollowHandler) Following(c *gin.Context) {
	h.listRelated(c, h.db.FollowingOf)
}

func (h *FollowHandler) listRelated(c *gin.Context, view func(uint) ([]models.User, error)) {
	user, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	users, err := view(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	result := make([]gin.H, len(users))
	for i := range users {
		result[i] = gin.H{
			"id":         users[i].ID,
			"username":   users[i].Username,
			"avatar_url": users[i].AvatarURL(avatarSize),
		}
	}

	c.JSON(http.StatusOK, gin.H{"users": result})
}
