package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thekizzer/microblog/internal/database"
	"github.com/thekizzer/microblog/internal/feedstream"
	"github.com/thekizzer/microblog/internal/handlers/dto"
	"github.com/thekizzer/microblog/internal/middleware"
)

type UserHandler struct {
	db  *database.Database
	hub *feedstream.Hub
}

func NewUserHandler(db *database.Database, hub *feedstream.Hub) *UserHandler {
	return &UserHandler{db: db, hub: hub}
}

// GetMe returns the current user's own profile, email included.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	user, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	resp := formatUser(user)
	resp["email"] = user.Email
	c.JSON(http.StatusOK, resp)
}

// UpdateMe edits the current user's username and about-me text.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUser(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.AboutMe != nil {
		user.AboutMe = *req.AboutMe
	}

	if err := h.db.UpdateUser(user); err != nil {
		if errors.Is(err, database.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		return
	}

	c.JSON(http.StatusOK, formatUser(user))
}

// GetProfile returns a user's public profile with follow counts, whether
// the viewer follows them, and whether they have a live feed connection.
func (h *UserHandler) GetProfile(c *gin.Context) {
	viewerID := c.MustGet(middleware.UserIDKey).(uint)

	user, err := h.db.FindUserByUsername(c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	followerCount, err := h.db.FollowerCount(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	followingCount, err := h.db.FollowingCount(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	following, err := h.db.IsFollowing(viewerID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	resp := formatUser(user)
	resp["follower_count"] = followerCount
	resp["following_count"] = followingCount
	resp["following"] = following
	resp["online"] = h.hub.IsOnline(user.ID)
	c.JSON(http.StatusOK, resp)
}

// SearchUsers finds users by username substring.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	users, err := h.db.SearchUsersByUsername(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search users"})
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
