package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thekizzer/microblog/internal/database"
	"github.com/thekizzer/microblog/internal/models"
)

const avatarSize = 128

func formatUser(user *models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"about_me":     user.AboutMe,
		"avatar_url":   user.AvatarURL(avatarSize),
		"last_seen_at": user.LastSeenAt,
		"created_at":   user.CreatedAt,
	}
}

func formatPost(post *models.Post) gin.H {
	return gin.H{
		"id":         post.ID,
		"body":       post.Body,
		"created_at": post.CreatedAt,
		"author": gin.H{
			"id":         post.User.ID,
			"username":   post.User.Username,
			"avatar_url": post.User.AvatarURL(avatarSize),
		},
	}
}

func formatFeedPage(page *database.FeedPage) gin.H {
	posts := make([]gin.H, len(page.Posts))
	for i := range page.Posts {
		posts[i] = formatPost(&page.Posts[i])
	}
	return gin.H{
		"posts":    posts,
		"page":     page.Page,
		"per_page": page.PageSize,
		"has_next": page.HasNext,
		"has_prev": page.HasPrev,
	}
}

// abortDBError maps database sentinel errors onto HTTP statuses.
func abortDBError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, database.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, database.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
	case errors.Is(err, database.ErrInvalidPage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pagination parameters"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
