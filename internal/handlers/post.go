package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thekizzer/microblog/internal/database"
	"github.com/thekizzer/microblog/internal/feedstream"
	"github.com/thekizzer/microblog/internal/handlers/dto"
	"github.com/thekizzer/microblog/internal/middleware"
	"github.com/thekizzer/microblog/internal/models"
	"github.com/thekizzer/microblog/pkg/log"
)

type PostHandler struct {
	db  *database.Database
	hub *feedstream.Hub
}

func NewPostHandler(db *database.Database, hub *feedstream.Hub) *PostHandler {
	return &PostHandler{db: db, hub: hub}
}

// CreatePost stores a new post and pushes it to followers' live feeds.
// Posts are immutable once created.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "post body cannot be empty"})
		return
	}

	post := &models.Post{
		Body:      body,
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	if err := h.db.SavePost(post); err != nil {
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg("post creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save post"})
		return
	}

	// Reload with the author for rendering and fan-out.
	full, err := h.db.GetPost(post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	if payload, err := json.Marshal(formatPost(full)); err == nil {
		h.hub.BroadcastPost(userID, payload)
	}

	c.JSON(http.StatusCreated, formatPost(full))
}

// GetPost returns a single post by ID.
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	post, err := h.db.GetPost(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	c.JSON(http.StatusOK, formatPost(post))
}
