package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/thekizzer/microblog/internal/feedstream"
	"github.com/thekizzer/microblog/internal/middleware"
)

// FeedStreamHandler upgrades connections for the live post stream.
type FeedStreamHandler struct {
	hub      *feedstream.Hub
	upgrader websocket.Upgrader
}

func NewFeedStreamHandler(hub *feedstream.Hub) *FeedStreamHandler {
	return &FeedStreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origin once the frontend host is fixed
				return true
			},
		},
	}
}

func (h *FeedStreamHandler) HandleFeedStream(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := feedstream.NewClient(h.hub, conn, userID.(uint))

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
