package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/thekizzer/microblog/internal/database"
	"github.com/thekizzer/microblog/internal/handlers"
	"github.com/thekizzer/microblog/internal/middleware"
	jwtauth "github.com/thekizzer/microblog/pkg/auth"
	"github.com/thekizzer/microblog/pkg/log"
)

func APIEndpoints(
	r *gin.Engine,
	db *database.Database,
	jwtMgr *jwtauth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	followH *handlers.FollowHandler,
	postH *handlers.PostHandler,
	feedH *handlers.FeedHandler,
	streamH *handlers.FeedStreamHandler,
) {
	r.Use(middleware.RequestLogger(log.L()))

	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authH.Logout)
	}

	// Public explore feed
	r.GET("/api/v1/explore", feedH.Explore)

	// API endpoints
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb, db))
	{
		api.GET("/feed", feedH.HomeFeed)

		api.GET("/users/me", userH.GetMe)
		api.PUT("/users/me", userH.UpdateMe)
		api.GET("/users/search", userH.SearchUsers)
		api.GET("/users/:username", userH.GetProfile)
		api.GET("/users/:username/posts", feedH.UserPosts)
		api.GET("/users/:username/followers", followH.Followers)
		api.GET("/users/:username/following", followH.Following)
		api.POST("/users/:username/follow", followH.Follow)
		api.DELETE("/users/:username/follow", followH.Unfollow)

		api.POST("/posts", postH.CreatePost)
		api.GET("/posts/:id", postH.GetPost)
	}

	// WebSocket live feed
	ws := r.Group("/ws")
	ws.Use(middleware.WSAuthMiddleware(jwtMgr, rdb))
	{
		ws.GET("/feed", streamH.HandleFeedStream)
	}
}
