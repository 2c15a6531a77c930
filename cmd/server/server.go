package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/thekizzer/microblog/internal/database"
	"github.com/thekizzer/microblog/internal/feedstream"
	"github.com/thekizzer/microblog/internal/handlers"
	"github.com/thekizzer/microblog/pkg/auth"
	"github.com/thekizzer/microblog/pkg/log"
)

const defaultPostsPerPage = 10

type Server struct {
	Router *gin.Engine
	DB     *database.Database
	Redis  *redis.Client
	Hub    *feedstream.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			l := log.L()
			l.Info().Msg(".env not found, using environment variables")
		}
	}

	log.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_PRETTY") == "true")

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		l := log.L()
		l.Fatal().Err(err).Msg("postgres connect failed")
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		l := log.L()
		l.Fatal().Err(err).Msg("invalid REDIS_URL")
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		l := log.L()
		l.Fatal().Err(err).Msg("redis connect failed")
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	postsPerPage := defaultPostsPerPage
	if s := os.Getenv("POSTS_PER_PAGE"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 {
			postsPerPage = parsed
		}
	}

	hub := feedstream.NewHub(dbConn)
	go hub.Run()

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	userH := handlers.NewUserHandler(dbConn, hub)
	followH := handlers.NewFollowHandler(dbConn)
	postH := handlers.NewPostHandler(dbConn, hub)
	feedH := handlers.NewFeedHandler(dbConn, postsPerPage)
	streamH := handlers.NewFeedStreamHandler(hub)

	router := gin.New()
	router.Use(gin.Recovery())
	APIEndpoints(router, dbConn, jwtMgr, rdb, authH, userH, followH, postH, feedH, streamH)

	return &Server{
		Router: router,
		DB:     dbConn,
		Redis:  rdb,
		Hub:    hub,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	l := log.L()
	l.Info().Str("port", port).Msg("server starting")
	if err := s.Router.Run(":" + port); err != nil {
		l2 := log.L()
		l2.Fatal().Err(err).Msg("server run error")
	}
}
