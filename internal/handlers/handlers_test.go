package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thekizzer/microblog/internal/database"
	"github.com/thekizzer/microblog/internal/feedstream"
	"github.com/thekizzer/microblog/internal/handlers"
	"github.com/thekizzer/microblog/internal/middleware"
	"github.com/thekizzer/microblog/internal/models"
	"github.com/thekizzer/microblog/pkg/auth"
)

func newTestRouter(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Post{}, &models.Follow{}))

	db := database.NewDatabase(gdb)
	jwtMgr := auth.NewJWTManager("test-secret", time.Hour)
	hub := feedstream.NewHub(db)

	authH := handlers.NewAuthHandler(db, jwtMgr, nil)
	feedH := handlers.NewFeedHandler(db, 10)
	userH := handlers.NewUserHandler(db, hub)

	r := gin.New()
	r.POST("/auth/register", authH.Register)
	r.POST("/auth/login", authH.Login)
	r.GET("/api/v1/explore", feedH.Explore)

	// The viewer header stands in for the JWT middleware.
	r.GET("/api/v1/users/:username", func(c *gin.Context) {
		if v, err := strconv.ParseUint(c.GetHeader("X-Viewer-ID"), 10, 64); err == nil {
			c.Set(middleware.UserIDKey, uint(v))
		}
		userH.GetProfile(c)
	})

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "alice",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"username": "alice",
		"password": "wrong password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, _ := newTestRouter(t)

	payload := gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "correct horse",
	}
	w := doJSON(t, r, http.MethodPost, "/auth/register", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	payload["email"] = "alice2@example.com"
	w = doJSON(t, r, http.MethodPost, "/auth/register", payload)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestExplorePagination(t *testing.T) {
	r, db := newTestRouter(t)

	user := &models.User{
		Username:     "poster",
		Email:        "poster@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.SaveUser(user))

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		post := &models.Post{
			Body:      fmt.Sprintf("post %d", i),
			UserID:    user.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.SavePost(post))
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/explore?page=1&per_page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts []struct {
			Body string `json:"body"`
		} `json:"posts"`
		HasNext bool `json:"has_next"`
		HasPrev bool `json:"has_prev"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 2)
	require.Equal(t, "post 4", resp.Posts[0].Body)
	require.True(t, resp.HasNext)
	require.False(t, resp.HasPrev)

	// Garbage pagination params fall back to defaults.
	w = doJSON(t, r, http.MethodGet, "/api/v1/explore?page=-1&per_page=banana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, 5)
}

func TestExplorePerPageClampedToMax(t *testing.T) {
	r, db := newTestRouter(t)

	user := &models.User{
		Username:     "prolific",
		Email:        "prolific@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.SaveUser(user))

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	total := 12
	for i := 0; i < total; i++ {
		post := &models.Post{
			Body:      fmt.Sprintf("post %d", i),
			UserID:    user.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.SavePost(post))
	}

	// An oversized per_page clamps to the cap instead of falling back to
	// the default page size, so all twelve posts come back in one page.
	w := doJSON(t, r, http.MethodGet, "/api/v1/explore?per_page=1000", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Posts   []json.RawMessage `json:"posts"`
		PerPage int               `json:"per_page"`
		HasNext bool              `json:"has_next"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Posts, total)
	require.Equal(t, 100, resp.PerPage)
	require.False(t, resp.HasNext)
}

func TestProfileIncludesPresenceAndFollowState(t *testing.T) {
	r, db := newTestRouter(t)

	alice := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	bob := &models.User{Username: "bob", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, db.SaveUser(alice))
	require.NoError(t, db.SaveUser(bob))
	require.NoError(t, db.FollowUser(alice.ID, bob.ID))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/bob", nil)
	req.Header.Set("X-Viewer-ID", strconv.FormatUint(uint64(alice.ID), 10))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Username      string `json:"username"`
		Following     bool   `json:"following"`
		Online        bool   `json:"online"`
		FollowerCount int64  `json:"follower_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "bob", resp.Username)
	require.True(t, resp.Following)
	require.Equal(t, int64(1), resp.FollowerCount)
	// Nobody holds a live feed connection in this test.
	require.False(t, resp.Online)
}
