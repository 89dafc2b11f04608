package server

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"aerohub/internal/config"
	"aerohub/internal/database"
	"aerohub/internal/feed"
	"aerohub/internal/models"
	"aerohub/internal/repository"
	"aerohub/internal/service"
	"aerohub/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer builds a Server over an in-memory database and object
// store, without the Prometheus middleware so repeated test runs do not
// collide on collector registration.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	cfg := &config.Config{
		Env:             "test",
		JWTSecret:       "test-secret-key-for-handler-tests",
		FeedFetchCap:    500,
		FeedMaxPageSize: 100,
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	store := storage.NewMemoryStore()

	s := &Server{
		config:         cfg,
		db:             db,
		store:          store,
		userRepo:       userRepo,
		postRepo:       postRepo,
		engagementRepo: engagementRepo,
	}
	s.postService = service.NewPostService(postRepo, userRepo, engagementRepo, store)
	s.engagementService = service.NewEngagementService(postRepo, engagementRepo)
	s.feedEngine = feed.NewEngine(postRepo, userRepo, store, feed.Options{
		FetchCap:    cfg.FeedFetchCap,
		MaxPageSize: cfg.FeedMaxPageSize,
	})
	return s
}

// authAs injects a fixed caller identity, standing in for AuthRequired.
func authAs(userID uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals("userID", userID)
		}
		return c.Next()
	}
}

func seedUser(t *testing.T, s *Server, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest))
}
