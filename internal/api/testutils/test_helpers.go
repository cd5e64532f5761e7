package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/MS-7160/bingodemo/internal/api"
	"github.com/MS-7160/bingodemo/internal/config"
	"github.com/MS-7160/bingodemo/internal/models"
	"github.com/MS-7160/bingodemo/internal/repository"
	"github.com/MS-7160/bingodemo/internal/service"
	"github.com/MS-7160/bingodemo/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

// TestContext holds all dependencies for tests
type TestContext struct {
	Router     *gin.Engine
	Repository repository.Repository
	Service    service.Service
	Sessions   *session.Store
	JWTSecret  []byte
	DB         *sqlx.DB
	Config     *config.Config
}

// SetupTestContext creates a new test context with initialized dependencies
func SetupTestContext(t *testing.T) *TestContext {
	// Load configuration from environment
	cfg := config.LoadConfig()

	// Point the database at a throwaway file for this test
	if cfg.Database.TestPath != "" {
		cfg.Database.Path = cfg.Database.TestPath
	} else {
		cfg.Database.Path = filepath.Join(t.TempDir(), "bingo_test.db")
	}

	// Use a test JWT secret and a short redirect delay
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "test-secret-key"
	}
	cfg.Game.RedirectDelay = 20 * time.Millisecond

	// Set up database
	db, err := config.SetupDatabase(cfg)
	assert.NoError(t, err, "Failed to set up test database")

	// Create repository
	repo := repository.NewSQLiteRepository(db)

	// Create session store and service
	sessions := session.NewStore(cfg.Game.SessionTTL)
	svc := service.NewDefaultService(repo, sessions, cfg.Auth.JWTSecret,
		cfg.Auth.DefaultUsername, cfg.Auth.DefaultPassword, cfg.Game.RedirectDelay)

	// Seed the default credential pair before any authentication attempt
	err = svc.EnsureSeedCredentials(context.Background())
	assert.NoError(t, err, "Failed to seed credentials")

	// Create API handler
	handler := api.NewHandler(svc)

	// Set up Gin router
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	return &TestContext{
		Router:     router,
		Repository: repo,
		Service:    svc,
		Sessions:   sessions,
		JWTSecret:  []byte(cfg.Auth.JWTSecret),
		DB:         db,
		Config:     cfg,
	}
}

// CleanupTestContext cleans up test resources
func CleanupTestContext(t *TestContext) {
	if t.DB != nil {
		t.DB.Close()
	}
}

// Login authenticates through the API and returns the bearer token
func Login(t *testing.T, ctx *TestContext, username, password string) string {
	w := PerformRequest(ctx.Router, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Username: username, Password: password}, nil)
	assert.Equal(t, http.StatusOK, w.Code, "Login failed for %q", username)

	var resp models.AuthResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	return resp.Token
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
