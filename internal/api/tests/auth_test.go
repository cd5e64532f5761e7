package api_test

import (
	"net/http"
	"testing"

	"github.com/MS-7160/bingodemo/internal/api/testutils"
	"github.com/MS-7160/bingodemo/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestLogin(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Test case 1: Default seeded pair is accepted on a fresh install
	loginReq := models.LoginRequest{
		Username: "User",
		Password: "password",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		loginReq,
		nil,
	)

	assert.Equal(t, http.StatusOK, w.Code)

	// Test case 2: Wrong password
	invalidLoginReq := models.LoginRequest{
		Username: "User",
		Password: "wrong",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		invalidLoginReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 3: Username compare is case-sensitive
	caseLoginReq := models.LoginRequest{
		Username: "user",
		Password: "password",
	}

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		caseLoginReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 4: Invalid request (missing required fields)
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Username: "User"},
		nil,
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRequired(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	// Protected routes reject requests without a token
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/game/session",
		nil,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// And reject a malformed Authorization header
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/history",
		nil,
		map[string]string{"Authorization": "token-without-scheme"},
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
