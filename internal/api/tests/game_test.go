package api_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/MS-7160/bingodemo/internal/api/testutils"
	"github.com/MS-7160/bingodemo/internal/game"
	"github.com/MS-7160/bingodemo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startSession(t *testing.T, testCtx *testutils.TestContext, token string) models.SessionResponse {
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/game/session",
		nil,
		testutils.AuthHeaders(token),
	)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestStartSession(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	token := testutils.Login(t, testCtx, "User", "password")

	// A fresh user starts at round 1 with a full card
	resp := startSession(t, testCtx, token)
	assert.Equal(t, 1, resp.Round)
	assert.Empty(t, resp.Selected)
	assert.Equal(t, game.FreeMarker, resp.Card.Cells[2][2])

	// Every displayed value sits in its column's range, without repeats
	for c := 0; c < game.Size; c++ {
		low, high := game.ColumnRange(c)
		seen := map[string]bool{}
		for r := 0; r < game.Size; r++ {
			cell := resp.Card.Cells[r][c]
			if r == 2 && c == 2 {
				continue
			}
			value, err := strconv.Atoi(cell)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, value, low)
			assert.LessOrEqual(t, value, high)
			assert.False(t, seen[cell])
			seen[cell] = true
		}
	}

	// Starting again replaces the session but continues the rounds
	resp = startSession(t, testCtx, token)
	assert.Equal(t, 2, resp.Round)
}

func TestNewCard(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	token := testutils.Login(t, testCtx, "User", "password")
	first := startSession(t, testCtx, token)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/game/card",
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, first.Round+1, resp.Round)
	assert.Empty(t, resp.Selected)

	// Without a session the endpoint reports no active game
	other := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(other)
	otherToken := testutils.Login(t, other, "User", "password")

	w = testutils.PerformRequest(
		other.Router,
		http.MethodPost,
		"/api/game/card",
		nil,
		testutils.AuthHeaders(otherToken),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleCell(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	token := testutils.Login(t, testCtx, "User", "password")
	startSession(t, testCtx, token)

	row, col := 0, 3
	toggleReq := models.ToggleCellRequest{Row: &row, Col: &col}

	// First toggle selects the cell
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/game/card/toggle",
		toggleReq,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ToggleCellResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Selected)
	assert.Len(t, resp.All, 1)

	// Second toggle returns it to unselected
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/game/card/toggle",
		toggleReq,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Selected)
	assert.Empty(t, resp.All)

	// The free cell is a no-op and never joins the selection
	freeRow, freeCol := 2, 2
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/game/card/toggle",
		models.ToggleCellRequest{Row: &freeRow, Col: &freeCol},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Selected)
	assert.Empty(t, resp.All)

	// Out-of-range positions are rejected
	badRow, badCol := 5, 0
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/game/card/toggle",
		models.ToggleCellRequest{Row: &badRow, Col: &badCol},
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSession(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	defer testutils.CleanupTestContext(testCtx)

	token := testutils.Login(t, testCtx, "User", "password")

	// No session yet
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/game/session",
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)

	created := startSession(t, testCtx, token)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/game/session",
		nil,
		testutils.AuthHeaders(token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created.Card, resp.Card)
	assert.Equal(t, created.Round, resp.Round)
}
