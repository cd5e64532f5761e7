package api

import (
	"errors"
	"net/http"

	"github.com/MS-7160/bingodemo/internal/game"
	"github.com/MS-7160/bingodemo/internal/models"
	"github.com/MS-7160/bingodemo/internal/service"
	"github.com/MS-7160/bingodemo/internal/utils"
	"github.com/gin-gonic/gin"
)

// Handler holds the dependencies for the API handlers
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all API routes on the router
func (h *Handler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")

	// Public routes
	api.POST("/auth/login", h.Login)

	// Authenticated routes
	authorized := api.Group("")
	authorized.Use(AuthMiddleware())
	{
		authorized.POST("/auth/credentials", h.ChangeCredentials)

		authorized.POST("/game/session", h.StartSession)
		authorized.GET("/game/session", h.GetSession)
		authorized.POST("/game/card", h.NewCard)
		authorized.POST("/game/card/toggle", h.ToggleCell)

		authorized.GET("/history", h.History)
		authorized.GET("/history/rounds", h.HistoryByUser)
	}
}

// Login handles POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Username and password are required")
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Every rejected attempt gets the same message
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Status:  "error",
				Code:    "INVALID_CREDENTIALS",
				Message: "Incorrect username or password",
			})
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ChangeCredentials handles POST /api/auth/credentials
func (h *Handler) ChangeCredentials(c *gin.Context) {
	var req models.ChangeCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Current username and password are required")
		return
	}

	resp, err := h.svc.ChangeCredentials(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}

	switch resp.Outcome {
	case models.OutcomeRejectedMismatch:
		c.JSON(http.StatusUnauthorized, resp)
	case models.OutcomeRejectedEmpty:
		c.JSON(http.StatusUnprocessableEntity, resp)
	default:
		c.JSON(http.StatusOK, resp)
	}
}

// StartSession handles POST /api/game/session
func (h *Handler) StartSession(c *gin.Context) {
	resp, err := h.svc.StartSession(c.Request.Context(), c.GetString("username"))
	if err != nil {
		storageError(c, resp)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetSession handles GET /api/game/session
func (h *Handler) GetSession(c *gin.Context) {
	resp, err := h.svc.GetSession(c.GetString("username"))
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			noSession(c)
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// NewCard handles POST /api/game/card
func (h *Handler) NewCard(c *gin.Context) {
	resp, err := h.svc.NewCard(c.Request.Context(), c.GetString("username"))
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			noSession(c)
			return
		}
		storageError(c, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ToggleCell handles POST /api/game/card/toggle
func (h *Handler) ToggleCell(c *gin.Context) {
	var req models.ToggleCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Row and column are required")
		return
	}

	pos := game.Position{Row: *req.Row, Col: *req.Col}
	resp, err := h.svc.ToggleCell(c.GetString("username"), pos)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSession):
			noSession(c)
		case errors.Is(err, service.ErrInvalidCell):
			badRequest(c, "Cell position out of range")
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History handles GET /api/history
func (h *Handler) History(c *gin.Context) {
	resp, err := h.svc.History(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HistoryByUser handles GET /api/history/rounds
func (h *Handler) HistoryByUser(c *gin.Context) {
	resp, err := h.svc.HistoryByUser(c.Request.Context(), c.GetString("username"))
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Response helpers
func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "BAD_REQUEST",
		Message: message,
	})
}

func noSession(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Status:  "error",
		Code:    "NO_SESSION",
		Message: "No active game session",
	})
}

func internalError(c *gin.Context, err error) {
	utils.Errorf("request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Status:  "error",
		Code:    "INTERNAL_ERROR",
		Message: err.Error(),
	})
}

// storageError reports a failed history write. The session keeps the
// generated card on display, so the body carries the session state
// alongside the error code for the client to show a transient notice.
func storageError(c *gin.Context, state *models.SessionResponse) {
	utils.Error("history write failed; round counter not advanced")
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"code":    "STORAGE_ERROR",
		"message": "Failed to record the round; the card is shown but not saved",
		"session": state,
	})
}
