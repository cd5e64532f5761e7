package models

import "github.com/MS-7160/bingodemo/internal/game"

// Credential-change outcomes
const (
	OutcomeAccepted         = "ACCEPTED"
	OutcomeRejectedMismatch = "REJECTED_MISMATCH"
	OutcomeRejectedEmpty    = "REJECTED_EMPTY"
)

// Request models
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangeCredentialsRequest struct {
	OldUsername string `json:"oldUsername" binding:"required"`
	OldPassword string `json:"oldPassword" binding:"required"`
	// New fields are validated by the change flow itself so an empty
	// value yields the REJECTED_EMPTY outcome rather than a generic
	// binding error.
	NewUsername string `json:"newUsername"`
	NewPassword string `json:"newPassword"`
}

type ToggleCellRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	Username  string `json:"username,omitempty"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
}

type ChangeCredentialsResponse struct {
	Status          string `json:"status"`
	Outcome         string `json:"outcome"`
	Message         string `json:"message"`
	RedirectAfterMs int64  `json:"redirectAfterMs,omitempty"`
}

type SessionResponse struct {
	Status   string          `json:"status"`
	Username string          `json:"username"`
	Screen   string          `json:"screen"`
	Round    int             `json:"round"`
	Card     game.Card       `json:"card"`
	Selected []game.Position `json:"selected"`
}

type ToggleCellResponse struct {
	Status   string          `json:"status"`
	Position game.Position   `json:"position"`
	Selected bool            `json:"selected"`
	All      []game.Position `json:"all"`
}

type HistoryResponse struct {
	Status  string          `json:"status"`
	Records []HistoryRecord `json:"records"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
