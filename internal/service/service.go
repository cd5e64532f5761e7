package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/MS-7160/bingodemo/internal/game"
	"github.com/MS-7160/bingodemo/internal/models"
	"github.com/MS-7160/bingodemo/internal/repository"
	"github.com/MS-7160/bingodemo/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors mapped to HTTP responses by the API layer
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoSession          = errors.New("no active game session")
	ErrInvalidCell        = errors.New("cell position out of range")
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	ChangeCredentials(ctx context.Context, req models.ChangeCredentialsRequest) (*models.ChangeCredentialsResponse, error)
	EnsureSeedCredentials(ctx context.Context) error

	// Game session
	StartSession(ctx context.Context, username string) (*models.SessionResponse, error)
	GetSession(username string) (*models.SessionResponse, error)
	NewCard(ctx context.Context, username string) (*models.SessionResponse, error)
	ToggleCell(username string, pos game.Position) (*models.ToggleCellResponse, error)

	// History
	History(ctx context.Context) (*models.HistoryResponse, error)
	HistoryByUser(ctx context.Context, username string) (*models.HistoryResponse, error)
}

// DefaultService implements the Service interface
type DefaultService struct {
	repo          repository.Repository
	sessions      *session.Store
	jwtSecret     []byte
	tokenDuration time.Duration

	defaultUsername string
	defaultPassword string
	redirectDelay   time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, sessions *session.Store, jwtSecret string, defaultUsername, defaultPassword string, redirectDelay time.Duration) *DefaultService {
	return &DefaultService{
		repo:            repo,
		sessions:        sessions,
		jwtSecret:       []byte(jwtSecret),
		tokenDuration:   24 * time.Hour, // 24 hours token validity
		defaultUsername: defaultUsername,
		defaultPassword: defaultPassword,
		redirectDelay:   redirectDelay,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the card generator's randomness source. Used by tests.
func (s *DefaultService) SetRand(rng *rand.Rand) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	s.rng = rng
}

func (s *DefaultService) generateCard() game.Card {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return game.Generate(s.rng)
}

// EnsureSeedCredentials stores the default credential pair on first run,
// before any authentication attempt is evaluated. Later runs are no-ops.
func (s *DefaultService) EnsureSeedCredentials(ctx context.Context) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing default password: %w", err)
	}

	if err := s.repo.SeedCredentials(ctx, s.defaultUsername, string(hashed)); err != nil {
		return fmt.Errorf("error seeding credentials: %w", err)
	}

	return nil
}

// Login checks the entered pair against the stored one. Every rejected
// attempt fails the same way; there is no lockout or attempt counting.
func (s *DefaultService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	ok, err := s.matchCredentials(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(req.Username)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &models.AuthResponse{
		Status:    "success",
		Username:  req.Username,
		Token:     token,
		ExpiresIn: int(s.tokenDuration.Seconds()),
	}, nil
}

// matchCredentials reports whether the entered pair exactly matches the
// stored one. The username compare is case-sensitive; the password is
// verified against the stored bcrypt hash.
func (s *DefaultService) matchCredentials(ctx context.Context, username, password string) (bool, error) {
	cred, err := s.repo.GetCredentials(ctx)
	if err != nil {
		return false, fmt.Errorf("error reading credentials: %w", err)
	}
	if cred == nil {
		return false, nil
	}

	if cred.Username != username {
		return false, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password)); err != nil {
		return false, nil
	}

	return true, nil
}

// ChangeCredentials validates and applies a credential change. The old
// pair is checked first; only then are the new values validated for
// emptiness. On acceptance the stored pair is overwritten immediately
// and the caller's session is scheduled back to the game screen.
func (s *DefaultService) ChangeCredentials(ctx context.Context, req models.ChangeCredentialsRequest) (*models.ChangeCredentialsResponse, error) {
	// The change request is a settings-screen action; re-entering the
	// screen cancels any redirect still pending from an earlier change.
	sess, hasSession := s.sessions.Get(req.OldUsername)
	if hasSession {
		sess.EnterSettings()
	}

	ok, err := s.matchCredentials(ctx, req.OldUsername, req.OldPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &models.ChangeCredentialsResponse{
			Status:  "error",
			Outcome: models.OutcomeRejectedMismatch,
			Message: "Current username or password is incorrect",
		}, nil
	}

	if req.NewUsername == "" || req.NewPassword == "" {
		return &models.ChangeCredentialsResponse{
			Status:  "error",
			Outcome: models.OutcomeRejectedEmpty,
			Message: "New username and password must not be empty",
		}, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.repo.UpdateCredentials(ctx, req.NewUsername, string(hashed)); err != nil {
		return nil, fmt.Errorf("error updating credentials: %w", err)
	}

	if hasSession {
		sess.ScheduleReturnToGame(s.redirectDelay)
	}

	return &models.ChangeCredentialsResponse{
		Status:          "success",
		Outcome:         models.OutcomeAccepted,
		Message:         "Credentials updated",
		RedirectAfterMs: s.redirectDelay.Milliseconds(),
	}, nil
}

// StartSession begins a fresh game session for the user: the initial
// round comes from the history store (max round + 1, or 1 with no
// history) and the first card is generated and committed right away.
// Any existing session for the user is replaced.
func (s *DefaultService) StartSession(ctx context.Context, username string) (*models.SessionResponse, error) {
	maxRound, err := s.repo.MaxRoundNumber(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error reading round history: %w", err)
	}

	sess := session.New(username, maxRound+1)
	s.sessions.Put(sess)

	if err := s.dealCard(ctx, sess); err != nil {
		return s.sessionResponse(sess), err
	}

	return s.sessionResponse(sess), nil
}

// GetSession returns the current session state for a user
func (s *DefaultService) GetSession(username string) (*models.SessionResponse, error) {
	sess, found := s.sessions.Get(username)
	if !found {
		return nil, ErrNoSession
	}
	return s.sessionResponse(sess), nil
}

// NewCard generates and commits a new card within the current session
func (s *DefaultService) NewCard(ctx context.Context, username string) (*models.SessionResponse, error) {
	sess, found := s.sessions.Get(username)
	if !found {
		return nil, ErrNoSession
	}

	if err := s.dealCard(ctx, sess); err != nil {
		return s.sessionResponse(sess), err
	}

	return s.sessionResponse(sess), nil
}

// dealCard installs a freshly generated card into the session and
// records it in history under the session's current round number. The
// round counter advances only after the write succeeds; on a storage
// failure the card stays on display, the counter is left alone, and
// the next successful deal commits under the same round number.
func (s *DefaultService) dealCard(ctx context.Context, sess *session.Session) error {
	card := s.generateCard()
	round := sess.Round()
	sess.SetCard(card)

	record := &models.HistoryRecord{
		Username:    sess.Username,
		RoundNumber: round,
		Number1:     card.Drawn[0],
		Number2:     card.Drawn[1],
		Number3:     card.Drawn[2],
		Number4:     card.Drawn[3],
		Number5:     card.Drawn[4],
		SystemTime:  time.Now().Format(models.SystemTimeLayout),
	}

	if err := s.repo.InsertHistory(ctx, record); err != nil {
		return fmt.Errorf("error recording round: %w", err)
	}

	sess.AdvanceRound()
	return nil
}

// ToggleCell flips one cell's selected state in the user's session
func (s *DefaultService) ToggleCell(username string, pos game.Position) (*models.ToggleCellResponse, error) {
	sess, found := s.sessions.Get(username)
	if !found {
		return nil, ErrNoSession
	}

	if !pos.InBounds() {
		return nil, ErrInvalidCell
	}

	selected := sess.Toggle(pos)

	return &models.ToggleCellResponse{
		Status:   "success",
		Position: pos,
		Selected: selected,
		All:      sess.Selected(),
	}, nil
}

// History returns every recorded round, newest insert first
func (s *DefaultService) History(ctx context.Context) (*models.HistoryResponse, error) {
	records, err := s.repo.ListHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing history: %w", err)
	}

	return &models.HistoryResponse{
		Status:  "success",
		Records: records,
	}, nil
}

// HistoryByUser returns one user's rounds, highest round first
func (s *DefaultService) HistoryByUser(ctx context.Context, username string) (*models.HistoryResponse, error) {
	records, err := s.repo.ListHistoryByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error listing history: %w", err)
	}

	return &models.HistoryResponse{
		Status:  "success",
		Records: records,
	}, nil
}

func (s *DefaultService) sessionResponse(sess *session.Session) *models.SessionResponse {
	return &models.SessionResponse{
		Status:   "success",
		Username: sess.Username,
		Screen:   sess.CurrentScreen(),
		Round:    sess.CardRound(),
		Card:     sess.Card(),
		Selected: sess.Selected(),
	}
}

// Helper methods
func (s *DefaultService) generateJWT(username string) (string, error) {
	expirationTime := time.Now().Add(s.tokenDuration)

	claims := jwt.MapClaims{
		"sub": username, // subject
		"jti": uuid.New().String(),
		"exp": expirationTime.Unix(),
		"iat": time.Now().Unix(), // issued at
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
