package session

import (
	"sync"
	"time"

	"github.com/MS-7160/bingodemo/internal/game"
)

// Screen identifies which screen the session is currently showing
const (
	ScreenGame     = "game"
	ScreenSettings = "settings"
)

// Session is the in-memory state of one user's current game: the
// displayed card, the set of toggled cells, and the round counter.
// Toggled cells are a per-session visual overlay only; they are never
// persisted and have no effect on generation or history.
type Session struct {
	mu sync.Mutex

	Username string
	screen   string

	card      game.Card
	round     int
	cardRound int
	selected  map[game.Position]bool

	redirect *OneShot
}

// New creates a session for the given user with the initial round
// number reported by the history store.
func New(username string, initialRound int) *Session {
	return &Session{
		Username: username,
		screen:   ScreenGame,
		round:    initialRound,
		selected: make(map[game.Position]bool),
	}
}

// Round returns the round counter: the number the next committed card
// will be recorded under. It advances only after a successful history
// write, so a failed write leaves it pointing at the same round.
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// CardRound returns the round number of the currently displayed card.
func (s *Session) CardRound() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cardRound
}

// Card returns the currently displayed card.
func (s *Session) Card() game.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.card
}

// SetCard installs a freshly generated card and clears all toggles.
// The displayed card takes the counter's round number; the counter
// itself advances only after the card has been committed to history.
func (s *Session) SetCard(card game.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.card = card
	s.cardRound = s.round
	s.selected = make(map[game.Position]bool)
}

// AdvanceRound increments the round counter. Called only after a
// successful history write.
func (s *Session) AdvanceRound() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.round++
}

// Toggle flips the selected state of one cell and returns the new
// state. The free cell is not wired to toggling; calls against it are
// no-ops that report unselected.
func (s *Session) Toggle(pos game.Position) bool {
	if pos.IsFree() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected[pos] {
		delete(s.selected, pos)
		return false
	}
	s.selected[pos] = true
	return true
}

// Selected returns the toggled cells in row-major order.
func (s *Session) Selected() []game.Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := make([]game.Position, 0, len(s.selected))
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			pos := game.Position{Row: r, Col: c}
			if s.selected[pos] {
				positions = append(positions, pos)
			}
		}
	}
	return positions
}

// IsSelected reports whether the given cell is currently toggled.
func (s *Session) IsSelected(pos game.Position) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected[pos]
}

// EnterSettings moves the session to the settings screen and cancels
// any pending return-to-game redirect.
func (s *Session) EnterSettings() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.redirect != nil {
		s.redirect.Cancel()
		s.redirect = nil
	}
	s.screen = ScreenSettings
}

// CurrentScreen reports which screen the session is showing.
func (s *Session) CurrentScreen() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

// ScheduleReturnToGame arranges for the session to flip back to the
// game screen after the given delay. A previously scheduled redirect
// is cancelled first.
func (s *Session) ScheduleReturnToGame(delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.redirect != nil {
		s.redirect.Cancel()
	}
	s.redirect = Schedule(delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.screen = ScreenGame
		s.redirect = nil
	})
}

// Close cancels any pending redirect. Called when the session is
// evicted or replaced so the callback cannot fire against a dead
// session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.redirect != nil {
		s.redirect.Cancel()
		s.redirect = nil
	}
}
