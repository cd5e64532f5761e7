package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/MS-7160/bingodemo/internal/game"
	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	s := New("alice", 1)
	pos := game.Position{Row: 0, Col: 3}

	// Toggling once selects, toggling again returns to unselected
	assert.True(t, s.Toggle(pos))
	assert.True(t, s.IsSelected(pos))

	assert.False(t, s.Toggle(pos))
	assert.False(t, s.IsSelected(pos))
}

func TestToggleFreeCellIsNoop(t *testing.T) {
	s := New("alice", 1)
	free := game.Position{Row: game.FreeRow, Col: game.FreeCol}

	assert.False(t, s.Toggle(free))
	assert.False(t, s.IsSelected(free))
	assert.Empty(t, s.Selected())
}

func TestSelectedNeverContainsFreeCell(t *testing.T) {
	s := New("alice", 1)
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			s.Toggle(game.Position{Row: r, Col: c})
		}
	}

	selected := s.Selected()
	assert.Len(t, selected, game.Size*game.Size-1)
	for _, pos := range selected {
		assert.False(t, pos.IsFree())
	}
}

func TestSetCardClearsSelection(t *testing.T) {
	s := New("alice", 1)
	s.Toggle(game.Position{Row: 1, Col: 1})
	s.Toggle(game.Position{Row: 4, Col: 0})

	s.SetCard(game.Generate(rand.New(rand.NewSource(1))))
	assert.Empty(t, s.Selected())
	assert.Equal(t, 1, s.Round(), "round does not advance on card install")
}

func TestAdvanceRound(t *testing.T) {
	s := New("alice", 3)
	s.AdvanceRound()
	assert.Equal(t, 4, s.Round())
}

func TestScheduleReturnToGame(t *testing.T) {
	s := New("alice", 1)
	s.EnterSettings()
	assert.Equal(t, ScreenSettings, s.CurrentScreen())

	s.ScheduleReturnToGame(10 * time.Millisecond)

	assert.Eventually(t, func() bool {
		return s.CurrentScreen() == ScreenGame
	}, time.Second, 5*time.Millisecond)
}

func TestCloseCancelsRedirect(t *testing.T) {
	s := New("alice", 1)
	s.EnterSettings()
	s.ScheduleReturnToGame(20 * time.Millisecond)
	s.Close()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, ScreenSettings, s.CurrentScreen(), "cancelled redirect must not fire")
}

func TestStoreReplacesExistingSession(t *testing.T) {
	st := NewStore(time.Minute)

	first := New("alice", 1)
	st.Put(first)

	second := New("alice", 2)
	st.Put(second)

	got, ok := st.Get("alice")
	assert.True(t, ok)
	assert.Same(t, second, got)
}

func TestStoreDelete(t *testing.T) {
	st := NewStore(time.Minute)
	st.Put(New("bob", 1))
	st.Delete("bob")

	_, ok := st.Get("bob")
	assert.False(t, ok)
}
