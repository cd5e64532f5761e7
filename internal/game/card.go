package game

import (
	"math/rand"
	"strconv"
)

// Grid dimensions and the fixed free cell position
const (
	Size    = 5
	FreeRow = 2
	FreeCol = 2
)

// FreeMarker is the display value of the permanently filled center cell
const FreeMarker = "FREE"

// columnRangeSize is the number of legal values per column (B/I/N/G/O)
const columnRangeSize = 15

// Position identifies a single cell on the card
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// IsFree reports whether the position is the non-interactive center cell
func (p Position) IsFree() bool {
	return p.Row == FreeRow && p.Col == FreeCol
}

// InBounds reports whether the position lies on the 5x5 grid
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// Card is one generated bingo card. Cells holds the displayed values
// (numbers as strings, plus the FREE marker at the center). Drawn holds
// the per-column representative recorded to history: the value assigned
// to row 2 of each column. Column 2's representative is drawn like any
// other even though the free cell hides it from display.
type Card struct {
	Cells [Size][Size]string `json:"cells"`
	Drawn [Size]int          `json:"drawn"`
}

// ColumnRange returns the inclusive bounds of legal values for column c.
func ColumnRange(c int) (low, high int) {
	low = columnRangeSize*c + 1
	return low, low + columnRangeSize - 1
}

// Generate produces a new card. Each column draws 5 distinct values
// uniformly without replacement from its 15-value range; element r of
// the draw goes to grid row r. The center cell is always the FREE
// marker and never consumes a drawn value.
func Generate(rng *rand.Rand) Card {
	var card Card
	for c := 0; c < Size; c++ {
		low, _ := ColumnRange(c)
		perm := rng.Perm(columnRangeSize)
		for r := 0; r < Size; r++ {
			value := low + perm[r]
			if r == FreeRow {
				card.Drawn[c] = value
			}
			if r == FreeRow && c == FreeCol {
				card.Cells[r][c] = FreeMarker
				continue
			}
			card.Cells[r][c] = strconv.Itoa(value)
		}
	}
	return card
}
