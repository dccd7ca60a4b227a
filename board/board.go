// Package board builds the snakes-and-ladders chain: a fixed 100-cell board
// whose cells are states and whose dice rolls are weighted transitions.
//
// Board layout:
//
//	Cells are numbered 1..Size. Twenty fixed shortcuts move a piece from one
//	cell to another: a ladder when the target is higher, a snake otherwise.
//	A shortcut cell has exactly one successor, its target. Every other cell
//	fans out to the next DieFaces cells (fewer near the end of the board),
//	one observation per die face. Cell Size is terminal.
//
//	c := chain.New[board.Cell](board.Cells{}, chain.WithSeed(seed))
//	if err := board.Fill(c); err != nil { … }
//	start, _ := c.First()             // walks always begin on cell 1
//	walk, _ := c.Generate(start, board.MaxWalkLength)
package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/markov/chain"
)

const (
	// Size is the number of cells; cell Size is the only terminal cell.
	Size = 100

	// DieFaces is the number of faces of the die.
	DieFaces = 6

	// MaxWalkLength is the longest walk the game generates.
	MaxWalkLength = 60
)

// ErrNilChain is returned when Fill is given a nil chain.
var ErrNilChain = errors.New("board: chain is nil")

// Shortcut moves a piece from From to To.
type Shortcut struct {
	From, To int
}

// Shortcuts is the fixed set of ladders (From < To) and snakes (From > To).
var Shortcuts = [...]Shortcut{
	{13, 4}, {85, 17}, {95, 67}, {97, 58}, {66, 89},
	{87, 31}, {57, 83}, {91, 25}, {28, 50}, {35, 11},
	{8, 30}, {41, 62}, {81, 43}, {69, 32}, {20, 39},
	{33, 70}, {79, 99}, {23, 76}, {15, 47}, {61, 14},
}

// Cell is one square of the board. LadderTo and SnakeTo are zero when the
// cell has no such shortcut.
type Cell struct {
	Number   int `json:"number"`
	LadderTo int `json:"ladder_to,omitempty"`
	SnakeTo  int `json:"snake_to,omitempty"`
}

// Jump returns the shortcut target of c, if any.
func (c Cell) Jump() (int, bool) {
	switch {
	case c.LadderTo != 0:
		return c.LadderTo, true
	case c.SnakeTo != 0:
		return c.SnakeTo, true
	}

	return 0, false
}

// NewBoard returns the Size cells with their shortcuts wired.
func NewBoard() [Size]Cell {
	var cells [Size]Cell
	for i := range cells {
		cells[i].Number = i + 1
	}
	for _, s := range Shortcuts {
		if s.From < s.To {
			cells[s.From-1].LadderTo = s.To
		} else {
			cells[s.From-1].SnakeTo = s.To
		}
	}

	return cells
}

// Fill inserts every cell of NewBoard into c in board order, then records the
// shortcut or dice transitions of each cell.
// Any chain error aborts the fill; the caller is expected to Close c.
func Fill(c *chain.Chain[Cell]) error {
	if c == nil {
		return ErrNilChain
	}

	cells := NewBoard()
	var entries [Size]*chain.Entry[Cell]
	for i, cell := range cells {
		e, err := c.GetOrInsert(cell)
		if err != nil {
			return fmt.Errorf("board: Fill: cell %d: %w", cell.Number, err)
		}
		entries[i] = e
	}

	for i, cell := range cells {
		if to, ok := cell.Jump(); ok {
			if err := c.RecordTransition(entries[i], entries[to-1]); err != nil {
				return fmt.Errorf("board: Fill: shortcut %d->%d: %w", cell.Number, to, err)
			}
			continue
		}
		for face := 1; face <= DieFaces && cell.Number+face <= Size; face++ {
			if err := c.RecordTransition(entries[i], entries[cell.Number+face-1]); err != nil {
				return fmt.Errorf("board: Fill: roll %d from %d: %w", face, cell.Number, err)
			}
		}
	}

	return nil
}

// Cells implements chain.Capabilities for board cells.
type Cells struct{}

// Format renders a cell as "[n] ->", tagging shortcut cells with
// "-ladder to" or "-snake to". The last cell has no arrow.
func (Cells) Format(c Cell) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(strconv.Itoa(c.Number))
	b.WriteString("] ")
	switch {
	case c.LadderTo != 0:
		b.WriteString("-ladder to")
	case c.SnakeTo != 0:
		b.WriteString("-snake to")
	}
	if c.Number != Size {
		b.WriteString("->")
	}

	return strings.TrimSpace(b.String())
}

// Compare orders cells by number.
func (Cells) Compare(a, b Cell) int { return a.Number - b.Number }

// Clone copies the cell by value.
func (Cells) Clone(c Cell) (Cell, error) { return c, nil }

// Release is a no-op for value cells.
func (Cells) Release(Cell) {}

// IsTerminal reports whether c is the final cell.
func (Cells) IsTerminal(c Cell) bool { return c.Number == Size }

// CellCodec stores cells as JSON in snapshot stores.
type CellCodec struct{}

// Kind labels stored board models.
func (CellCodec) Kind() string { return "cells" }

// Encode marshals c.
func (CellCodec) Encode(c Cell) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("board: encode cell %d: %w", c.Number, err)
	}

	return string(b), nil
}

// Decode unmarshals a cell produced by Encode.
func (CellCodec) Decode(s string) (Cell, error) {
	var c Cell
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return Cell{}, fmt.Errorf("board: decode cell: %w", err)
	}

	return c, nil
}
