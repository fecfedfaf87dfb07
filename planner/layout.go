// Package planner lays orders out on the day planning board: one row per box,
// one column per time slot. Everything here is pure and deterministic.
package planner

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Grid describes the board geometry
type Grid struct {
	StartHour     int         // first displayed hour
	EndHour       int         // orders starting at or after this hour are hidden
	SlotMinutes   int         // width of one column
	HeaderColumns int         // columns before the first slot (box label, 1-based offset)
	BoxRows       map[int]int // box number to row; row 1 is the hour header
	Location      *time.Location
}

// DefaultGrid is the 08:00-20:00 board with half-hour slots and four boxes
func DefaultGrid(loc *time.Location) Grid {
	if loc == nil {
		loc = time.UTC
	}
	return Grid{
		StartHour:     8,
		EndHour:       20,
		SlotMinutes:   30,
		HeaderColumns: 2,
		BoxRows:       map[int]int{1: 2, 2: 3, 3: 4, 4: 5},
		Location:      loc,
	}
}

// SlotsPerHour returns how many columns one hour spans
func (g Grid) SlotsPerHour() int {
	return 60 / g.SlotMinutes
}

// SlotColumns returns the number of time columns on the board
func (g Grid) SlotColumns() int {
	return (g.EndHour - g.StartHour) * g.SlotsPerHour()
}

// HourLabel is one hour mark of the header row
type HourLabel struct {
	Hour   int    `json:"hour"`
	Label  string `json:"label"`
	Column int    `json:"column"`
}

// HourLabels returns the header marks from StartHour up to, not including, EndHour
func (g Grid) HourLabels() []HourLabel {
	labels := make([]HourLabel, 0, g.EndHour-g.StartHour)
	for h := g.StartHour; h < g.EndHour; h++ {
		labels = append(labels, HourLabel{
			Hour:   h,
			Label:  fmt.Sprintf("%02d:00", h),
			Column: (h-g.StartHour)*g.SlotsPerHour() + g.HeaderColumns,
		})
	}
	return labels
}

// BoxRow is one box lane of the board
type BoxRow struct {
	BoxNumber int `json:"boxNumber"`
	Row       int `json:"row"`
}

// Rows returns the box lanes in row order
func (g Grid) Rows() []BoxRow {
	rows := make([]BoxRow, 0, len(g.BoxRows))
	for box, row := range g.BoxRows {
		rows = append(rows, BoxRow{BoxNumber: box, Row: row})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Row < rows[j].Row })
	return rows
}

// Entry is the part of an order the layout needs
type Entry struct {
	OrderID   uint
	Start     *time.Time
	End       *time.Time
	BoxNumber *int
}

// Hidden reasons
const (
	ReasonNoBox        = "no box assigned"
	ReasonMissingTimes = "start or end time missing"
	ReasonUnknownBox   = "box is not on the board"
	ReasonOutOfHours   = "starts outside board hours"
)

// Placement is where an order sits on the board
type Placement struct {
	OrderID     uint   `json:"orderId"`
	Hidden      bool   `json:"hidden"`
	Reason      string `json:"reason,omitempty"`
	Row         int    `json:"row,omitempty"`
	ColumnStart int    `json:"columnStart,omitempty"`
	ColumnSpan  int    `json:"columnSpan,omitempty"`
}

func hidden(id uint, reason string) Placement {
	return Placement{OrderID: id, Hidden: true, Reason: reason}
}

// Place computes the board position of one order.
// Span is the duration rounded to the nearest slot, at least one slot.
func Place(e Entry, g Grid) Placement {
	if e.BoxNumber == nil {
		return hidden(e.OrderID, ReasonNoBox)
	}
	if e.Start == nil || e.End == nil {
		return hidden(e.OrderID, ReasonMissingTimes)
	}
	row, ok := g.BoxRows[*e.BoxNumber]
	if !ok {
		return hidden(e.OrderID, ReasonUnknownBox)
	}

	loc := g.Location
	if loc == nil {
		loc = time.UTC
	}
	start := e.Start.In(loc)
	if start.Hour() < g.StartHour || start.Hour() >= g.EndHour {
		return hidden(e.OrderID, ReasonOutOfHours)
	}

	minutes := e.End.Sub(*e.Start).Minutes()
	span := int(math.Round(minutes / float64(g.SlotMinutes)))
	if span < 1 {
		span = 1
	}

	column := (start.Hour()-g.StartHour)*g.SlotsPerHour() + start.Minute()/g.SlotMinutes + g.HeaderColumns

	return Placement{
		OrderID:     e.OrderID,
		Row:         row,
		ColumnStart: column,
		ColumnSpan:  span,
	}
}

// Board is the arranged day
type Board struct {
	Placements []Placement `json:"placements"` // orders drawn on the grid
	Hidden     []Placement `json:"hidden"`     // boxed orders that cannot be drawn
	Incoming   []uint      `json:"incoming"`   // orders with no box yet
}

// Arrange places every entry. Entries without a box go to Incoming, boxed entries that
// cannot be drawn go to Hidden. Input order is preserved within each group.
func Arrange(entries []Entry, g Grid) Board {
	board := Board{
		Placements: []Placement{},
		Hidden:     []Placement{},
		Incoming:   []uint{},
	}
	for _, e := range entries {
		p := Place(e, g)
		switch {
		case p.Reason == ReasonNoBox:
			board.Incoming = append(board.Incoming, e.OrderID)
		case p.Hidden:
			board.Hidden = append(board.Hidden, p)
		default:
			board.Placements = append(board.Placements, p)
		}
	}
	return board
}
