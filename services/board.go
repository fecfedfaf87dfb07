package services

import (
	"context"
	"time"

	"github.com/autoservice/garage-api/models"
	"github.com/autoservice/garage-api/planner"
)

// BoardView is one day of the planning board, ready to draw
type BoardView struct {
	Date          string              `json:"date"`
	Timezone      string              `json:"timezone"`
	HeaderColumns int                 `json:"headerColumns"`
	SlotColumns   int                 `json:"slotColumns"`
	SlotMinutes   int                 `json:"slotMinutes"`
	Hours         []planner.HourLabel `json:"hours"`
	Rows          []planner.BoxRow    `json:"rows"`
	Placements    []planner.Placement `json:"placements"`
	Hidden        []planner.Placement `json:"hidden"`
	Incoming      []uint              `json:"incoming"`
	Orders        []models.Order      `json:"orders"`
}

// Board loads the day's orders and lays them out on grid. An empty date means today.
// A grid without a location uses the reference timezone.
func (s *ScheduleService) Board(ctx context.Context, date string, grid planner.Grid) (*BoardView, error) {
	if date == "" {
		date = time.Now().In(s.loc).Format(DateLayout)
	}

	orders, err := s.ListForDay(ctx, date)
	if err != nil {
		return nil, err
	}

	if grid.Location == nil {
		grid.Location = s.loc
	}
	board := planner.Arrange(BoardEntries(orders), grid)

	return &BoardView{
		Date:          date,
		Timezone:      grid.Location.String(),
		HeaderColumns: grid.HeaderColumns,
		SlotColumns:   grid.SlotColumns(),
		SlotMinutes:   grid.SlotMinutes,
		Hours:         grid.HourLabels(),
		Rows:          grid.Rows(),
		Placements:    board.Placements,
		Hidden:        board.Hidden,
		Incoming:      board.Incoming,
		Orders:        orders,
	}, nil
}

// BoardEntries converts orders to layout entries. An order whose box row is gone counts as unboxed.
func BoardEntries(orders []models.Order) []planner.Entry {
	entries := make([]planner.Entry, 0, len(orders))
	for i := range orders {
		order := &orders[i]
		start := order.CreateDate
		entry := planner.Entry{
			OrderID: order.ID,
			Start:   &start,
			End:     order.CompleteDate,
		}
		if order.Box != nil {
			n := order.Box.BoxNumber
			entry.BoxNumber = &n
		}
		entries = append(entries, entry)
	}
	return entries
}
