// Package inventory owns per-showtime seat availability. Reserve, Release and
// AutoReserve are the only operations that mutate seat state; each runs under
// the lock of the showtime's grid so no reader observes a partial reservation.
package inventory

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrUnknownShowtime   = errors.New("unknown showtime")
	ErrInvalidSeat       = errors.New("invalid seat")
	ErrSeatHeld          = errors.New("seat already held")
	ErrInsufficientSeats = errors.New("not enough free seats")
)

type grid struct {
	mu   sync.Mutex
	rows int
	cols int
	held []bool // row-major
}

func (g *grid) index(s Seat) int {
	return s.Row*g.cols + s.Col
}

func (g *grid) parseAll(labels []string) ([]Seat, error) {
	seats := make([]Seat, 0, len(labels))
	seen := make(map[Seat]bool, len(labels))
	for _, label := range labels {
		s, err := ParseSeat(label, g.rows, g.cols)
		if err != nil {
			return nil, err
		}
		if seen[s] {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidSeat, s.Label())
		}
		seen[s] = true
		seats = append(seats, s)
	}
	return seats, nil
}

// Layout describes a showtime's seat grid.
type Layout struct {
	Rows int
	Cols int
}

// SeatState is one cell of a seat map snapshot.
type SeatState struct {
	Seat      string `json:"seat"`
	Available bool   `json:"available"`
}

type Inventory struct {
	mu    sync.RWMutex
	grids map[string]*grid
	log   *zap.Logger
}

func New(log *zap.Logger) *Inventory {
	return &Inventory{
		grids: make(map[string]*grid),
		log:   log.With(zap.String("component", "inventory")),
	}
}

// Register creates an all-free grid for a showtime. Registering the same
// showtime twice is an error.
func (inv *Inventory) Register(showtimeID string, rows, cols int) error {
	if rows < 1 || rows > MaxRows || cols < 1 {
		return fmt.Errorf("invalid seat grid %dx%d for showtime %s", rows, cols, showtimeID)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, ok := inv.grids[showtimeID]; ok {
		return fmt.Errorf("showtime %s already registered", showtimeID)
	}
	inv.grids[showtimeID] = &grid{rows: rows, cols: cols, held: make([]bool, rows*cols)}
	return nil
}

func (inv *Inventory) grid(showtimeID string) (*grid, error) {
	inv.mu.RLock()
	g, ok := inv.grids[showtimeID]
	inv.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownShowtime, showtimeID)
	}
	return g, nil
}

func (inv *Inventory) Layout(showtimeID string) (Layout, error) {
	g, err := inv.grid(showtimeID)
	if err != nil {
		return Layout{}, err
	}
	return Layout{Rows: g.rows, Cols: g.cols}, nil
}

// IsAvailable is false for unknown showtimes, malformed seats and held seats.
func (inv *Inventory) IsAvailable(showtimeID, seatID string) bool {
	g, err := inv.grid(showtimeID)
	if err != nil {
		return false
	}
	s, err := ParseSeat(seatID, g.rows, g.cols)
	if err != nil {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.held[g.index(s)]
}

// Reserve holds every seat in seatIDs or none of them.
func (inv *Inventory) Reserve(showtimeID string, seatIDs []string) error {
	if len(seatIDs) == 0 {
		return fmt.Errorf("%w: no seats requested", ErrInvalidSeat)
	}
	g, err := inv.grid(showtimeID)
	if err != nil {
		return err
	}
	seats, err := g.parseAll(seatIDs)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, s := range seats {
		if g.held[g.index(s)] {
			return fmt.Errorf("%w: %s", ErrSeatHeld, s.Label())
		}
	}
	for _, s := range seats {
		g.held[g.index(s)] = true
	}

	inv.log.Debug("Seats reserved",
		zap.String("showtime_id", showtimeID),
		zap.Strings("seats", seatIDs),
	)
	return nil
}

// Release frees seats. Free, malformed or unknown seats are skipped.
func (inv *Inventory) Release(showtimeID string, seatIDs []string) {
	if len(seatIDs) == 0 {
		return
	}
	g, err := inv.grid(showtimeID)
	if err != nil {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, label := range seatIDs {
		s, err := ParseSeat(label, g.rows, g.cols)
		if err != nil {
			continue
		}
		g.held[g.index(s)] = false
	}

	inv.log.Debug("Seats released",
		zap.String("showtime_id", showtimeID),
		zap.Strings("seats", seatIDs),
	)
}

// AutoSelect returns the first quantity free seats in row-major order without
// holding them. The result is empty when fewer seats are free.
func (inv *Inventory) AutoSelect(showtimeID string, quantity int) []string {
	g, err := inv.grid(showtimeID)
	if err != nil || quantity < 1 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.firstFree(quantity)
}

// AutoReserve selects and holds the first quantity free seats in one step.
func (inv *Inventory) AutoReserve(showtimeID string, quantity int) ([]string, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidSeat)
	}
	g, err := inv.grid(showtimeID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	picked := g.firstFree(quantity)
	if picked == nil {
		return nil, fmt.Errorf("%w: %d requested", ErrInsufficientSeats, quantity)
	}
	for _, label := range picked {
		s, _ := ParseSeat(label, g.rows, g.cols)
		g.held[g.index(s)] = true
	}

	inv.log.Debug("Seats auto-reserved",
		zap.String("showtime_id", showtimeID),
		zap.Strings("seats", picked),
	)
	return picked, nil
}

// caller holds g.mu
func (g *grid) firstFree(quantity int) []string {
	picked := make([]string, 0, quantity)
	for i, held := range g.held {
		if held {
			continue
		}
		picked = append(picked, Seat{Row: i / g.cols, Col: i % g.cols}.Label())
		if len(picked) == quantity {
			return picked
		}
	}
	return nil
}

// Available lists up to limit free seats in row-major order; limit <= 0 lists all.
func (inv *Inventory) Available(showtimeID string, limit int) ([]string, error) {
	g, err := inv.grid(showtimeID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	out := []string{}
	for i, held := range g.held {
		if held {
			continue
		}
		out = append(out, Seat{Row: i / g.cols, Col: i % g.cols}.Label())
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Snapshot returns the seat map row by row.
func (inv *Inventory) Snapshot(showtimeID string) ([][]SeatState, error) {
	g, err := inv.grid(showtimeID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	rows := make([][]SeatState, g.rows)
	for r := range rows {
		rows[r] = make([]SeatState, g.cols)
		for c := range rows[r] {
			s := Seat{Row: r, Col: c}
			rows[r][c] = SeatState{Seat: s.Label(), Available: !g.held[g.index(s)]}
		}
	}
	return rows, nil
}

// Normalize upper-cases and trims seat labels so bookings store one spelling.
func Normalize(seatIDs []string) []string {
	out := make([]string, len(seatIDs))
	for i, s := range seatIDs {
		out[i] = strings.ToUpper(strings.TrimSpace(s))
	}
	return out
}
