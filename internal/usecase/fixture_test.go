package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/event"
	"cinema-ticketing/internal/pricing"
	"cinema-ticketing/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// 10:00 so that a showtime a few hours out is still the same calendar day.
var testNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

const (
	validCard   = "4111 1111 1111 1111"
	validExpiry = "2030-12"
	validCVV    = "123"
	validID     = "A123456789"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.BookingEvent

	// onPublish runs before the event is recorded
	onPublish func(event.BookingEvent)
}

func (p *recordingPublisher) Publish(_ context.Context, ev event.BookingEvent) error {
	if p.onPublish != nil {
		p.onPublish(ev)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) ofType(eventType string) []event.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	var out []event.BookingEvent
	for _, ev := range p.events {
		if ev.Type == eventType {
			out = append(out, ev)
		}
	}
	return out
}

type fixture struct {
	svc   *Service
	repo  *repository.Repository
	clock *fakeClock
	pub   *recordingPublisher
}

// testCatalog covers every refund tier relative to testNow.
func testCatalog() entity.Catalog {
	return entity.Catalog{
		Movies: []entity.Movie{
			{ID: "M1", Title: "Interstellar", Rating: 8.7, Rated: "PG-13"},
			{ID: "M2", Title: "Spirited Away", Rating: 8.6, Rated: "G"},
			{ID: "M3", Title: "Avengers", Rating: 8.0, Rated: "PG-13"},
		},
		Theaters: []entity.Theater{
			{ID: "T1", Name: "Taipei Xinyi Cinema", X: 10, Y: 10},
			{ID: "T2", Name: "New Taipei Banqiao Cinema", X: 20, Y: 8, SeatRows: 3, SeatCols: 4},
			{ID: "T3", Name: "Taoyuan Zhongli Cinema", X: 35, Y: 12},
		},
		Showtimes: []entity.Showtime{
			{ID: "S1", MovieID: "M1", TheaterID: "T1", StartsAt: testNow.Add(3 * time.Hour), BasePrice: 350},
			{ID: "S2", MovieID: "M2", TheaterID: "T1", StartsAt: testNow.Add(2 * 24 * time.Hour), BasePrice: 300},
			{ID: "S5", MovieID: "M2", TheaterID: "T2", StartsAt: testNow.Add(5 * 24 * time.Hour), BasePrice: 300},
			{ID: "S7", MovieID: "M1", TheaterID: "T3", StartsAt: testNow.Add(8 * 24 * time.Hour), BasePrice: 300},
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := zap.NewNop()
	repo, err := repository.NewRepository(testCatalog(), log)
	require.NoError(t, err)

	engine, err := pricing.NewEngine(pricing.DefaultConfig())
	require.NoError(t, err)

	clock := &fakeClock{now: testNow}
	pub := &recordingPublisher{}

	svc, err := NewService(Dependencies{
		Repo:      repo,
		Pricing:   engine,
		Publisher: pub,
		Config: utils.BookingConfig{
			SeatRows:       2,
			SeatCols:       10,
			PaymentTimeout: 90 * time.Second,
			IDDigestKey:    "test-key",
		},
		Clock: clock.Now,
		Log:   log,
	})
	require.NoError(t, err)

	return &fixture{svc: svc, repo: repo, clock: clock, pub: pub}
}
