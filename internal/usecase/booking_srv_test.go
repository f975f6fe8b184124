package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/event"
	"cinema-ticketing/internal/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) create(t *testing.T, userID string, req request.CreateBookingRequest) *response.BookingResponse {
	t.Helper()
	b, err := f.svc.Booking.CreateBooking(context.Background(), userID, &req)
	require.NoError(t, err)
	return b
}

func (f *fixture) pay(t *testing.T, userID, bookingID string) *response.PaymentResponse {
	t.Helper()
	p, err := f.svc.Booking.Pay(context.Background(), userID, bookingID, &request.PayBookingRequest{
		CardNumber: validCard,
		Expiry:     validExpiry,
		CVV:        validCVV,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) available(showtimeID string, seats ...string) bool {
	for _, s := range seats {
		if !f.svc.Inventory.IsAvailable(showtimeID, s) {
			return false
		}
	}
	return true
}

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture(t)

	b := f.create(t, "u1", request.CreateBookingRequest{
		ShowtimeID: "S1",
		SeatIDs:    []string{"a1", "A2"},
	})

	assert.Equal(t, entity.BookingStatusCreated, b.Status)
	assert.Equal(t, []string{"A1", "A2"}, b.SeatIDs)
	assert.Equal(t, entity.TicketTypeStandard, b.TicketType)
	assert.Equal(t, entity.AddOnNone, b.AddOn)
	assert.Equal(t, 700, b.Subtotal)
	assert.Equal(t, 700, b.TotalPrice)
	assert.Equal(t, "Interstellar", b.MovieTitle)
	assert.True(t, strings.HasPrefix(b.OrderID, "BOOK-20261015-"))
	assert.False(t, b.Verified)
	assert.False(t, f.svc.Inventory.IsAvailable("S1", "A1"))
	assert.False(t, f.svc.Inventory.IsAvailable("S1", "A2"))
	assert.True(t, f.svc.Inventory.IsAvailable("S1", "A3"))
}

func TestCreateBooking_Pricing(t *testing.T) {
	tests := []struct {
		name      string
		req       request.CreateBookingRequest
		wantSub   int
		wantTotal int
	}{
		{
			name:      "student ticket with popcorn set",
			req:       request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1", "A2"}, TicketType: "student", AddOn: "POPCORN_COLA"},
			wantSub:   298*2 + 120,
			wantTotal: 298*2 + 120,
		},
		{
			name:      "early bird ticket with couple set",
			req:       request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"B1"}, TicketType: "EARLY_BIRD", AddOn: "COUPLE_SET"},
			wantSub:   280 + 220,
			wantTotal: 500,
		},
		{
			name:      "early bird code a week ahead",
			req:       request.CreateBookingRequest{ShowtimeID: "S7", SeatIDs: []string{"A1"}, DiscountCode: "early20"},
			wantSub:   300,
			wantTotal: 240,
		},
		{
			name:      "student code with verified identity",
			req:       request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}, DiscountCode: "STUDENT15", NationalID: validID},
			wantSub:   350,
			wantTotal: 298,
		},
		{
			name:      "member code",
			req:       request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}, DiscountCode: "MEMBER5", IsMember: true},
			wantSub:   350,
			wantTotal: 333,
		},
		{
			name:      "group code for ten seats",
			req:       request.CreateBookingRequest{ShowtimeID: "S1", Quantity: 10, DiscountCode: "GROUP10"},
			wantSub:   3500,
			wantTotal: 3150,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			b := f.create(t, "u1", tt.req)
			assert.Equal(t, tt.wantSub, b.Subtotal)
			assert.Equal(t, tt.wantTotal, b.TotalPrice)
		})
	}
}

func TestCreateBooking_AutoReserve(t *testing.T) {
	f := newFixture(t)
	f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A2"}})

	b := f.create(t, "u2", request.CreateBookingRequest{ShowtimeID: "S1", Quantity: 3})
	assert.Equal(t, []string{"A1", "A3", "A4"}, b.SeatIDs)
	assert.False(t, f.available("S1", "A1"))

	_, err := f.svc.Booking.CreateBooking(context.Background(), "u3", &request.CreateBookingRequest{ShowtimeID: "S1", Quantity: 17})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateBooking_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		req     request.CreateBookingRequest
		wantErr error
	}{
		{"missing showtime id", "u1", request.CreateBookingRequest{SeatIDs: []string{"A1"}}, ErrValidation},
		{"missing user", "", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}}, ErrValidation},
		{"no seats", "u1", request.CreateBookingRequest{ShowtimeID: "S1"}, ErrValidation},
		{"duplicate seats", "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1", "a1"}}, ErrValidation},
		{"quantity mismatch", "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}, Quantity: 2}, ErrValidation},
		{"seat off the grid", "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"C1"}}, ErrValidation},
		{"unknown ticket type", "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}, TicketType: "SENIOR"}, ErrValidation},
		{"unknown add-on", "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}, AddOn: "NACHOS"}, ErrValidation},
		{"invalid national id", "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}, NationalID: "A123456788"}, ErrValidation},
		{"unknown discount code", "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}, DiscountCode: "OFF50"}, ErrValidation},
		{"student code without identity", "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}, DiscountCode: "STUDENT15"}, ErrValidation},
		{"early bird code on the day", "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}, DiscountCode: "EARLY20"}, ErrValidation},
		{"unknown showtime", "u1", request.CreateBookingRequest{ShowtimeID: "S404", SeatIDs: []string{"A1"}}, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Booking.CreateBooking(context.Background(), tt.userID, &tt.req)
			require.ErrorIs(t, err, tt.wantErr)

			assert.True(t, f.available("S1", "A1"), "seat must stay free after a rejected create")
			n, _ := f.repo.Booking.CountByUserID(context.Background(), tt.userID)
			assert.Zero(t, n)
		})
	}
}

func TestCreateBooking_AtomicReservation(t *testing.T) {
	f := newFixture(t)
	f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A2"}})

	_, err := f.svc.Booking.CreateBooking(context.Background(), "u2", &request.CreateBookingRequest{
		ShowtimeID: "S1",
		SeatIDs:    []string{"A1", "A2"},
	})
	require.ErrorIs(t, err, ErrConflict)
	assert.True(t, f.available("S1", "A1"))
}

func TestCreateBooking_DiscountGatingRollsBack(t *testing.T) {
	f := newFixture(t)
	seats := []string{"A1", "A2", "A3", "A4", "A5"}

	_, err := f.svc.Booking.CreateBooking(context.Background(), "u1", &request.CreateBookingRequest{
		ShowtimeID:   "S1",
		SeatIDs:      seats,
		DiscountCode: "GROUP10",
	})
	require.ErrorIs(t, err, ErrValidation)
	assert.True(t, f.available("S1", seats...))

	// Without the code the same order goes through at full price.
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: seats})
	assert.Equal(t, 1750, b.TotalPrice)
}

func TestCreateBooking_ConcurrentSameSeat(t *testing.T) {
	f := newFixture(t)

	const callers = 32
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Booking.CreateBooking(context.Background(), fmt.Sprintf("u%d", i), &request.CreateBookingRequest{
				ShowtimeID: "S1",
				SeatIDs:    []string{"B5"},
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, ErrConflict)
	}
	assert.Equal(t, 1, wins)

	held, err := f.repo.Booking.FindByShowtimeID(context.Background(), "S1")
	require.NoError(t, err)
	assert.Len(t, held, 1)
}

func TestCreateBooking_StoresIdentityDigestOnly(t *testing.T) {
	f := newFixture(t)

	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}, NationalID: " a123456789 "})
	assert.True(t, b.Verified)

	stored, err := f.repo.Booking.FindByOrderID(context.Background(), b.OrderID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.IdentityDigest, 64)
	assert.NotContains(t, stored.IdentityDigest, validID)
}

func TestPay_IssuesTicketsOnce(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1", "A2"}})

	first := f.pay(t, "u1", b.ID)
	assert.Equal(t, entity.BookingStatusPaid, first.Booking.Status)
	require.NotNil(t, first.Booking.PaidAt)
	require.Len(t, first.Tickets, 2)
	for _, tk := range first.Tickets {
		assert.True(t, strings.HasPrefix(tk.Code, "ETK-"+b.OrderID+"-"+tk.SeatID+"-"))
		assert.Len(t, tk.ID, 26)
	}

	second := f.pay(t, "u1", b.ID)
	assert.Equal(t, first.Tickets, second.Tickets)

	tickets, err := f.svc.Booking.GetTickets(context.Background(), "u1", b.ID)
	require.NoError(t, err)
	assert.Len(t, tickets, 2)

	paid := f.pub.ofType(event.TypeBookingPaid)
	require.Len(t, paid, 1)
	assert.Equal(t, "M1", paid[0].MovieID)
	assert.Len(t, paid[0].TicketCodes, 2)

	count, err := f.repo.Popularity.Count(context.Background(), "M1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPay_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		req        request.PayBookingRequest
		wantErr    error
		wantReason payment.Reason
	}{
		{"bad luhn", request.PayBookingRequest{CardNumber: "4111111111111112", Expiry: validExpiry, CVV: validCVV}, ErrValidation, payment.ReasonInvalidCard},
		{"expired card", request.PayBookingRequest{CardNumber: validCard, Expiry: "2026-09", CVV: validCVV}, ErrValidation, payment.ReasonInvalidExpiry},
		{"short cvv", request.PayBookingRequest{CardNumber: validCard, Expiry: validExpiry, CVV: "12"}, ErrValidation, payment.ReasonInvalidCVV},
		{"long cvv", request.PayBookingRequest{CardNumber: validCard, Expiry: validExpiry, CVV: "12345"}, ErrValidation, payment.ReasonInvalidCVV},
		{"one digit month", request.PayBookingRequest{CardNumber: validCard, Expiry: "2030-1", CVV: validCVV}, ErrValidation, payment.ReasonInvalidExpiry},
		{"empty card", request.PayBookingRequest{Expiry: validExpiry, CVV: validCVV}, ErrValidation, payment.ReasonInvalidCard},
		{"empty body", request.PayBookingRequest{}, ErrValidation, payment.ReasonInvalidCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}})

			_, err := f.svc.Booking.Pay(context.Background(), "u1", b.ID, &tt.req)
			require.ErrorIs(t, err, tt.wantErr)

			var perr *payment.Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantReason, perr.Reason)

			got, err := f.svc.Booking.GetBooking(context.Background(), "u1", b.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.BookingStatusCreated, got.Status)
			assert.False(t, f.available("S1", "A1"))
		})
	}
}

func TestPay_WindowElapsed(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}})

	f.clock.Advance(91 * time.Second)

	_, err := f.svc.Booking.Pay(context.Background(), "u1", b.ID, &request.PayBookingRequest{
		CardNumber: validCard, Expiry: validExpiry, CVV: validCVV,
	})
	require.ErrorIs(t, err, ErrTimeout)

	var perr *payment.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, payment.ReasonExpiredSession, perr.Reason)

	got, err := f.svc.Booking.GetBooking(context.Background(), "u1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCreated, got.Status)
}

func TestPay_WindowCheckedBeforeCardFields(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}})

	f.clock.Advance(91 * time.Second)

	_, err := f.svc.Booking.Pay(context.Background(), "u1", b.ID, &request.PayBookingRequest{
		CardNumber: validCard, Expiry: validExpiry, CVV: "12345",
	})
	require.ErrorIs(t, err, ErrTimeout)
	assert.NotErrorIs(t, err, ErrValidation)

	var perr *payment.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, payment.ReasonExpiredSession, perr.Reason)
}

func TestPay_RepeatNeedsNoCard(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}})
	first := f.pay(t, "u1", b.ID)

	again, err := f.svc.Booking.Pay(context.Background(), "u1", b.ID, &request.PayBookingRequest{})
	require.NoError(t, err)
	assert.Equal(t, first.Tickets, again.Tickets)

	again, err = f.svc.Booking.Pay(context.Background(), "u1", b.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPaid, again.Booking.Status)
}

// failingUpdates rejects every status change after the booking is created.
type failingUpdates struct {
	repository.BookingRepository
}

func (failingUpdates) Update(context.Context, *entity.Booking) error {
	return errors.New("disk full")
}

func TestPay_FailedTransitionWithdrawsTickets(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1", "A2"}})
	f.repo.Booking = failingUpdates{BookingRepository: f.repo.Booking}

	_, err := f.svc.Booking.Pay(context.Background(), "u1", b.ID, &request.PayBookingRequest{
		CardNumber: validCard, Expiry: validExpiry, CVV: validCVV,
	})
	require.Error(t, err)

	got, err := f.svc.Booking.GetBooking(context.Background(), "u1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCreated, got.Status)

	tickets, err := f.svc.Booking.GetTickets(context.Background(), "u1", b.ID)
	require.NoError(t, err)
	assert.Empty(t, tickets)
	assert.Empty(t, f.pub.ofType(event.TypeBookingPaid))
}

func TestPay_PublishesAfterReleasingBooking(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}})

	// A second Pay on the same booking needs its lock; it must not wait on the
	// first Pay's event delivery.
	var reentered bool
	f.pub.onPublish = func(ev event.BookingEvent) {
		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = f.svc.Booking.Pay(context.Background(), "u1", ev.BookingID, nil)
		}()
		select {
		case <-done:
			reentered = true
		case <-time.After(time.Second):
		}
	}

	f.pay(t, "u1", b.ID)
	assert.True(t, reentered, "booking lock was still held while publishing")
}

func TestPay_StateAndOwnership(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}})
	req := &request.PayBookingRequest{CardNumber: validCard, Expiry: validExpiry, CVV: validCVV}

	_, err := f.svc.Booking.Pay(context.Background(), "u2", b.ID, req)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.Booking.Pay(context.Background(), "u1", "not-a-uuid", req)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Booking.CancelUnpaid(context.Background(), "u1", b.ID)
	require.NoError(t, err)

	_, err = f.svc.Booking.Pay(context.Background(), "u1", b.ID, req)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCancelUnpaid_RoundTrip(t *testing.T) {
	f := newFixture(t)
	seats := []string{"A1", "A2", "B3"}
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: seats})
	require.False(t, f.available("S1", "A1"))

	canceled, err := f.svc.Booking.CancelUnpaid(context.Background(), "u1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCanceled, canceled.Status)
	assert.NotNil(t, canceled.CanceledAt)
	assert.Equal(t, seats, canceled.SeatIDs)
	assert.True(t, f.available("S1", seats...))

	again, err := f.svc.Booking.CancelUnpaid(context.Background(), "u1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCanceled, again.Status)
	assert.Len(t, f.pub.ofType(event.TypeBookingCanceled), 1)
}

func TestCancelUnpaid_PaidBookingConflicts(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}})
	f.pay(t, "u1", b.ID)

	_, err := f.svc.Booking.CancelUnpaid(context.Background(), "u1", b.ID)
	require.ErrorIs(t, err, ErrConflict)
	assert.False(t, f.available("S1", "A1"))
}

func TestRefund_Tiers(t *testing.T) {
	tests := []struct {
		showtimeID string
		want       response.RefundResponse
	}{
		{"S7", response.RefundResponse{DaysUntilShow: 8, RatePercent: 100, Amount: 300, ServiceFee: 30, Net: 270}},
		{"S5", response.RefundResponse{DaysUntilShow: 5, RatePercent: 80, Amount: 240, ServiceFee: 24, Net: 216}},
		{"S2", response.RefundResponse{DaysUntilShow: 2, RatePercent: 50, Amount: 150, ServiceFee: 15, Net: 135}},
	}

	for _, tt := range tests {
		t.Run(tt.showtimeID, func(t *testing.T) {
			f := newFixture(t)
			b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: tt.showtimeID, SeatIDs: []string{"A1"}})
			f.pay(t, "u1", b.ID)

			quote, err := f.svc.Booking.QuoteRefund(context.Background(), "u1", b.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *quote)

			refunded, err := f.svc.Booking.Refund(context.Background(), "u1", b.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.BookingStatusRefunded, refunded.Status)
			require.NotNil(t, refunded.Refund)
			assert.Equal(t, tt.want, *refunded.Refund)
			assert.True(t, f.available(tt.showtimeID, "A1"))

			// Second refund reports the same amounts and credits nothing new.
			f.clock.Advance(24 * time.Hour)
			again, err := f.svc.Booking.Refund(context.Background(), "u1", b.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *again.Refund)

			events := f.pub.ofType(event.TypeBookingRefunded)
			require.Len(t, events, 1)
			assert.Equal(t, tt.want.Net, events[0].NetRefund)
		})
	}
}

func TestRefund_SameDayIsNonRefundable(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}})
	f.pay(t, "u1", b.ID)

	quote, err := f.svc.Booking.QuoteRefund(context.Background(), "u1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, response.RefundResponse{}, *quote)

	_, err = f.svc.Booking.Refund(context.Background(), "u1", b.ID)
	require.ErrorIs(t, err, ErrConflict)

	got, err := f.svc.Booking.GetBooking(context.Background(), "u1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPaid, got.Status)
	assert.False(t, f.available("S1", "A1"))
}

func TestRefund_RequiresPaid(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S7", SeatIDs: []string{"A1"}})

	_, err := f.svc.Booking.Refund(context.Background(), "u1", b.ID)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.svc.Booking.CancelUnpaid(context.Background(), "u1", b.ID)
	require.NoError(t, err)

	_, err = f.svc.Booking.Refund(context.Background(), "u1", b.ID)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = f.svc.Booking.QuoteRefund(context.Background(), "u1", b.ID)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestExpireUnpaid(t *testing.T) {
	f := newFixture(t)
	unpaid := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}})
	paid := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A2"}})
	f.pay(t, "u1", paid.ID)

	n, err := f.svc.Booking.ExpireUnpaid(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	f.clock.Advance(91 * time.Second)
	fresh := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A3"}})

	n, err = f.svc.Booking.ExpireUnpaid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.svc.Booking.GetBooking(context.Background(), "u1", unpaid.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCanceled, got.Status)
	assert.True(t, f.available("S1", "A1"))
	assert.False(t, f.available("S1", "A2", "A3"))

	got, err = f.svc.Booking.GetBooking(context.Background(), "u1", fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCreated, got.Status)
}

func TestRunExpiry(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A1"}})
	f.clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.svc.Booking.RunExpiry(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		got, err := f.svc.Booking.GetBooking(context.Background(), "u1", b.ID)
		return err == nil && got.Status == entity.BookingStatusCanceled
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunExpiry did not stop after cancel")
	}
}

func TestGetUserBookings_Pagination(t *testing.T) {
	f := newFixture(t)

	var orders []string
	for _, seat := range []string{"A1", "A2", "A3"} {
		b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{seat}})
		orders = append(orders, b.OrderID)
		f.clock.Advance(time.Second)
	}
	f.create(t, "u2", request.CreateBookingRequest{ShowtimeID: "S1", SeatIDs: []string{"A4"}})

	page1, err := f.svc.Booking.GetUserBookings(context.Background(), "u1", &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page1.Pagination.Total)
	assert.Equal(t, 2, page1.Pagination.TotalPages)
	require.Len(t, page1.Data, 2)
	assert.Equal(t, orders[2], page1.Data[0].OrderID)
	assert.Equal(t, orders[1], page1.Data[1].OrderID)

	page2, err := f.svc.Booking.GetUserBookings(context.Background(), "u1", &request.PaginatedRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, page2.Data, 1)
	assert.Equal(t, orders[0], page2.Data[0].OrderID)

	_, err = f.svc.Booking.GetBooking(context.Background(), "u2", page1.Data[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingOperations_SerializedPerBooking(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, "u1", request.CreateBookingRequest{ShowtimeID: "S7", SeatIDs: []string{"A1", "A2"}})
	f.pay(t, "u1", b.ID)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.svc.Booking.Refund(context.Background(), "u1", b.ID)
		}()
	}
	wg.Wait()

	assert.Len(t, f.pub.ofType(event.TypeBookingRefunded), 1)
	assert.True(t, f.available("S7", "A1", "A2"))
}
