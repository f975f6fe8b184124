package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/internal/dto/response"
	"cinema-ticketing/internal/event"
	"cinema-ticketing/internal/identity"
	"cinema-ticketing/internal/inventory"
	"cinema-ticketing/internal/payment"
	"cinema-ticketing/internal/pricing"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	Pay(ctx context.Context, userID, bookingID string, req *request.PayBookingRequest) (*response.PaymentResponse, error)
	CancelUnpaid(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)
	Refund(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)
	QuoteRefund(ctx context.Context, userID, bookingID string) (*response.RefundResponse, error)

	GetBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetTickets(ctx context.Context, userID, bookingID string) ([]response.TicketResponse, error)

	// Unpaid timeout
	ExpireUnpaid(ctx context.Context) (int, error)
	RunExpiry(ctx context.Context, interval time.Duration)
}

type bookingService struct {
	repo      *repository.Repository
	inventory *inventory.Inventory
	pricing   *pricing.Engine
	payment   *payment.Validator
	publisher event.Publisher
	digestKey []byte
	now       func() time.Time
	locks     *keyedMutex
	log       *zap.Logger
}

func NewBookingService(
	repo *repository.Repository,
	inv *inventory.Inventory,
	engine *pricing.Engine,
	validator *payment.Validator,
	publisher event.Publisher,
	digestKey []byte,
	now func() time.Time,
	log *zap.Logger,
) BookingService {
	return &bookingService{
		repo:      repo,
		inventory: inv,
		pricing:   engine,
		payment:   validator,
		publisher: publisher,
		digestKey: digestKey,
		now:       now,
		locks:     newKeyedMutex(),
		log:       log.With(zap.String("service", "booking")),
	}
}

// CreateBooking reserves seats and records an unpaid booking. Any failure after
// the reservation releases the seats it took.
func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}

	seatIDs := inventory.Normalize(req.SeatIDs)
	quantity := len(seatIDs)
	switch {
	case quantity == 0 && req.Quantity == 0:
		return nil, fmt.Errorf("%w: seat_ids or quantity is required", ErrValidation)
	case quantity > 0 && req.Quantity > 0 && req.Quantity != quantity:
		return nil, fmt.Errorf("%w: quantity %d does not match %d seats", ErrValidation, req.Quantity, quantity)
	case quantity == 0:
		quantity = req.Quantity
	}
	seen := make(map[string]bool, len(seatIDs))
	for _, id := range seatIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: seat %s listed twice", ErrValidation, id)
		}
		seen[id] = true
	}

	// Optional identity check, the number itself is never stored
	var digest string
	if req.NationalID != "" {
		if !identity.Validate(req.NationalID) {
			return nil, fmt.Errorf("%w: invalid national id", ErrValidation)
		}
		d, err := identity.Digest(req.NationalID, s.digestKey)
		if err != nil {
			return nil, fmt.Errorf("digest national id: %w", err)
		}
		digest = d
	}

	showtime, err := findShowtime(ctx, s.repo.Catalog, req.ShowtimeID)
	if err != nil {
		return nil, err
	}

	price, err := breakdown(s.pricing, showtime.BasePrice, quantity, req.TicketType, req.AddOn)
	if err != nil {
		return nil, err
	}

	// Reserve seats
	if len(seatIDs) > 0 {
		err = s.inventory.Reserve(showtime.ID, seatIDs)
	} else {
		seatIDs, err = s.inventory.AutoReserve(showtime.ID, quantity)
	}
	if err != nil {
		s.log.Warn("Seat reservation failed",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID),
			zap.Strings("seats", seatIDs),
		)
		return nil, inventoryError(err)
	}

	reserved := true
	defer func() {
		if reserved {
			s.inventory.Release(showtime.ID, seatIDs)
			s.log.Info("Reservation rolled back",
				zap.String("showtime_id", showtime.ID),
				zap.Strings("seats", seatIDs),
			)
		}
	}()

	// Apply discount
	now := s.now()
	total := price.subtotal
	code := strings.ToUpper(strings.TrimSpace(req.DiscountCode))
	if code != "" {
		dctx := discountContext(showtime, quantity, req.IsMember, digest != "", now)
		if !s.pricing.IsCodeApplicable(code, dctx) {
			return nil, fmt.Errorf("%w: discount code %s is not applicable", ErrValidation, code)
		}
		total = s.pricing.Apply(price.subtotal, code, dctx)
	}

	orderID, err := s.newOrderID(ctx, now)
	if err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:        orderID,
		UserID:         userID,
		ShowtimeID:     showtime.ID,
		SeatIDs:        seatIDs,
		TicketType:     price.ticketType,
		AddOn:          price.addOn,
		DiscountCode:   code,
		Subtotal:       price.subtotal,
		TotalPrice:     total,
		IdentityDigest: digest,
		Status:         entity.BookingStatusCreated,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("showtime_id", showtime.ID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}
	reserved = false

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("user_id", userID),
		zap.Strings("seats", seatIDs),
		zap.Int("total_price", total),
	)

	resp := s.buildBookingResponse(ctx, booking)
	return &resp, nil
}

// Pay validates the card and issues one ticket per seat. Paying a PAID booking
// again returns the tickets issued the first time.
func (s *bookingService) Pay(ctx context.Context, userID, bookingID string, req *request.PayBookingRequest) (*response.PaymentResponse, error) {
	if req == nil {
		req = &request.PayBookingRequest{}
	}

	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}
	out, release := s.lock(ctx, id)
	defer release()

	booking, err := s.ownedBooking(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case entity.BookingStatusPaid:
		s.log.Info("Booking already paid", zap.String("booking_id", bookingID))
		return s.buildPaymentResponse(ctx, booking)
	case entity.BookingStatusCreated:
	default:
		return nil, fmt.Errorf("%w: booking is %s, cannot pay", ErrConflict, booking.Status)
	}

	if err := s.payment.Validate(req.CardNumber, req.Expiry, req.CVV, booking.CreatedAt); err != nil {
		var perr *payment.Error
		if errors.As(err, &perr) && perr.Reason == payment.ReasonExpiredSession {
			s.log.Warn("Payment window elapsed", zap.String("booking_id", bookingID))
			return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		s.log.Warn("Payment rejected",
			zap.String("booking_id", bookingID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	now := s.now()
	tickets := make([]*entity.Ticket, len(booking.SeatIDs))
	for i, seat := range booking.SeatIDs {
		code, err := s.newTicketCode(ctx, booking.OrderID, seat)
		if err != nil {
			return nil, err
		}
		tickets[i] = &entity.Ticket{
			ID:        utils.GenerateULID(),
			BookingID: booking.ID,
			SeatID:    seat,
			Code:      code,
			IssuedAt:  now,
		}
	}
	if err := s.repo.Ticket.CreateBatch(ctx, tickets); err != nil {
		s.log.Error("Failed to issue tickets", zap.Error(err), zap.String("booking_id", bookingID))
		return nil, fmt.Errorf("issue tickets: %w", err)
	}

	if err := s.transition(ctx, booking, entity.BookingStatusPaid, now); err != nil {
		// An unpaid booking must not own tickets
		if derr := s.repo.Ticket.DeleteByBookingID(ctx, booking.ID); derr != nil {
			s.log.Error("Failed to withdraw tickets", zap.Error(derr), zap.String("booking_id", bookingID))
		}
		return nil, err
	}

	if showtime := s.lookupShowtime(ctx, booking.ShowtimeID); showtime != nil {
		if _, err := s.repo.Popularity.Increment(ctx, showtime.MovieID); err != nil {
			s.log.Warn("Failed to count paid booking", zap.Error(err), zap.String("movie_id", showtime.MovieID))
		}
	}

	s.log.Info("Booking paid",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
		zap.Int("tickets", len(tickets)),
		zap.Int("total_price", booking.TotalPrice),
	)
	out.add(s.newEvent(ctx, event.TypeBookingPaid, booking, tickets))

	return s.buildPaymentResponse(ctx, booking)
}

// CancelUnpaid releases the seats of an unpaid booking. Canceling a canceled
// booking is a no-op; paid bookings go through Refund.
func (s *bookingService) CancelUnpaid(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}
	out, release := s.lock(ctx, id)
	defer release()

	booking, err := s.ownedBooking(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if booking.Status != entity.BookingStatusCanceled {
		if err := s.cancel(ctx, booking, "user", out); err != nil {
			return nil, err
		}
	}

	resp := s.buildBookingResponse(ctx, booking)
	return &resp, nil
}

// caller holds the booking lock
func (s *bookingService) cancel(ctx context.Context, booking *entity.Booking, reason string, out *outbox) error {
	if booking.Status != entity.BookingStatusCreated {
		return fmt.Errorf("%w: booking is %s, only unpaid bookings can be canceled", ErrConflict, booking.Status)
	}

	if err := s.transition(ctx, booking, entity.BookingStatusCanceled, s.now()); err != nil {
		return err
	}
	s.inventory.Release(booking.ShowtimeID, booking.SeatIDs)

	s.log.Info("Booking canceled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("reason", reason),
		zap.Strings("seats", booking.SeatIDs),
	)
	out.add(s.newEvent(ctx, event.TypeBookingCanceled, booking, nil))
	return nil
}

// Refund returns a tiered share of the total and frees the seats. A refunded
// booking reports its stored amounts again without crediting twice.
func (s *bookingService) Refund(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}
	out, release := s.lock(ctx, id)
	defer release()

	booking, err := s.ownedBooking(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == entity.BookingStatusRefunded {
		resp := s.buildBookingResponse(ctx, booking)
		return &resp, nil
	}

	quote, err := s.refundQuote(ctx, booking)
	if err != nil {
		return nil, err
	}
	if quote.RatePercent == 0 {
		return nil, fmt.Errorf("%w: booking is non-refundable %d days before the show", ErrConflict, quote.DaysUntilShow)
	}

	booking.Refund = &entity.RefundRecord{
		DaysUntilShow: quote.DaysUntilShow,
		RatePercent:   quote.RatePercent,
		Amount:        quote.Amount,
		ServiceFee:    quote.ServiceFee,
		Net:           quote.Net,
	}
	if err := s.transition(ctx, booking, entity.BookingStatusRefunded, s.now()); err != nil {
		booking.Refund = nil
		return nil, err
	}
	s.inventory.Release(booking.ShowtimeID, booking.SeatIDs)

	s.log.Info("Booking refunded",
		zap.String("booking_id", bookingID),
		zap.String("order_id", booking.OrderID),
		zap.Int("days_until_show", quote.DaysUntilShow),
		zap.Int("rate_percent", quote.RatePercent),
		zap.Int("net_refund", quote.Net),
	)
	out.add(s.newEvent(ctx, event.TypeBookingRefunded, booking, nil))

	resp := s.buildBookingResponse(ctx, booking)
	return &resp, nil
}

// QuoteRefund previews Refund without changing the booking.
func (s *bookingService) QuoteRefund(ctx context.Context, userID, bookingID string) (*response.RefundResponse, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.ownedBooking(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == entity.BookingStatusRefunded && booking.Refund != nil {
		resp := response.RefundToResponse(*booking.Refund)
		return &resp, nil
	}

	quote, err := s.refundQuote(ctx, booking)
	if err != nil {
		return nil, err
	}
	return &response.RefundResponse{
		DaysUntilShow: quote.DaysUntilShow,
		RatePercent:   quote.RatePercent,
		Amount:        quote.Amount,
		ServiceFee:    quote.ServiceFee,
		Net:           quote.Net,
	}, nil
}

func (s *bookingService) refundQuote(ctx context.Context, booking *entity.Booking) (pricing.RefundQuote, error) {
	if booking.Status != entity.BookingStatusPaid {
		return pricing.RefundQuote{}, fmt.Errorf("%w: booking is %s, only paid bookings can be refunded", ErrConflict, booking.Status)
	}

	showtime, err := findShowtime(ctx, s.repo.Catalog, booking.ShowtimeID)
	if err != nil {
		return pricing.RefundQuote{}, err
	}

	days := pricing.DaysBetween(s.now(), showtime.StartsAt)
	return pricing.Refund(booking.TotalPrice, days), nil
}

// ExpireUnpaid cancels CREATED bookings whose payment window has elapsed.
func (s *bookingService) ExpireUnpaid(ctx context.Context) (int, error) {
	pending, err := s.repo.Booking.FindByStatus(ctx, entity.BookingStatusCreated)
	if err != nil {
		return 0, fmt.Errorf("find unpaid bookings: %w", err)
	}

	expired := 0
	for _, b := range pending {
		if !s.payment.Expired(b.CreatedAt) {
			continue
		}
		ok, err := s.expire(ctx, b.ID)
		if err != nil {
			s.log.Warn("Failed to expire booking", zap.Error(err), zap.String("booking_id", b.ID.String()))
			continue
		}
		if ok {
			expired++
		}
	}

	if expired > 0 {
		s.log.Info("Unpaid bookings expired", zap.Int("count", expired))
	}
	return expired, nil
}

func (s *bookingService) expire(ctx context.Context, id uuid.UUID) (bool, error) {
	out, release := s.lock(ctx, id)
	defer release()

	// Re-read under the lock; a payment may have landed in between.
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if booking == nil || booking.Status != entity.BookingStatusCreated {
		return false, nil
	}
	if err := s.cancel(ctx, booking, "payment timeout", out); err != nil {
		return false, err
	}
	return true, nil
}

// RunExpiry sweeps unpaid bookings every interval until ctx is done.
func (s *bookingService) RunExpiry(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("Expiry sweeper started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.ExpireUnpaid(ctx); err != nil {
				s.log.Error("Expiry sweep failed", zap.Error(err))
			}
		}
	}
}

// ==================== QUERIES ====================

func (s *bookingService) GetBooking(ctx context.Context, userID, bookingID string) (*response.BookingResponse, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.ownedBooking(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	resp := s.buildBookingResponse(ctx, booking)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = s.buildBookingResponse(ctx, booking)
	}

	s.log.Debug("User bookings retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(bookingResponses, req.Page, limit, total), nil
}

func (s *bookingService) GetTickets(ctx context.Context, userID, bookingID string) ([]response.TicketResponse, error) {
	id, err := parseBookingID(bookingID)
	if err != nil {
		return nil, err
	}

	booking, err := s.ownedBooking(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	tickets, err := s.repo.Ticket.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("find tickets: %w", err)
	}

	out := make([]response.TicketResponse, len(tickets))
	for i, t := range tickets {
		out[i] = response.TicketToResponse(t)
	}
	return out, nil
}

// ==================== HELPERS ====================

func parseBookingID(bookingID string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(bookingID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid booking id %q", ErrValidation, bookingID)
	}
	return id, nil
}

// ownedBooking hides bookings of other users behind ErrNotFound.
func (s *bookingService) ownedBooking(ctx context.Context, userID string, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil || booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	return booking, nil
}

// transition moves booking to next, stamps the matching timestamp and saves it.
func (s *bookingService) transition(ctx context.Context, booking *entity.Booking, next entity.BookingStatus, at time.Time) error {
	if !booking.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: booking cannot move from %s to %s", ErrConflict, booking.Status, next)
	}

	prev := booking.Clone()
	booking.Status = next
	booking.UpdatedAt = at
	switch next {
	case entity.BookingStatusPaid:
		booking.PaidAt = &at
	case entity.BookingStatusCanceled:
		booking.CanceledAt = &at
	case entity.BookingStatusRefunded:
		booking.RefundedAt = &at
	}

	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		*booking = *prev
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("status", next.String()),
		)
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// newOrderID retries on the rare collision of the random suffix.
func (s *bookingService) newOrderID(ctx context.Context, now time.Time) (string, error) {
	for range 5 {
		orderID := utils.GenerateOrderID(now)
		existing, err := s.repo.Booking.FindByOrderID(ctx, orderID)
		if err != nil {
			return "", fmt.Errorf("check order id: %w", err)
		}
		if existing == nil {
			return orderID, nil
		}
	}
	return "", fmt.Errorf("generate order id: too many collisions")
}

func (s *bookingService) newTicketCode(ctx context.Context, orderID, seatID string) (string, error) {
	for range 5 {
		code := utils.GenerateTicketCode(orderID, seatID)
		existing, err := s.repo.Ticket.FindByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check ticket code: %w", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("generate ticket code: too many collisions")
}

func inventoryError(err error) error {
	switch {
	case errors.Is(err, inventory.ErrUnknownShowtime):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, inventory.ErrInvalidSeat):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	case errors.Is(err, inventory.ErrSeatHeld), errors.Is(err, inventory.ErrInsufficientSeats):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return fmt.Errorf("reserve seats: %w", err)
	}
}

// outbox collects the events of one locked operation.
type outbox struct {
	events []event.BookingEvent
}

func (o *outbox) add(ev event.BookingEvent) {
	o.events = append(o.events, ev)
}

// lock takes the booking lock. The returned release drops it first and then
// publishes what was queued on the outbox.
func (s *bookingService) lock(ctx context.Context, id uuid.UUID) (*outbox, func()) {
	unlock := s.locks.Lock(id)
	out := &outbox{}
	return out, func() {
		unlock()
		for _, ev := range out.events {
			s.publish(ctx, ev)
		}
	}
}

// publish is best effort; the booking is already committed.
func (s *bookingService) publish(ctx context.Context, ev event.BookingEvent) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("type", ev.Type),
			zap.String("booking_id", ev.BookingID),
		)
	}
}

func (s *bookingService) newEvent(ctx context.Context, eventType string, booking *entity.Booking, tickets []*entity.Ticket) event.BookingEvent {
	ev := event.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID.String(),
		OrderID:    booking.OrderID,
		UserID:     booking.UserID,
		ShowtimeID: booking.ShowtimeID,
		Seats:      booking.SeatIDs,
		TotalPrice: booking.TotalPrice,
		OccurredAt: s.now().UTC().Format(time.RFC3339),
	}
	if showtime := s.lookupShowtime(ctx, booking.ShowtimeID); showtime != nil {
		ev.MovieID = showtime.MovieID
	}
	if booking.Refund != nil {
		ev.NetRefund = booking.Refund.Net
	}
	for _, t := range tickets {
		ev.TicketCodes = append(ev.TicketCodes, t.Code)
	}
	return ev
}

func (s *bookingService) lookupShowtime(ctx context.Context, showtimeID string) *entity.Showtime {
	return lookup(ctx, s.log, "showtime", showtimeID, s.repo.Catalog.FindShowtime)
}

func (s *bookingService) buildBookingResponse(ctx context.Context, booking *entity.Booking) response.BookingResponse {
	return describeBooking(ctx, s.repo.Catalog, booking, s.log)
}

func (s *bookingService) buildPaymentResponse(ctx context.Context, booking *entity.Booking) (*response.PaymentResponse, error) {
	tickets, err := s.repo.Ticket.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("find tickets: %w", err)
	}

	ticketResponses := make([]response.TicketResponse, len(tickets))
	for i, t := range tickets {
		ticketResponses[i] = response.TicketToResponse(t)
	}

	return &response.PaymentResponse{
		Booking: s.buildBookingResponse(ctx, booking),
		Tickets: ticketResponses,
	}, nil
}
