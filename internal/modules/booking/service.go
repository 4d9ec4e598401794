package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/pkg/apperr"
)

type Service struct {
	bookings BookingRepository
	users    UserRepository
	items    ItemRepository
	log      *zerolog.Logger
}

func NewService(bookings BookingRepository, users UserRepository, items ItemRepository, log *zerolog.Logger) *Service {
	return &Service{
		bookings: bookings,
		users:    users,
		items:    items,
		log:      log,
	}
}

// Create books an item for the requester. The item must exist and be
// available; date-range shape is the gateway's concern. The availability
// flag is not flipped, so overlapping bookings of one item stay
// possible.
func (s *Service) Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingResponse, error) {
	user, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	item, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperr.NotFound("item not found")
	}
	if !item.Available {
		return nil, apperr.Validation("item is not available for booking")
	}

	b := &domain.Booking{
		Start:    req.Start,
		End:      req.End,
		ItemID:   item.ID,
		BookerID: user.ID,
		Status:   domain.BookingWaiting,
		Item:     *item,
		Booker:   *user,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	s.log.Debug().Int64("booking_id", b.ID).Int64("item_id", item.ID).Int64("booker_id", user.ID).Msg("booking created")

	resp := toBookingResponse(*b)
	return &resp, nil
}

// Decide approves or rejects a WAITING booking. Only the item owner may
// decide, and only once: the status flip is conditional on the booking
// still being WAITING, so a concurrent second decision fails.
func (s *Service) Decide(ctx context.Context, actorID, bookingID int64, approve bool) (*BookingResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if b.Item.OwnerID != actorID {
		return nil, apperr.Forbidden("only the item owner may decide on a booking")
	}
	if b.Status != domain.BookingWaiting {
		return nil, apperr.Forbidden("booking status must be WAITING to decide on it")
	}

	status := domain.BookingRejected
	if approve {
		status = domain.BookingApproved
	}

	updated, err := s.bookings.UpdateStatusIfWaiting(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost the race against a concurrent decision.
		return nil, apperr.Forbidden("booking status must be WAITING to decide on it")
	}
	s.log.Debug().Int64("booking_id", bookingID).Str("status", string(status)).Msg("booking decided")

	b.Status = status
	resp := toBookingResponse(*b)
	return &resp, nil
}

// Get returns the booking view to its booker or the item owner.
func (s *Service) Get(ctx context.Context, actorID, bookingID int64) (*BookingResponse, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFound("booking not found")
	}
	if b.BookerID != actorID && b.Item.OwnerID != actorID {
		return nil, apperr.Forbidden("only the booker or the item owner may view a booking")
	}
	resp := toBookingResponse(*b)
	return &resp, nil
}

func (s *Service) ListForBooker(ctx context.Context, bookerID int64, state domain.BookingState) ([]BookingResponse, error) {
	exists, err := s.users.Exists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user not found")
	}
	bookings, err := s.bookings.ListByBooker(ctx, bookerID, state, time.Now())
	if err != nil {
		return nil, err
	}
	return toBookingResponses(bookings), nil
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64, state domain.BookingState) ([]BookingResponse, error) {
	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user not found")
	}
	bookings, err := s.bookings.ListByOwner(ctx, ownerID, state, time.Now())
	if err != nil {
		return nil, err
	}
	return toBookingResponses(bookings), nil
}
