package item

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"shareit/internal/domain"
	"shareit/internal/pkg/apperr"
)

type Service struct {
	items    ItemRepository
	users    UserRepository
	requests RequestRepository
	bookings BookingRepository
	comments CommentRepository
	log      *zerolog.Logger
}

func NewService(
	items ItemRepository,
	users UserRepository,
	requests RequestRepository,
	bookings BookingRepository,
	comments CommentRepository,
	log *zerolog.Logger,
) *Service {
	return &Service{
		items:    items,
		users:    users,
		requests: requests,
		bookings: bookings,
		comments: comments,
		log:      log,
	}
}

func (s *Service) Add(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user not found")
	}
	if req.RequestID != nil {
		request, err := s.requests.GetByID(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if request == nil {
			return nil, apperr.NotFound("item request not found")
		}
	}

	i := &domain.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.items.Create(ctx, i); err != nil {
		return nil, err
	}
	s.log.Debug().Int64("item_id", i.ID).Int64("owner_id", ownerID).Msg("item created")

	resp := toItemResponse(*i)
	return &resp, nil
}

// Update applies a nullable patch. Non-owners get not-found rather than
// forbidden, matching the long-standing behavior of this endpoint.
func (s *Service) Update(ctx context.Context, actorID, itemID int64, req UpdateItemRequest) (*ItemResponse, error) {
	exists, err := s.users.Exists(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user not found")
	}

	i, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, apperr.NotFound("item not found")
	}
	if i.OwnerID != actorID {
		return nil, apperr.NotFound("item does not belong to the user")
	}

	if req.Name != nil {
		i.Name = *req.Name
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}
	if err := s.items.Update(ctx, i); err != nil {
		return nil, err
	}

	resp := toItemResponse(*i)
	return &resp, nil
}

// Get returns the item view with comments. Booking dates are computed
// only when the viewer owns the item; everyone else gets them absent.
func (s *Service) Get(ctx context.Context, actorID, itemID int64) (*ItemWithBookingsResponse, error) {
	exists, err := s.users.Exists(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user not found")
	}

	i, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, apperr.NotFound("item not found")
	}

	var last, next *time.Time
	if i.OwnerID == actorID {
		dates, err := s.bookings.DatesByItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		last, next = reduceBookingDates(dates, time.Now())
	}

	comments, err := s.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	resp := toItemWithBookings(*i, last, next, comments)
	return &resp, nil
}

// ListByOwner returns all of the owner's items, annotated with booking
// dates. Bookings and comments are fetched once for all items and
// grouped by item id.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]ItemWithBookingsResponse, error) {
	exists, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user not found")
	}

	items, err := s.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dates, err := s.bookings.DatesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	datesByItem := make(map[int64][]domain.BookingDates)
	for _, d := range dates {
		datesByItem[d.ItemID] = append(datesByItem[d.ItemID], d)
	}

	itemIDs := make([]int64, 0, len(items))
	for _, i := range items {
		itemIDs = append(itemIDs, i.ID)
	}
	comments, err := s.comments.ListByItems(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem := make(map[int64][]domain.Comment)
	for _, c := range comments {
		commentsByItem[c.ItemID] = append(commentsByItem[c.ItemID], c)
	}

	now := time.Now()
	out := make([]ItemWithBookingsResponse, 0, len(items))
	for _, i := range items {
		last, next := reduceBookingDates(datesByItem[i.ID], now)
		out = append(out, toItemWithBookings(i, last, next, commentsByItem[i.ID]))
	}
	return out, nil
}

// Search returns available items matching the text. Blank text yields
// an empty list without touching the store.
func (s *Service) Search(ctx context.Context, text string) ([]ItemResponse, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemResponse{}, nil
	}
	items, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toItemResponse(i))
	}
	return out, nil
}

// AddComment permits a comment only from a user with an APPROVED
// booking of the item that has already ended.
func (s *Service) AddComment(ctx context.Context, authorID, itemID int64, req CreateCommentRequest) (*CommentResponse, error) {
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFound("user not found")
	}

	i, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, apperr.NotFound("item not found")
	}

	now := time.Now()
	eligible, err := s.bookings.ExistsApprovedPast(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, apperr.Validation("user has no completed approved booking of this item")
	}

	comment := &domain.Comment{
		Text:       req.Text,
		ItemID:     itemID,
		AuthorID:   authorID,
		Created:    now,
		AuthorName: author.Name,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.log.Debug().Int64("comment_id", comment.ID).Int64("item_id", itemID).Msg("comment created")

	resp := toCommentResponse(*comment)
	return &resp, nil
}

// reduceBookingDates scans intervals sorted ascending by start.
// lastBooking is the latest end before now, so the scan keeps updating
// it; nextBooking is the first start after now, so the scan stops
// there. An interval containing now contributes to neither.
func reduceBookingDates(dates []domain.BookingDates, now time.Time) (last, next *time.Time) {
	for _, d := range dates {
		if d.End.Before(now) {
			end := d.End
			last = &end
		} else if d.Start.After(now) {
			start := d.Start
			next = &start
			break
		}
	}
	return last, next
}
