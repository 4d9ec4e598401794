package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	StartDate time.Time `gorm:"column:start_date;index"`
	EndDate   time.Time `gorm:"column:end_date"`
	ItemID    int64     `gorm:"column:item_id;index"`
	BookerID  int64     `gorm:"column:booker_id;index"`
	Status    string    `gorm:"column:status;index"`
}

func (bookingModel) TableName() string { return "bookings" }

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:        b.ID,
		StartDate: b.Start,
		EndDate:   b.End,
		ItemID:    b.ItemID,
		BookerID:  b.BookerID,
		Status:    string(b.Status),
	}
}

// stateScope builds the WHERE clause for one listing state. Keyed by
// the state tag so both list operations share a single dispatch table.
type stateScope func(now time.Time) func(*gorm.DB) *gorm.DB

var stateScopes = map[domain.BookingState]stateScope{
	domain.StateAll: func(time.Time) func(*gorm.DB) *gorm.DB {
		return func(q *gorm.DB) *gorm.DB { return q }
	},
	domain.StateCurrent: func(now time.Time) func(*gorm.DB) *gorm.DB {
		return func(q *gorm.DB) *gorm.DB {
			return q.Where("bookings.start_date <= ? AND bookings.end_date >= ?", now, now)
		}
	},
	domain.StatePast: func(now time.Time) func(*gorm.DB) *gorm.DB {
		return func(q *gorm.DB) *gorm.DB { return q.Where("bookings.end_date < ?", now) }
	},
	domain.StateFuture: func(now time.Time) func(*gorm.DB) *gorm.DB {
		return func(q *gorm.DB) *gorm.DB { return q.Where("bookings.start_date > ?", now) }
	},
	domain.StateWaiting: func(time.Time) func(*gorm.DB) *gorm.DB {
		return func(q *gorm.DB) *gorm.DB { return q.Where("bookings.status = ?", domain.BookingWaiting) }
	},
	domain.StateRejected: func(time.Time) func(*gorm.DB) *gorm.DB {
		return func(q *gorm.DB) *gorm.DB { return q.Where("bookings.status = ?", domain.BookingRejected) }
	},
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	b.ID = m.ID
	return nil
}

// GetByID loads the booking with its item and booker. Returns nil when
// the booking does not exist.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	bookings, err := r.hydrate(ctx, []bookingModel{m})
	if err != nil {
		return nil, err
	}
	return &bookings[0], nil
}

// UpdateStatusIfWaiting flips the status with a conditional update so
// concurrent decisions on one booking cannot both win. Returns false
// when the booking was no longer WAITING.
func (r *BookingRepository) UpdateStatusIfWaiting(ctx context.Context, id int64, status domain.BookingStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", id, domain.BookingWaiting).
		Update("status", string(status))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *BookingRepository) ListByBooker(ctx context.Context, bookerID int64, state domain.BookingState, now time.Time) ([]domain.Booking, error) {
	scope, ok := stateScopes[state]
	if !ok {
		return nil, fmt.Errorf("unknown booking state %q", state)
	}

	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("bookings.booker_id = ?", bookerID).
		Scopes(scope(now)).
		Order("bookings.start_date DESC, bookings.id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, models)
}

func (r *BookingRepository) ListByOwner(ctx context.Context, ownerID int64, state domain.BookingState, now time.Time) ([]domain.Booking, error) {
	scope, ok := stateScopes[state]
	if !ok {
		return nil, fmt.Errorf("unknown booking state %q", state)
	}

	var models []bookingModel
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("bookings.*").
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Scopes(scope(now)).
		Order("bookings.start_date DESC, bookings.id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, models)
}

// DatesByItem returns the item's booking intervals sorted ascending by
// start, the order the availability reduction relies on.
func (r *BookingRepository) DatesByItem(ctx context.Context, itemID int64) ([]domain.BookingDates, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("start_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toBookingDates(models), nil
}

// DatesByOwner returns intervals for every item of the owner in one
// query, sorted by item then start ascending.
func (r *BookingRepository) DatesByOwner(ctx context.Context, ownerID int64) ([]domain.BookingDates, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("bookings.*").
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Order("bookings.item_id ASC, bookings.start_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toBookingDates(models), nil
}

// ExistsApprovedPast reports whether the booker has an APPROVED booking
// of the item that already ended.
func (r *BookingRepository) ExistsApprovedPast(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("booker_id = ? AND item_id = ? AND status = ? AND end_date < ?",
			bookerID, itemID, domain.BookingApproved, now).
		Count(&count).Error
	return count > 0, err
}

// hydrate attaches items and bookers to booking rows with one IN query
// per referenced table.
func (r *BookingRepository) hydrate(ctx context.Context, models []bookingModel) ([]domain.Booking, error) {
	if len(models) == 0 {
		return []domain.Booking{}, nil
	}

	itemIDs := make([]int64, 0, len(models))
	userIDs := make([]int64, 0, len(models))
	seenItems := make(map[int64]bool)
	seenUsers := make(map[int64]bool)
	for _, m := range models {
		if !seenItems[m.ItemID] {
			seenItems[m.ItemID] = true
			itemIDs = append(itemIDs, m.ItemID)
		}
		if !seenUsers[m.BookerID] {
			seenUsers[m.BookerID] = true
			userIDs = append(userIDs, m.BookerID)
		}
	}

	var items []itemModel
	if err := r.db.WithContext(ctx).Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
		return nil, err
	}
	var users []userModel
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}

	itemsByID := make(map[int64]itemModel, len(items))
	for _, i := range items {
		itemsByID[i.ID] = i
	}
	usersByID := make(map[int64]userModel, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	bookings := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		b := domain.Booking{
			ID:       m.ID,
			Start:    m.StartDate,
			End:      m.EndDate,
			ItemID:   m.ItemID,
			BookerID: m.BookerID,
			Status:   domain.BookingStatus(m.Status),
		}
		if i, ok := itemsByID[m.ItemID]; ok {
			b.Item = *toDomainItem(i)
		}
		if u, ok := usersByID[m.BookerID]; ok {
			b.Booker = *toDomainUser(u)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func toBookingDates(models []bookingModel) []domain.BookingDates {
	dates := make([]domain.BookingDates, 0, len(models))
	for _, m := range models {
		dates = append(dates, domain.BookingDates{
			ItemID: m.ItemID,
			Start:  m.StartDate,
			End:    m.EndDate,
		})
	}
	return dates
}
