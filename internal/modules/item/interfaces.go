package item

import (
	"context"
	"time"

	"shareit/internal/domain"
)

type ItemRepository interface {
	Create(ctx context.Context, i *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Update(ctx context.Context, i *domain.Item) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error)
	Search(ctx context.Context, text string) ([]domain.Item, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error)
}

type BookingRepository interface {
	DatesByItem(ctx context.Context, itemID int64) ([]domain.BookingDates, error)
	DatesByOwner(ctx context.Context, ownerID int64) ([]domain.BookingDates, error)
	ExistsApprovedPast(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]domain.Comment, error)
	ListByItems(ctx context.Context, itemIDs []int64) ([]domain.Comment, error)
}
