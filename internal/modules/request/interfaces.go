package request

import (
	"context"

	"shareit/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, r *domain.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error)
	ListByOthers(ctx context.Context, userID int64) ([]domain.ItemRequest, error)
}

type UserRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type ItemRepository interface {
	ListByRequest(ctx context.Context, requestID int64) ([]domain.Item, error)
	ListByRequests(ctx context.Context, requestIDs []int64) ([]domain.Item, error)
}
