package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

type requestModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Description string    `gorm:"column:description"`
	RequestorID int64     `gorm:"column:requestor_id;index"`
	Created     time.Time `gorm:"column:created"`
}

func (requestModel) TableName() string { return "requests" }

func toDomainRequest(m requestModel) *domain.ItemRequest {
	return &domain.ItemRequest{
		ID:          m.ID,
		Description: m.Description,
		RequestorID: m.RequestorID,
		Created:     m.Created,
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.ItemRequest) error {
	m := requestModel{
		Description: req.Description,
		RequestorID: req.RequestorID,
		Created:     req.Created,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	req.ID = m.ID
	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*domain.ItemRequest, error) {
	var m requestModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainRequest(m), nil
}

func (r *RequestRepository) ListByRequestor(ctx context.Context, requestorID int64) ([]domain.ItemRequest, error) {
	var models []requestModel
	err := r.db.WithContext(ctx).
		Where("requestor_id = ?", requestorID).
		Order("created DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainRequests(models), nil
}

// ListByOthers returns requests created by everyone except the given
// user, newest first.
func (r *RequestRepository) ListByOthers(ctx context.Context, userID int64) ([]domain.ItemRequest, error) {
	var models []requestModel
	err := r.db.WithContext(ctx).
		Where("requestor_id <> ?", userID).
		Order("created DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainRequests(models), nil
}

func toDomainRequests(models []requestModel) []domain.ItemRequest {
	requests := make([]domain.ItemRequest, 0, len(models))
	for _, m := range models {
		requests = append(requests, *toDomainRequest(m))
	}
	return requests
}
