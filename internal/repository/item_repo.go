package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

type itemModel struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description"`
	Available   bool   `gorm:"column:available"`
	OwnerID     int64  `gorm:"column:owner_id;index"`
	RequestID   *int64 `gorm:"column:request_id;index"`
}

func (itemModel) TableName() string { return "items" }

func toDomainItem(m itemModel) *domain.Item {
	return &domain.Item{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Available:   m.Available,
		OwnerID:     m.OwnerID,
		RequestID:   m.RequestID,
	}
}

func toItemModel(i *domain.Item) itemModel {
	return itemModel{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
		RequestID:   i.RequestID,
	}
}

func (r *ItemRepository) Create(ctx context.Context, i *domain.Item) error {
	m := toItemModel(i)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*i = *toDomainItem(m)
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	var m itemModel
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainItem(m), nil
}

func (r *ItemRepository) Update(ctx context.Context, i *domain.Item) error {
	m := toItemModel(i)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return err
	}
	*i = *toDomainItem(m)
	return nil
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	var models []itemModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainItems(models), nil
}

// Search matches available items whose name or description contains the
// text, case-insensitively.
func (r *ItemRepository) Search(ctx context.Context, text string) ([]domain.Item, error) {
	pattern := "%" + strings.ToUpper(text) + "%"
	var models []itemModel
	err := r.db.WithContext(ctx).
		Where("available = ? AND (UPPER(name) LIKE ? OR UPPER(description) LIKE ?)", true, pattern, pattern).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainItems(models), nil
}

func (r *ItemRepository) ListByRequest(ctx context.Context, requestID int64) ([]domain.Item, error) {
	var models []itemModel
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainItems(models), nil
}

func (r *ItemRepository) ListByRequests(ctx context.Context, requestIDs []int64) ([]domain.Item, error) {
	if len(requestIDs) == 0 {
		return []domain.Item{}, nil
	}
	var models []itemModel
	err := r.db.WithContext(ctx).
		Where("request_id IN ?", requestIDs).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainItems(models), nil
}

func toDomainItems(models []itemModel) []domain.Item {
	items := make([]domain.Item, 0, len(models))
	for _, m := range models {
		items = append(items, *toDomainItem(m))
	}
	return items
}
