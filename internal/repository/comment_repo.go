package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shareit/internal/domain"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

type commentModel struct {
	ID       int64     `gorm:"column:id;primaryKey"`
	Text     string    `gorm:"column:text;size:500"`
	ItemID   int64     `gorm:"column:item_id;index"`
	AuthorID int64     `gorm:"column:author_id;index"`
	Created  time.Time `gorm:"column:created"`
}

func (commentModel) TableName() string { return "comments" }

// commentRow is the comment joined with its author's name for views.
type commentRow struct {
	ID         int64     `gorm:"column:id"`
	Text       string    `gorm:"column:text"`
	ItemID     int64     `gorm:"column:item_id"`
	AuthorID   int64     `gorm:"column:author_id"`
	Created    time.Time `gorm:"column:created"`
	AuthorName string    `gorm:"column:author_name"`
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	m := commentModel{
		Text:     c.Text,
		ItemID:   c.ItemID,
		AuthorID: c.AuthorID,
		Created:  c.Created,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	c.ID = m.ID
	return nil
}

func (r *CommentRepository) ListByItem(ctx context.Context, itemID int64) ([]domain.Comment, error) {
	var rows []commentRow
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.*, users.name AS author_name").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.item_id = ?", itemID).
		Order("comments.created DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainComments(rows), nil
}

func (r *CommentRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]domain.Comment, error) {
	if len(itemIDs) == 0 {
		return []domain.Comment{}, nil
	}
	var rows []commentRow
	err := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.*, users.name AS author_name").
		Joins("JOIN users ON users.id = comments.author_id").
		Where("comments.item_id IN ?", itemIDs).
		Order("comments.created DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainComments(rows), nil
}

func toDomainComments(rows []commentRow) []domain.Comment {
	comments := make([]domain.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, domain.Comment{
			ID:         row.ID,
			Text:       row.Text,
			ItemID:     row.ItemID,
			AuthorID:   row.AuthorID,
			Created:    row.Created,
			AuthorName: row.AuthorName,
		})
	}
	return comments
}
