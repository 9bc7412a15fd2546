package gormdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/geektext/internal/domain/review"
	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository 创建评分仓储
func NewRatingRepository(db *gorm.DB) review.RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert 同一用户对同一本书再次评分时覆盖旧值
func (r *ratingRepository) Upsert(ctx context.Context, rating *review.Rating) error {
	model := &RatingModel{BookID: rating.BookID, UserID: rating.UserID, Value: rating.Value}

	err := dbFrom(ctx, r.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "book_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		return storageError(err, nil, "保存评分失败")
	}

	// 冲突更新时部分驱动不回填ID，重新读取
	var saved RatingModel
	if err := dbFrom(ctx, r.db).
		Where("book_id = ? AND user_id = ?", rating.BookID, rating.UserID).
		First(&saved).Error; err != nil {
		return apperrors.Wrap(err, "查询评分失败")
	}
	*rating = *toRatingEntity(&saved)
	return nil
}

func (r *ratingRepository) ListByBook(ctx context.Context, bookID uint) ([]*review.Rating, error) {
	var models []RatingModel
	if err := dbFrom(ctx, r.db).Where("book_id = ?", bookID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询评分失败")
	}

	ratings := make([]*review.Rating, len(models))
	for i := range models {
		ratings[i] = toRatingEntity(&models[i])
	}
	return ratings, nil
}

func toRatingEntity(model *RatingModel) *review.Rating {
	return &review.Rating{
		ID:        model.ID,
		BookID:    model.BookID,
		UserID:    model.UserID,
		Value:     model.Value,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓储
func NewCommentRepository(db *gorm.DB) review.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, c *review.Comment) error {
	model := &CommentModel{BookID: c.BookID, UserID: c.UserID, Text: c.Text}
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return storageError(err, nil, "创建评论失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *commentRepository) ListByBook(ctx context.Context, bookID uint) ([]*review.Comment, error) {
	var models []CommentModel
	if err := dbFrom(ctx, r.db).Where("book_id = ?", bookID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询评论失败")
	}

	comments := make([]*review.Comment, len(models))
	for i, m := range models {
		comments[i] = &review.Comment{
			ID:        m.ID,
			BookID:    m.BookID,
			UserID:    m.UserID,
			Text:      m.Text,
			CreatedAt: m.CreatedAt,
		}
	}
	return comments, nil
}
