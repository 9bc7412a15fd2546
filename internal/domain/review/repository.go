package review

import (
	"context"
)

// RatingRepository 评分仓储接口
type RatingRepository interface {
	// Upsert 按(book_id, user_id)新增或覆盖评分，回填ID
	Upsert(ctx context.Context, rating *Rating) error

	// ListByBook 某本书的全部评分，按ID升序
	ListByBook(ctx context.Context, bookID uint) ([]*Rating, error)
}

// CommentRepository 评论仓储接口
type CommentRepository interface {
	// Create 新增评论，回填ID
	Create(ctx context.Context, comment *Comment) error

	// ListByBook 某本书的全部评论，按ID升序
	ListByBook(ctx context.Context, bookID uint) ([]*Comment, error)
}
