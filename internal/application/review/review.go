package review

import (
	"context"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/review"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
)

// ReviewUseCase 评分与评论用例
// 设计说明：
// 1. 评分1-5分，同一用户对同一本书只保留最后一次评分
// 2. 评论只追加，不支持修改
// 3. 返回评分时附带该书的评分汇总（数量和平均分）
type ReviewUseCase struct {
	txManager   *gormdb.TxManager
	bookRepo    book.Repository
	ratingRepo  review.RatingRepository
	commentRepo review.CommentRepository
}

// NewReviewUseCase 创建评分评论用例
func NewReviewUseCase(
	txManager *gormdb.TxManager,
	bookRepo book.Repository,
	ratingRepo review.RatingRepository,
	commentRepo review.CommentRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		txManager:   txManager,
		bookRepo:    bookRepo,
		ratingRepo:  ratingRepo,
		commentRepo: commentRepo,
	}
}

// RatingsView 某本书的全部评分
type RatingsView struct {
	Book    *book.Book
	Ratings []*review.Rating
	Summary review.Summary
}

// CommentsView 某本书的全部评论
type CommentsView struct {
	Book     *book.Book
	Comments []*review.Comment
}

// Rate 用户给图书评分，返回保存后的评分和最新汇总
func (uc *ReviewUseCase) Rate(ctx context.Context, userID uint, isbn string, value int) (*review.Rating, review.Summary, error) {
	var (
		saved   *review.Rating
		summary review.Summary
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookRepo.FindByISBN(txCtx, isbn)
		if err != nil {
			return err
		}

		rating, err := review.NewRating(b.ID, userID, value)
		if err != nil {
			return err
		}
		if err := uc.ratingRepo.Upsert(txCtx, rating); err != nil {
			return err
		}
		saved = rating

		ratings, err := uc.ratingRepo.ListByBook(txCtx, b.ID)
		if err != nil {
			return err
		}
		summary = review.Summarize(ratings)
		return nil
	})
	if err != nil {
		return nil, review.Summary{}, err
	}
	return saved, summary, nil
}

// Ratings 查询图书的评分
func (uc *ReviewUseCase) Ratings(ctx context.Context, isbn string) (*RatingsView, error) {
	b, err := uc.bookRepo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	ratings, err := uc.ratingRepo.ListByBook(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return &RatingsView{Book: b, Ratings: ratings, Summary: review.Summarize(ratings)}, nil
}

// Comment 用户发表评论
func (uc *ReviewUseCase) Comment(ctx context.Context, userID uint, isbn, text string) (*review.Comment, error) {
	var saved *review.Comment
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookRepo.FindByISBN(txCtx, isbn)
		if err != nil {
			return err
		}

		c, err := review.NewComment(b.ID, userID, text)
		if err != nil {
			return err
		}
		if err := uc.commentRepo.Create(txCtx, c); err != nil {
			return err
		}
		saved = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Comments 查询图书的评论，按发表时间排序
func (uc *ReviewUseCase) Comments(ctx context.Context, isbn string) (*CommentsView, error) {
	b, err := uc.bookRepo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	comments, err := uc.commentRepo.ListByBook(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return &CommentsView{Book: b, Comments: comments}, nil
}
