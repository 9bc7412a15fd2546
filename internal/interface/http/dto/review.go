package dto

import (
	"github.com/xiebiao/geektext/internal/domain/review"
)

// RateRequest 评分请求
type RateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5" example:"5"`
}

// CommentRequest 评论请求
type CommentRequest struct {
	Comment string `json:"comment" binding:"required,max=200" example:"A masterpiece"`
}

// RatingResponse 评分
type RatingResponse struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	UserID    uint   `json:"user_id"`
	Rating    int    `json:"rating" example:"5"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// RatingsResponse 一本书的评分列表和汇总
type RatingsResponse struct {
	ISBN    string            `json:"isbn"`
	Count   int64             `json:"count" example:"2"`
	Average float64           `json:"average" example:"4.5"`
	Items   []*RatingResponse `json:"items"`
}

// RateResponse 评分后的结果
type RateResponse struct {
	Rating  *RatingResponse `json:"rating"`
	Count   int64           `json:"count"`
	Average float64         `json:"average"`
}

// CommentResponse 评论
type CommentResponse struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	UserID    uint   `json:"user_id"`
	Comment   string `json:"comment" example:"A masterpiece"`
	CreatedAt string `json:"created_at"`
}

// CommentsResponse 一本书的评论列表
type CommentsResponse struct {
	ISBN  string             `json:"isbn"`
	Total int                `json:"total"`
	Items []*CommentResponse `json:"items"`
}

// NewRatingResponse 领域实体 → HTTP响应
func NewRatingResponse(r *review.Rating) *RatingResponse {
	return &RatingResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		UserID:    r.UserID,
		Rating:    r.Value,
		CreatedAt: formatTime(r.CreatedAt),
		UpdatedAt: formatTime(r.UpdatedAt),
	}
}

// NewRatingsResponse 评分列表
func NewRatingsResponse(isbn string, ratings []*review.Rating, summary review.Summary) *RatingsResponse {
	items := make([]*RatingResponse, len(ratings))
	for i, r := range ratings {
		items[i] = NewRatingResponse(r)
	}
	return &RatingsResponse{ISBN: isbn, Count: summary.Count, Average: summary.Average, Items: items}
}

// NewRateResponse 评分结果，带最新汇总
func NewRateResponse(r *review.Rating, summary review.Summary) *RateResponse {
	return &RateResponse{Rating: NewRatingResponse(r), Count: summary.Count, Average: summary.Average}
}

// NewCommentResponse 领域实体 → HTTP响应
func NewCommentResponse(c *review.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		BookID:    c.BookID,
		UserID:    c.UserID,
		Comment:   c.Text,
		CreatedAt: formatTime(c.CreatedAt),
	}
}

// NewCommentsResponse 评论列表
func NewCommentsResponse(isbn string, comments []*review.Comment) *CommentsResponse {
	items := make([]*CommentResponse, len(comments))
	for i, c := range comments {
		items[i] = NewCommentResponse(c)
	}
	return &CommentsResponse{ISBN: isbn, Total: len(comments), Items: items}
}
