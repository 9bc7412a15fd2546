package review

import (
	"strings"
	"time"
	"unicode/utf8"
)

// 评分范围与评论长度
const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 200
)

// Rating 评分
// 同一用户对同一本书只保留一条评分，再次评分覆盖旧值
type Rating struct {
	ID        uint
	BookID    uint
	UserID    uint
	Value     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRating 创建评分，value必须在1到5之间
func NewRating(bookID, userID uint, value int) (*Rating, error) {
	if value < MinRating || value > MaxRating {
		return nil, ErrInvalidRating
	}
	return &Rating{BookID: bookID, UserID: userID, Value: value}, nil
}

// Comment 评论
type Comment struct {
	ID        uint
	BookID    uint
	UserID    uint
	Text      string
	CreatedAt time.Time
}

// NewComment 创建评论，内容必填且不超过200个字符
func NewComment(bookID, userID uint, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentRequired
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}
	return &Comment{BookID: bookID, UserID: userID, Text: text}, nil
}

// Summary 某本书的评分汇总
type Summary struct {
	Count   int64
	Average float64
}

// Summarize 计算平均分，没有评分时平均分为0
func Summarize(ratings []*Rating) Summary {
	if len(ratings) == 0 {
		return Summary{}
	}
	total := 0
	for _, r := range ratings {
		total += r.Value
	}
	return Summary{
		Count:   int64(len(ratings)),
		Average: float64(total) / float64(len(ratings)),
	}
}
