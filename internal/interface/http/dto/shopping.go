package dto

import (
	"time"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/user"
)

// AddBookRequest 加入心愿单/购物车
type AddBookRequest struct {
	ISBN string `json:"isbn" binding:"required" example:"1-87-876587-9879"`
}

// CollectionResponse 心愿单或购物车，内嵌一层图书
type CollectionResponse struct {
	ID        uint            `json:"id" example:"1"`
	UserID    uint            `json:"user_id" example:"1"`
	Username  string          `json:"username" example:"alice"`
	Books     []*BookResponse `json:"books"`
	CreatedAt string          `json:"created_at"`
}

// NewCollectionResponse 心愿单和购物车结构相同，共用一个响应
func NewCollectionResponse(id uint, owner *user.User, createdAt time.Time, books []*book.Book) *CollectionResponse {
	return &CollectionResponse{
		ID:        id,
		UserID:    owner.ID,
		Username:  owner.Username,
		Books:     NewBookList(books),
		CreatedAt: formatTime(createdAt),
	}
}

// MoveResponse 心愿单 → 购物车的结果
type MoveResponse struct {
	CartID uint          `json:"cart_id" example:"1"`
	Book   *BookResponse `json:"book"`
}
