package dto

import (
	"github.com/xiebiao/geektext/internal/domain/author"
	"github.com/xiebiao/geektext/internal/domain/book"
)

// CreateAuthorRequest HTTP创建作者请求
type CreateAuthorRequest struct {
	FirstName string `json:"first_name" binding:"required,max=50" example:"Gabriel"`
	LastName  string `json:"last_name" binding:"required,max=50" example:"Garcia Marquez"`
	Publisher string `json:"publisher" binding:"max=50" example:"Penguin"`
	Bio       string `json:"bio" binding:"max=500" example:"Colombian novelist"`
}

// FindAuthorRequest 按姓名查找作者（两个参数同时提供才生效）
type FindAuthorRequest struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
}

// ByName 是否按姓名查找
func (r *FindAuthorRequest) ByName() bool {
	return r.FirstName != "" && r.LastName != ""
}

// AuthorResponse HTTP作者响应（不含图书）
type AuthorResponse struct {
	ID        uint   `json:"id" example:"1"`
	FirstName string `json:"first_name" example:"Gabriel"`
	LastName  string `json:"last_name" example:"Garcia Marquez"`
	Publisher string `json:"publisher" example:"Penguin"`
	Bio       string `json:"bio" example:"Colombian novelist"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AuthorDetailResponse 作者详情，内嵌一层图书
type AuthorDetailResponse struct {
	AuthorResponse
	Books []*BookResponse `json:"books"`
}

// AuthorBooksResponse 作者的图书列表
type AuthorBooksResponse struct {
	Total      int             `json:"total" example:"1"`
	AuthorName string          `json:"author_name" example:"Gabriel Garcia Marquez"`
	Items      []*BookResponse `json:"items"`
}

// NewAuthorResponse 领域实体 → HTTP响应
func NewAuthorResponse(a *author.Author) *AuthorResponse {
	return &AuthorResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Publisher: a.Publisher,
		Bio:       a.Bio,
		CreatedAt: formatTime(a.CreatedAt),
		UpdatedAt: formatTime(a.UpdatedAt),
	}
}

// NewAuthorList 作者列表
func NewAuthorList(authors []*author.Author) []*AuthorResponse {
	list := make([]*AuthorResponse, len(authors))
	for i, a := range authors {
		list[i] = NewAuthorResponse(a)
	}
	return list
}

// NewAuthorDetailResponse 作者及其图书
func NewAuthorDetailResponse(a *author.Author, books []*book.Book) *AuthorDetailResponse {
	return &AuthorDetailResponse{
		AuthorResponse: *NewAuthorResponse(a),
		Books:          NewBookList(books),
	}
}

// NewAuthorBooksResponse {total, author_name, items}
func NewAuthorBooksResponse(a *author.Author, books []*book.Book) *AuthorBooksResponse {
	return &AuthorBooksResponse{
		Total:      len(books),
		AuthorName: a.FullName(),
		Items:      NewBookList(books),
	}
}
