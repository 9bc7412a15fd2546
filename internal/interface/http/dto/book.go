package dto

import (
	"time"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/pkg/validator"
)

// TimeLayout 时间戳输出格式
const TimeLayout = time.RFC3339

// CreateBookRequest HTTP上架请求
// validator tag说明:
// - required: 必填字段
// - max: 长度上限
// - date: 自定义日期校验(在pkg/validator中注册)
// 作者二选一：author_id引用已有作者，或first_name+last_name内联（不存在则创建）
type CreateBookRequest struct {
	ISBN          string `json:"isbn" binding:"required,max=20" example:"1-87-876587-9879"`
	Title         string `json:"title" binding:"required,max=100" example:"Cien años de soledad"`
	Description   string `json:"description" binding:"required,max=500" example:"..."`
	Genre         string `json:"genre" binding:"required,max=100" example:"horror"`
	Publisher     string `json:"publisher" binding:"max=100" example:"Penguin"`
	Price         *int   `json:"price" binding:"omitempty,gte=0" example:"25"`
	CopiesSold    int    `json:"copies_sold" binding:"gte=0" example:"0"`
	DatePublished string `json:"date_published" binding:"omitempty,date" example:"2022-05-22"`
	AuthorID      *uint  `json:"author_id" example:"1"`
	FirstName     string `json:"first_name" binding:"max=50" example:"Gabriel"`
	LastName      string `json:"last_name" binding:"max=50" example:"Garcia Marquez"`
}

// Fields 转换为领域层的创建参数
func (r *CreateBookRequest) Fields() book.Fields {
	return book.Fields{
		ISBN:          r.ISBN,
		Title:         r.Title,
		Description:   r.Description,
		Genre:         r.Genre,
		Publisher:     r.Publisher,
		Price:         r.Price,
		CopiesSold:    r.CopiesSold,
		DatePublished: r.DatePublished,
		AuthorID:      r.AuthorID,
	}
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"soledad"`
	Genre    string `form:"genre" binding:"omitempty,max=100" example:"horror"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc copies_sold_desc created_at_desc" example:"price_asc"`
}

// Params 转换为仓储查询参数
func (r *ListBooksRequest) Params() book.ListParams {
	return book.ListParams{
		Page:     r.Page,
		PageSize: r.PageSize,
		Keyword:  r.Keyword,
		Genre:    r.Genre,
		SortBy:   r.SortBy,
	}
}

// BookResponse HTTP图书响应
// 图书只带author_id，不内嵌作者，避免作者↔图书循环嵌套
type BookResponse struct {
	ID            uint    `json:"id" example:"1"`
	ISBN          string  `json:"isbn" example:"1-87-876587-9879"`
	Title         string  `json:"title" example:"Cien años de soledad"`
	Description   string  `json:"description" example:"..."`
	Genre         string  `json:"genre" example:"horror"`
	Publisher     string  `json:"publisher" example:"Penguin"`
	Price         int     `json:"price" example:"25"`
	CopiesSold    int     `json:"copies_sold" example:"0"`
	DatePublished *string `json:"date_published" example:"2022-05-22"`
	AuthorID      *uint   `json:"author_id" example:"1"`
	CreatedAt     string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt     string  `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// NewBookResponse 领域实体 → HTTP响应
func NewBookResponse(b *book.Book) *BookResponse {
	resp := &BookResponse{
		ID:          b.ID,
		ISBN:        b.ISBN,
		Title:       b.Title,
		Description: b.Description,
		Genre:       b.Genre,
		Publisher:   b.Publisher,
		Price:       b.Price,
		CopiesSold:  b.CopiesSold,
		AuthorID:    b.AuthorID,
		CreatedAt:   formatTime(b.CreatedAt),
		UpdatedAt:   formatTime(b.UpdatedAt),
	}
	if b.DatePublished != nil {
		date := validator.FormatDate(b.DatePublished)
		resp.DatePublished = &date
	}
	return resp
}

// NewBookList 图书列表，nil返回空数组
func NewBookList(books []*book.Book) []*BookResponse {
	list := make([]*BookResponse, len(books))
	for i, b := range books {
		list[i] = NewBookResponse(b)
	}
	return list
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}
