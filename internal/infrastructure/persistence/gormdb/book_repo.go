package gormdb

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/geektext/internal/domain/book"
	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// bookRepository 图书仓储实现
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return storageError(err, book.ErrISBNDuplicate, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := dbFrom(ctx, r.db).First(&model, id).Error; err != nil {
		return nil, notFoundOr(err, book.ErrBookNotFound, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByISBN 根据ISBN查找图书
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	if err := dbFrom(ctx, r.db).Where("isbn = ?", isbn).First(&model).Error; err != nil {
		return nil, notFoundOr(err, book.ErrBookNotFound, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByAuthorID 查询作者的全部图书
func (r *bookRepository) FindByAuthorID(ctx context.Context, authorID uint) ([]*book.Book, error) {
	var models []BookModel
	if err := dbFrom(ctx, r.db).Where("author_id = ?", authorID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询作者图书失败")
	}
	return toBookEntities(models), nil
}

// Update 更新图书信息
// isbn是查找键，不在更新范围内；调用方已在同一事务中按ISBN查到该图书
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	result := dbFrom(ctx, r.db).Model(model).
		Select("title", "description", "genre", "publisher", "price", "copies_sold", "date_published", "author_id", "updated_at").
		Updates(model)
	if result.Error != nil {
		return storageError(result.Error, nil, "更新图书失败")
	}

	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除图书
// 同一事务内删除心愿单/购物车关联以及评分和评论，不依赖数据库的级联设置
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{&WishlistBookModel{}, &CartBookModel{}, &RatingModel{}, &CommentModel{}} {
			if err := tx.Where("book_id = ?", id).Delete(m).Error; err != nil {
				return apperrors.Wrap(err, "删除图书关联数据失败")
			}
		}

		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return nil
	})
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	query := dbFrom(ctx, r.db).Model(&BookModel{})

	// 关键词搜索(搜索标题、类型、出版社)
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR genre LIKE ? OR publisher LIKE ?", keyword, keyword, keyword)
	}
	if params.Genre != "" {
		query = query.Where("genre = ?", params.Genre)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	switch params.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "copies_sold_desc":
		query = query.Order("copies_sold DESC")
	case "created_at_desc":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("id ASC")
	}
	query = query.Order("id ASC")

	offset := (params.Page - 1) * params.PageSize
	if err := query.Limit(params.PageSize).Offset(offset).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	return toBookEntities(models), total, nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Description:   b.Description,
		Genre:         b.Genre,
		Publisher:     b.Publisher,
		Price:         b.Price,
		CopiesSold:    b.CopiesSold,
		DatePublished: b.DatePublished,
		AuthorID:      b.AuthorID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	b := &book.Book{
		ID:          model.ID,
		ISBN:        model.ISBN,
		Title:       model.Title,
		Description: model.Description,
		Genre:       model.Genre,
		Publisher:   model.Publisher,
		Price:       model.Price,
		CopiesSold:  model.CopiesSold,
		AuthorID:    model.AuthorID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.DatePublished != nil {
		// 只取日历日期部分，忽略驱动附带的时区
		y, m, d := model.DatePublished.Date()
		date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		b.DatePublished = &date
	}
	return b
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
