package gormdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/cart"
)

// cartRepository 购物车仓储实现，图书关系存放在cart_books关联表
type cartRepository struct {
	db    *gorm.DB
	books membership
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db, books: cartBooks.with(db)}
}

func (r *cartRepository) Create(ctx context.Context, c *cart.ShoppingCart) error {
	model := &CartModel{UserID: c.UserID, CreatedAt: c.CreatedAt}
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return storageError(err, cart.ErrCartExists, "创建购物车失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	var model CartModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, notFoundOr(err, cart.ErrCartNotFound, "查询购物车失败")
	}
	return &cart.ShoppingCart{ID: model.ID, UserID: model.UserID, CreatedAt: model.CreatedAt}, nil
}

func (r *cartRepository) AddBook(ctx context.Context, cartID, bookID uint) error {
	return r.books.add(ctx, cartID, bookID)
}

func (r *cartRepository) RemoveBook(ctx context.Context, cartID, bookID uint) error {
	removed, err := r.books.remove(ctx, cartID, bookID)
	if err != nil {
		return err
	}
	if !removed {
		return cart.ErrNotInCart
	}
	return nil
}

func (r *cartRepository) HasBook(ctx context.Context, cartID, bookID uint) (bool, error) {
	return r.books.has(ctx, cartID, bookID)
}

func (r *cartRepository) Books(ctx context.Context, cartID uint) ([]*book.Book, error) {
	models, err := r.books.books(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return toBookEntities(models), nil
}
