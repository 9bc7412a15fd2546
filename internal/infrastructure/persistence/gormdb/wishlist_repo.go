package gormdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/wishlist"
)

// wishlistRepository 心愿单仓储实现，图书关系存放在wishlist_books关联表
type wishlistRepository struct {
	db    *gorm.DB
	books membership
}

// NewWishlistRepository 创建心愿单仓储
func NewWishlistRepository(db *gorm.DB) wishlist.Repository {
	return &wishlistRepository{db: db, books: wishlistBooks.with(db)}
}

func (r *wishlistRepository) Create(ctx context.Context, w *wishlist.Wishlist) error {
	model := &WishlistModel{UserID: w.UserID, CreatedAt: w.CreatedAt}
	if err := dbFrom(ctx, r.db).Omit(clause.Associations).Create(model).Error; err != nil {
		return storageError(err, wishlist.ErrWishlistExists, "创建心愿单失败")
	}

	w.ID = model.ID
	w.CreatedAt = model.CreatedAt
	return nil
}

func (r *wishlistRepository) FindByUserID(ctx context.Context, userID uint) (*wishlist.Wishlist, error) {
	var model WishlistModel
	if err := dbFrom(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
		return nil, notFoundOr(err, wishlist.ErrWishlistNotFound, "查询心愿单失败")
	}
	return &wishlist.Wishlist{ID: model.ID, UserID: model.UserID, CreatedAt: model.CreatedAt}, nil
}

func (r *wishlistRepository) AddBook(ctx context.Context, wishlistID, bookID uint) error {
	return r.books.add(ctx, wishlistID, bookID)
}

func (r *wishlistRepository) RemoveBook(ctx context.Context, wishlistID, bookID uint) error {
	removed, err := r.books.remove(ctx, wishlistID, bookID)
	if err != nil {
		return err
	}
	if !removed {
		return wishlist.ErrNotInWishlist
	}
	return nil
}

func (r *wishlistRepository) HasBook(ctx context.Context, wishlistID, bookID uint) (bool, error) {
	return r.books.has(ctx, wishlistID, bookID)
}

func (r *wishlistRepository) Books(ctx context.Context, wishlistID uint) ([]*book.Book, error) {
	models, err := r.books.books(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	return toBookEntities(models), nil
}
