package wishlist

import (
	"context"

	"github.com/xiebiao/geektext/internal/domain/book"
)

// Repository 心愿单仓储接口
// 成员关系操作作用于wishlist_books关联表，不修改图书本身
type Repository interface {
	// Create 创建心愿单，用户已有心愿单时返回ErrWishlistExists
	Create(ctx context.Context, w *Wishlist) error

	// FindByUserID 不存在时返回ErrWishlistNotFound
	FindByUserID(ctx context.Context, userID uint) (*Wishlist, error)

	// AddBook 加入图书，已存在时不做任何事
	AddBook(ctx context.Context, wishlistID, bookID uint) error

	// RemoveBook 移除图书，不在心愿单中时返回ErrNotInWishlist
	RemoveBook(ctx context.Context, wishlistID, bookID uint) error

	// HasBook 图书是否在心愿单中
	HasBook(ctx context.Context, wishlistID, bookID uint) (bool, error)

	// Books 心愿单中的图书，按加入顺序
	Books(ctx context.Context, wishlistID uint) ([]*book.Book, error)
}
