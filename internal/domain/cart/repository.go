package cart

import (
	"context"

	"github.com/xiebiao/geektext/internal/domain/book"
)

// Repository 购物车仓储接口
type Repository interface {
	// Create 创建购物车，用户已有购物车时返回ErrCartExists
	Create(ctx context.Context, c *ShoppingCart) error

	// FindByUserID 不存在时返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*ShoppingCart, error)

	// AddBook 加入图书，已存在时不做任何事
	AddBook(ctx context.Context, cartID, bookID uint) error

	// RemoveBook 移除图书，不在购物车中时返回ErrNotInCart
	RemoveBook(ctx context.Context, cartID, bookID uint) error

	// HasBook 图书是否在购物车中
	HasBook(ctx context.Context, cartID, bookID uint) (bool, error)

	// Books 购物车中的图书，按加入顺序
	Books(ctx context.Context, cartID uint) ([]*book.Book, error)
}
