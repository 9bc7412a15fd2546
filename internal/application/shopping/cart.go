package shopping

import (
	"context"
	"errors"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/cart"
	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
)

// CartView 购物车及其中的图书
type CartView struct {
	Cart  *cart.ShoppingCart
	Owner *user.User
	Books []*book.Book
}

// CartUseCase 购物车用例
type CartUseCase struct {
	txManager *gormdb.TxManager
	userRepo  user.Repository
	bookRepo  book.Repository
	cartRepo  cart.Repository
}

// NewCartUseCase 创建购物车用例
func NewCartUseCase(
	txManager *gormdb.TxManager,
	userRepo user.Repository,
	bookRepo book.Repository,
	cartRepo cart.Repository,
) *CartUseCase {
	return &CartUseCase{
		txManager: txManager,
		userRepo:  userRepo,
		bookRepo:  bookRepo,
		cartRepo:  cartRepo,
	}
}

// Create 为用户创建购物车（幂等）
func (uc *CartUseCase) Create(ctx context.Context, username string) (*CartView, error) {
	u, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	c, err := findOrCreateCart(ctx, uc.cartRepo, u.ID)
	if errors.Is(err, cart.ErrCartExists) {
		c, err = uc.cartRepo.FindByUserID(ctx, u.ID)
	}
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, u, c)
}

// Get 查询用户的购物车
func (uc *CartUseCase) Get(ctx context.Context, username string) (*CartView, error) {
	u, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	c, err := uc.cartRepo.FindByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, u, c)
}

// AddBook 把图书加入购物车，用户没有购物车时自动创建
func (uc *CartUseCase) AddBook(ctx context.Context, username, isbn string) (*CartView, error) {
	var (
		u *user.User
		c *cart.ShoppingCart
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		if u, err = uc.userRepo.FindByUsername(txCtx, username); err != nil {
			return err
		}
		b, err := uc.bookRepo.FindByISBN(txCtx, isbn)
		if err != nil {
			return err
		}
		if c, err = findOrCreateCart(txCtx, uc.cartRepo, u.ID); err != nil {
			return err
		}
		return uc.cartRepo.AddBook(txCtx, c.ID, b.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, u, c)
}

// RemoveBook 从购物车移除图书
// 没有购物车或图书不在购物车中都返回ErrNotInCart
func (uc *CartUseCase) RemoveBook(ctx context.Context, username, isbn string) (*CartView, error) {
	var (
		u *user.User
		c *cart.ShoppingCart
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		if u, err = uc.userRepo.FindByUsername(txCtx, username); err != nil {
			return err
		}
		b, err := uc.bookRepo.FindByISBN(txCtx, isbn)
		if err != nil {
			return err
		}
		if c, err = uc.cartRepo.FindByUserID(txCtx, u.ID); err != nil {
			if errors.Is(err, cart.ErrCartNotFound) {
				return cart.ErrNotInCart
			}
			return err
		}
		return uc.cartRepo.RemoveBook(txCtx, c.ID, b.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, u, c)
}

func (uc *CartUseCase) view(ctx context.Context, u *user.User, c *cart.ShoppingCart) (*CartView, error) {
	books, err := uc.cartRepo.Books(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return &CartView{Cart: c, Owner: u, Books: books}, nil
}

func findOrCreateCart(ctx context.Context, repo cart.Repository, userID uint) (*cart.ShoppingCart, error) {
	c, err := repo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}

	c = cart.New(userID)
	if err := repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
