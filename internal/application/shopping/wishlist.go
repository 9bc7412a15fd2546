package shopping

import (
	"context"
	"errors"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/domain/wishlist"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
)

const tracerName = "geektext/shopping"

// WishlistView 心愿单及其中的图书
type WishlistView struct {
	Wishlist *wishlist.Wishlist
	Owner    *user.User
	Books    []*book.Book
}

// WishlistUseCase 心愿单用例
type WishlistUseCase struct {
	txManager    *gormdb.TxManager
	userRepo     user.Repository
	bookRepo     book.Repository
	wishlistRepo wishlist.Repository
}

// NewWishlistUseCase 创建心愿单用例
func NewWishlistUseCase(
	txManager *gormdb.TxManager,
	userRepo user.Repository,
	bookRepo book.Repository,
	wishlistRepo wishlist.Repository,
) *WishlistUseCase {
	return &WishlistUseCase{
		txManager:    txManager,
		userRepo:     userRepo,
		bookRepo:     bookRepo,
		wishlistRepo: wishlistRepo,
	}
}

// Create 为用户创建心愿单
// 幂等：用户已有心愿单时返回已有的那个
func (uc *WishlistUseCase) Create(ctx context.Context, username string) (*WishlistView, error) {
	u, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	// 并发创建时唯一索引冲突的一方重新读取胜出者
	w, err := findOrCreateWishlist(ctx, uc.wishlistRepo, u.ID)
	if errors.Is(err, wishlist.ErrWishlistExists) {
		w, err = uc.wishlistRepo.FindByUserID(ctx, u.ID)
	}
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, u, w)
}

// Get 查询用户的心愿单
func (uc *WishlistUseCase) Get(ctx context.Context, username string) (*WishlistView, error) {
	u, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	w, err := uc.wishlistRepo.FindByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, u, w)
}

// AddBook 把图书加入心愿单，用户没有心愿单时自动创建
// 图书已在心愿单中时不报错
func (uc *WishlistUseCase) AddBook(ctx context.Context, username, isbn string) (*WishlistView, error) {
	var (
		u *user.User
		w *wishlist.Wishlist
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
		if w, err = findOrCreateWishlist(txCtx, uc.wishlistRepo, u.ID); err != nil {
			return err
		}
		return uc.wishlistRepo.AddBook(txCtx, w.ID, b.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, u, w)
}

func (uc *WishlistUseCase) view(ctx context.Context, u *user.User, w *wishlist.Wishlist) (*WishlistView, error) {
	books, err := uc.wishlistRepo.Books(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	return &WishlistView{Wishlist: w, Owner: u, Books: books}, nil
}

func findOrCreateWishlist(ctx context.Context, repo wishlist.Repository, userID uint) (*wishlist.Wishlist, error) {
	w, err := repo.FindByUserID(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, wishlist.ErrWishlistNotFound) {
		return nil, err
	}

	w = wishlist.New(userID)
	if err := repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}
