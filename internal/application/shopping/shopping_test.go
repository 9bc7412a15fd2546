package shopping

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/cart"
	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/domain/wishlist"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
	apperrors "github.com/xiebiao/geektext/pkg/errors"
	"github.com/xiebiao/geektext/pkg/mq"
)

var errInjected = apperrors.Wrap(errors.New("disk full"), "写入失败")

// failingWishlistRepo RemoveBook总是失败，用来验证回滚
type failingWishlistRepo struct {
	wishlist.Repository
}

func (failingWishlistRepo) RemoveBook(context.Context, uint, uint) error {
	return errInjected
}

type fixture struct {
	db        *gorm.DB
	tx        *gormdb.TxManager
	users     user.Repository
	books     book.Repository
	wishlists wishlist.Repository
	carts     cart.Repository
	wishlist  *WishlistUseCase
	cart      *CartUseCase
	move      *MoveToCartUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gormdb.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &fixture{
		db:        db,
		tx:        gormdb.NewTxManager(db),
		users:     gormdb.NewUserRepository(db),
		books:     gormdb.NewBookRepository(db),
		wishlists: gormdb.NewWishlistRepository(db),
		carts:     gormdb.NewCartRepository(db),
	}
	f.wishlist = NewWishlistUseCase(f.tx, f.users, f.books, f.wishlists)
	f.cart = NewCartUseCase(f.tx, f.users, f.books, f.carts)
	f.move = NewMoveToCartUseCase(f.tx, f.users, f.books, f.wishlists, f.carts, mq.Nop{})
	return f
}

func (f *fixture) seed(t *testing.T, username string, isbns ...string) *user.User {
	t.Helper()
	ctx := context.Background()
	u := user.NewUser(username, "hash", "", "")
	require.NoError(t, f.users.Create(ctx, u))

	for _, isbn := range isbns {
		b, err := book.NewBook(book.Fields{ISBN: isbn, Title: "t-" + isbn, Description: "d", Genre: "g"})
		require.NoError(t, err)
		require.NoError(t, f.books.Create(ctx, b))
	}
	return u
}

func isbnsOf(books []*book.Book) []string {
	isbns := make([]string, len(books))
	for i, b := range books {
		isbns[i] = b.ISBN
	}
	return isbns
}

func TestWishlist_CreateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "alice")

	first, err := f.wishlist.Create(ctx, "alice")
	require.NoError(t, err)
	second, err := f.wishlist.Create(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.Wishlist.ID, second.Wishlist.ID)

	_, err = f.wishlist.Create(ctx, "nobody")
	assert.True(t, errors.Is(err, user.ErrUserNotFound))
}

func TestWishlist_AddBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "alice", "9780060883287", "9780140449136")

	_, err := f.wishlist.Get(ctx, "alice")
	assert.True(t, errors.Is(err, wishlist.ErrWishlistNotFound))

	view, err := f.wishlist.AddBook(ctx, "alice", "9780060883287")
	require.NoError(t, err)
	assert.Equal(t, []string{"9780060883287"}, isbnsOf(view.Books))

	// 重复加入不报错
	_, err = f.wishlist.AddBook(ctx, "alice", "9780060883287")
	require.NoError(t, err)
	view, err = f.wishlist.AddBook(ctx, "alice", "9780140449136")
	require.NoError(t, err)
	assert.Equal(t, []string{"9780060883287", "9780140449136"}, isbnsOf(view.Books))

	_, err = f.wishlist.AddBook(ctx, "alice", "0000")
	assert.True(t, errors.Is(err, book.ErrBookNotFound))
}

func TestMoveToCart_NoWishlist(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.seed(t, "alice", "9780060883287")

	_, err := f.move.Execute(ctx, "alice", "9780060883287")
	assert.True(t, errors.Is(err, wishlist.ErrNoWishlist))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotInWishlist))

	// 不会顺带创建购物车
	_, err = f.carts.FindByUserID(ctx, alice.ID)
	assert.True(t, errors.Is(err, cart.ErrCartNotFound))
}

func TestMoveToCart_NotInWishlist(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.seed(t, "alice", "9780060883287")
	_, err := f.wishlist.Create(ctx, "alice")
	require.NoError(t, err)

	_, err = f.move.Execute(ctx, "alice", "9780060883287")
	assert.True(t, errors.Is(err, wishlist.ErrNotInWishlist))

	_, err = f.carts.FindByUserID(ctx, alice.ID)
	assert.True(t, errors.Is(err, cart.ErrCartNotFound))
}

func TestMoveToCart_LookupErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "alice")
	_, err := f.wishlist.Create(ctx, "alice")
	require.NoError(t, err)

	_, err = f.move.Execute(ctx, "bob", "9780060883287")
	assert.True(t, errors.Is(err, user.ErrUserNotFound))

	_, err = f.move.Execute(ctx, "alice", "9780060883287")
	assert.True(t, errors.Is(err, book.ErrBookNotFound))
}

func TestMoveToCart_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "alice", "9780060883287")
	_, err := f.wishlist.AddBook(ctx, "alice", "9780060883287")
	require.NoError(t, err)

	res, err := f.move.Execute(ctx, "alice", "9780060883287")
	require.NoError(t, err)
	assert.Equal(t, "9780060883287", res.Book.ISBN)

	w, err := f.wishlist.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, w.Books)

	c, err := f.cart.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"9780060883287"}, isbnsOf(c.Books))

	// 再次转移同一本书
	_, err = f.move.Execute(ctx, "alice", "9780060883287")
	assert.True(t, errors.Is(err, wishlist.ErrNotInWishlist))
}

func TestMoveToCart_AlreadyInCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "alice", "9780060883287")
	_, err := f.cart.AddBook(ctx, "alice", "9780060883287")
	require.NoError(t, err)
	_, err = f.wishlist.AddBook(ctx, "alice", "9780060883287")
	require.NoError(t, err)

	_, err = f.move.Execute(ctx, "alice", "9780060883287")
	require.NoError(t, err)

	c, err := f.cart.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, c.Books, 1)
}

func TestMoveToCart_RollbackOnFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.seed(t, "alice", "9780060883287")
	_, err := f.wishlist.AddBook(ctx, "alice", "9780060883287")
	require.NoError(t, err)

	move := NewMoveToCartUseCase(f.tx, f.users, f.books, failingWishlistRepo{f.wishlists}, f.carts, nil)
	_, err = move.Execute(ctx, "alice", "9780060883287")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabaseError))

	// 购物车创建和加入都被回滚
	_, err = f.carts.FindByUserID(ctx, alice.ID)
	assert.True(t, errors.Is(err, cart.ErrCartNotFound))

	w, err := f.wishlist.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"9780060883287"}, isbnsOf(w.Books))
}

func TestCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seed(t, "alice", "9780060883287")

	_, err := f.cart.RemoveBook(ctx, "alice", "9780060883287")
	assert.True(t, errors.Is(err, cart.ErrNotInCart), "没有购物车")

	first, err := f.cart.Create(ctx, "alice")
	require.NoError(t, err)
	second, err := f.cart.Create(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.Cart.ID, second.Cart.ID)

	_, err = f.cart.RemoveBook(ctx, "alice", "9780060883287")
	assert.True(t, errors.Is(err, cart.ErrNotInCart))

	view, err := f.cart.AddBook(ctx, "alice", "9780060883287")
	require.NoError(t, err)
	assert.Len(t, view.Books, 1)

	view, err = f.cart.RemoveBook(ctx, "alice", "9780060883287")
	require.NoError(t, err)
	assert.Empty(t, view.Books)
}
