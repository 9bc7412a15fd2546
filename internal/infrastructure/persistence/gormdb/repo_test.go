package gormdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/geektext/internal/domain/author"
	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/cart"
	"github.com/xiebiao/geektext/internal/domain/review"
	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/domain/wishlist"
	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createBook(t *testing.T, repo book.Repository, isbn string, authorID *uint) *book.Book {
	t.Helper()
	b, err := book.NewBook(book.Fields{
		ISBN:          isbn,
		Title:         "Cien años de soledad",
		Description:   "...",
		Genre:         "horror",
		DatePublished: "2022-05-22",
		AuthorID:      authorID,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func createUser(t *testing.T, repo user.Repository, username string) *user.User {
	t.Helper()
	u := user.NewUser(username, "hash", "", "")
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestBookRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	books := NewBookRepository(db)
	authors := NewAuthorRepository(db)

	a, err := author.NewAuthor("Gabriel", "Garcia Marquez", "Penguin", "")
	require.NoError(t, err)
	require.NoError(t, authors.Create(ctx, a))

	created := createBook(t, books, "1-87-876587-9879", &a.ID)
	assert.NotZero(t, created.ID)

	got, err := books.FindByISBN(ctx, "1-87-876587-9879")
	require.NoError(t, err)
	assert.Equal(t, "Cien años de soledad", got.Title)
	require.NotNil(t, got.AuthorID)
	assert.Equal(t, a.ID, *got.AuthorID)
	require.NotNil(t, got.DatePublished)
	assert.Equal(t, "2022-05-22", got.DatePublished.Format("2006-01-02"))
	assert.Equal(t, book.DefaultPrice, got.Price)

	t.Run("ISBN重复", func(t *testing.T) {
		dup, err := book.NewBook(book.Fields{ISBN: "1-87-876587-9879", Title: "x", Description: "x", Genre: "x"})
		require.NoError(t, err)
		err = books.Create(ctx, dup)
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)

		_, total, err := books.List(ctx, book.ListParams{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total, "只保留第一本")
	})

	t.Run("更新", func(t *testing.T) {
		got.Price = 0
		got.Genre = "magic realism"
		require.NoError(t, books.Update(ctx, got))

		reloaded, err := books.FindByID(ctx, got.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, reloaded.Price, "显式写入的0不能被默认值替换")
		assert.Equal(t, "magic realism", reloaded.Genre)
		assert.Equal(t, "Cien años de soledad", reloaded.Title)
	})

	t.Run("作者的图书", func(t *testing.T) {
		list, err := books.FindByAuthorID(ctx, a.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("删除不存在的图书", func(t *testing.T) {
		assert.ErrorIs(t, books.Delete(ctx, 9999), book.ErrBookNotFound)
		_, err := books.FindByID(ctx, got.ID)
		assert.NoError(t, err)
	})
}

func TestBookRepository_InvalidAuthor(t *testing.T) {
	books := NewBookRepository(newTestDB(t))
	missing := uint(42)

	b, err := book.NewBook(book.Fields{ISBN: "123", Title: "t", Description: "d", Genre: "g", AuthorID: &missing})
	require.NoError(t, err)

	err = books.Create(context.Background(), b)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDanglingReference), "外键约束: %v", err)
}

func TestBookRepository_List(t *testing.T) {
	ctx := context.Background()
	books := NewBookRepository(newTestDB(t))

	for _, isbn := range []string{"1", "2", "3"} {
		createBook(t, books, isbn, nil)
	}
	other, err := book.NewBook(book.Fields{ISBN: "4", Title: "Dune", Description: "d", Genre: "scifi", Publisher: "Ace"})
	require.NoError(t, err)
	require.NoError(t, books.Create(ctx, other))

	list, total, err := books.List(ctx, book.ListParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ISBN)

	list, total, err = books.List(ctx, book.ListParams{Page: 1, PageSize: 10, Keyword: "scifi"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Dune", list[0].Title)
}

func TestAuthorRepository_DeleteOrphansBooks(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	authors := NewAuthorRepository(db)
	books := NewBookRepository(db)

	a, err := author.NewAuthor("Gabriel", "Garcia Marquez", "", "")
	require.NoError(t, err)
	require.NoError(t, authors.Create(ctx, a))
	b := createBook(t, books, "111", &a.ID)

	found, err := authors.FindByName(ctx, "Gabriel", "Garcia Marquez")
	require.NoError(t, err)
	assert.Equal(t, a.ID, found.ID)

	require.NoError(t, authors.Delete(ctx, a.ID))

	_, err = authors.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)

	orphan, err := books.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.AuthorID)

	assert.ErrorIs(t, authors.Delete(ctx, a.ID), author.ErrAuthorNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(newTestDB(t))

	alice := createUser(t, users, "alice")

	err := users.Create(ctx, user.NewUser("alice", "hash", "", ""))
	assert.ErrorIs(t, err, user.ErrUsernameDuplicate)

	got, err := users.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got.FirstName = "Alice"
	require.NoError(t, users.Update(ctx, got))
	reloaded, err := users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", reloaded.FirstName)

	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = users.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestWishlistAndCartRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	books := NewBookRepository(db)
	wishlists := NewWishlistRepository(db)
	carts := NewCartRepository(db)

	alice := createUser(t, users, "alice")
	b1 := createBook(t, books, "1", nil)
	b2 := createBook(t, books, "2", nil)

	w := wishlist.New(alice.ID)
	require.NoError(t, wishlists.Create(ctx, w))
	assert.ErrorIs(t, wishlists.Create(ctx, wishlist.New(alice.ID)), wishlist.ErrWishlistExists)

	require.NoError(t, wishlists.AddBook(ctx, w.ID, b2.ID))
	require.NoError(t, wishlists.AddBook(ctx, w.ID, b1.ID))
	require.NoError(t, wishlists.AddBook(ctx, w.ID, b1.ID), "重复加入是空操作")

	list, err := wishlists.Books(ctx, w.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ISBN, "按加入顺序")

	has, err := wishlists.HasBook(ctx, w.ID, b1.ID)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, wishlists.RemoveBook(ctx, w.ID, b1.ID))
	assert.ErrorIs(t, wishlists.RemoveBook(ctx, w.ID, b1.ID), wishlist.ErrNotInWishlist)

	_, err = carts.FindByUserID(ctx, alice.ID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)

	c := cart.New(alice.ID)
	require.NoError(t, carts.Create(ctx, c))
	require.NoError(t, carts.AddBook(ctx, c.ID, b2.ID))

	// 同一本书可以同时在多个用户的心愿单/购物车中
	bob := createUser(t, users, "bob")
	bobCart := cart.New(bob.ID)
	require.NoError(t, carts.Create(ctx, bobCart))
	require.NoError(t, carts.AddBook(ctx, bobCart.ID, b2.ID))

	t.Run("删除图书移除关联", func(t *testing.T) {
		require.NoError(t, books.Delete(ctx, b2.ID))

		inCart, err := carts.Books(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, inCart)

		inWishlist, err := wishlists.Books(ctx, w.ID)
		require.NoError(t, err)
		assert.Empty(t, inWishlist)
	})

	t.Run("删除用户移除心愿单和购物车", func(t *testing.T) {
		require.NoError(t, users.Delete(ctx, alice.ID))

		_, err := wishlists.FindByUserID(ctx, alice.ID)
		assert.ErrorIs(t, err, wishlist.ErrWishlistNotFound)
		_, err = carts.FindByUserID(ctx, alice.ID)
		assert.ErrorIs(t, err, cart.ErrCartNotFound)

		// 用户名可以复用
		createUser(t, users, "alice")
	})
}

func TestReviewRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	books := NewBookRepository(db)
	ratings := NewRatingRepository(db)
	comments := NewCommentRepository(db)

	alice := createUser(t, users, "alice")
	b := createBook(t, books, "1", nil)

	r, err := review.NewRating(b.ID, alice.ID, 3)
	require.NoError(t, err)
	require.NoError(t, ratings.Upsert(ctx, r))
	firstID := r.ID

	again, err := review.NewRating(b.ID, alice.ID, 5)
	require.NoError(t, err)
	require.NoError(t, ratings.Upsert(ctx, again))
	assert.Equal(t, firstID, again.ID, "同一用户再次评分覆盖旧值")

	list, err := ratings.ListByBook(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Value)

	c, err := review.NewComment(b.ID, alice.ID, "great")
	require.NoError(t, err)
	require.NoError(t, comments.Create(ctx, c))
	assert.NotZero(t, c.ID)

	cs, err := comments.ListByBook(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, cs, 1)
	assert.Equal(t, "great", cs[0].Text)

	require.NoError(t, books.Delete(ctx, b.ID))
	cs, err = comments.ListByBook(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, cs)
}

func TestTxManager_Rollback(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tx := NewTxManager(db)
	users := NewUserRepository(db)
	carts := NewCartRepository(db)

	alice := createUser(t, users, "alice")
	boom := errors.New("boom")

	err := tx.Transaction(ctx, func(ctx context.Context) error {
		if err := carts.Create(ctx, cart.New(alice.ID)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = carts.FindByUserID(ctx, alice.ID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound, "回滚后购物车不应存在")

	err = tx.Transaction(ctx, func(ctx context.Context) error {
		return carts.Create(ctx, &cart.ShoppingCart{UserID: alice.ID, CreatedAt: time.Now()})
	})
	require.NoError(t, err)
	_, err = carts.FindByUserID(ctx, alice.ID)
	assert.NoError(t, err)
}

// MySQL默认只统计实际变化的行，值没有变化的UPDATE返回RowsAffected=0
func TestRepository_UpdateUnchangedRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:changed_rows", func(tx *gorm.DB) {
		tx.RowsAffected = 0
	}))

	authors := NewAuthorRepository(db)
	books := NewBookRepository(db)
	users := NewUserRepository(db)

	a, err := author.NewAuthor("Gabriel", "Garcia Marquez", "", "")
	require.NoError(t, err)
	require.NoError(t, authors.Create(ctx, a))
	b := createBook(t, books, "111", &a.ID)
	u := createUser(t, users, "alice")

	assert.NoError(t, authors.Update(ctx, a))
	assert.NoError(t, books.Update(ctx, b))
	assert.NoError(t, users.Update(ctx, u))
	assert.NoError(t, users.SetAdmin(ctx, u.ID, false))

	reloaded, err := books.FindByISBN(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, b.Title, reloaded.Title)
}
