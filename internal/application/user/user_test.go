package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/domain/wishlist"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/redis"
	apperrors "github.com/xiebiao/geektext/pkg/errors"
	"github.com/xiebiao/geektext/pkg/jwt"
	"github.com/xiebiao/geektext/pkg/optional"
)

type fixture struct {
	register  *RegisterUseCase
	login     *LoginUseCase
	logout    *LogoutUseCase
	refresh   *RefreshUseCase
	profile   *ProfileUseCase
	admin     *AdminUseCase
	sessions  *redis.SessionStore
	jwt       *jwt.Manager
	books     book.Repository
	wishlists wishlist.Repository
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

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	users := gormdb.NewUserRepository(db)
	svc := user.NewServiceWithCost(users, bcrypt.MinCost)
	sessions := redis.NewSessionStore(client)
	manager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	wishlists := gormdb.NewWishlistRepository(db)

	return &fixture{
		register:  NewRegisterUseCase(svc),
		login:     NewLoginUseCase(svc, manager, sessions),
		logout:    NewLogoutUseCase(sessions),
		refresh:   NewRefreshUseCase(users, manager, sessions),
		profile:   NewProfileUseCase(gormdb.NewTxManager(db), svc, users, wishlists, gormdb.NewCartRepository(db), sessions),
		admin:     NewAdminUseCase(users),
		sessions:  sessions,
		jwt:       manager,
		books:     gormdb.NewBookRepository(db),
		wishlists: wishlists,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.register.Execute(ctx, RegisterRequest{Username: "alice", Password: "secret123", FirstName: "Alice"})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.False(t, u.IsAdmin)
	assert.NotEqual(t, "secret123", u.Password)

	_, err = f.register.Execute(ctx, RegisterRequest{Username: "alice", Password: "secret123"})
	assert.True(t, errors.Is(err, user.ErrUsernameDuplicate))

	_, err = f.login.Execute(ctx, LoginRequest{Username: "alice", Password: "wrong-pass1"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidPassword))

	res, err := f.login.Execute(ctx, LoginRequest{Username: "alice", Password: "secret123", IP: "10.0.0.1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Tokens.AccessToken)

	sess, err := f.sessions.GetSession(ctx, u.ID, res.Tokens.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "alice", sess.Username)
	assert.Equal(t, "10.0.0.1", sess.IP)

	t.Run("刷新Access Token", func(t *testing.T) {
		_, err := f.admin.Execute(ctx, "alice", true)
		require.NoError(t, err)

		renewed, err := f.refresh.Execute(ctx, res.Tokens.RefreshToken)
		require.NoError(t, err)
		claims, err := f.jwt.ParseToken(renewed.AccessToken, jwt.TokenTypeAccess)
		require.NoError(t, err)
		assert.Equal(t, res.Tokens.SessionID, claims.SessionID)
		assert.True(t, claims.IsAdmin, "新Token使用数据库中的管理员标记")

		_, err = f.refresh.Execute(ctx, res.Tokens.AccessToken)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken), "Access Token不能用来刷新")
	})

	t.Run("登出后会话和Refresh Token失效", func(t *testing.T) {
		claims, err := f.jwt.ParseToken(res.Tokens.AccessToken, jwt.TokenTypeAccess)
		require.NoError(t, err)
		require.NoError(t, f.logout.Execute(ctx, claims, res.Tokens.AccessToken))

		revoked, err := f.sessions.IsInBlacklist(ctx, res.Tokens.AccessToken)
		require.NoError(t, err)
		assert.True(t, revoked)

		_, err = f.sessions.GetSession(ctx, u.ID, res.Tokens.SessionID)
		assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

		_, err = f.refresh.Execute(ctx, res.Tokens.RefreshToken)
		assert.True(t, errors.Is(err, apperrors.ErrSessionRevoked))
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u, err := f.register.Execute(ctx, RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	p, err := f.profile.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, p.WishlistBooks)
	assert.Nil(t, p.CartBooks)

	b, err := book.NewBook(book.Fields{ISBN: "9780060883287", Title: "t", Description: "d", Genre: "g"})
	require.NoError(t, err)
	require.NoError(t, f.books.Create(ctx, b))
	w := wishlist.New(u.ID)
	require.NoError(t, f.wishlists.Create(ctx, w))
	require.NoError(t, f.wishlists.AddBook(ctx, w.ID, b.ID))

	p, err = f.profile.Get(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, p.WishlistBooks, 1)
	assert.Equal(t, "9780060883287", p.WishlistBooks[0].ISBN)

	t.Run("部分更新", func(t *testing.T) {
		p, err := f.profile.Update(ctx, "alice", user.Patch{LastName: optional.Of("Liddell")})
		require.NoError(t, err)
		assert.Equal(t, "Liddell", p.User.LastName)

		_, err = f.profile.Update(ctx, "alice", user.Patch{Password: optional.Of("short")})
		assert.True(t, errors.Is(err, apperrors.ErrWeakPassword))

		_, err = f.profile.Update(ctx, "alice", user.Patch{Password: optional.Of("newsecret9")})
		require.NoError(t, err)
		_, err = f.login.Execute(ctx, LoginRequest{Username: "alice", Password: "newsecret9"})
		assert.NoError(t, err)
	})

	t.Run("删除用户", func(t *testing.T) {
		res, err := f.login.Execute(ctx, LoginRequest{Username: "alice", Password: "newsecret9"})
		require.NoError(t, err)

		deleted, err := f.profile.Delete(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", deleted.User.Username)
		assert.Len(t, deleted.WishlistBooks, 1)

		_, err = f.profile.Get(ctx, "alice")
		assert.True(t, errors.Is(err, user.ErrUserNotFound))

		_, err = f.sessions.GetSession(ctx, u.ID, res.Tokens.SessionID)
		assert.True(t, errors.Is(err, apperrors.ErrUnauthorized), "删除用户时清理会话")

		_, err = f.profile.Delete(ctx, "alice")
		assert.True(t, errors.Is(err, user.ErrUserNotFound))

		// 用户名可以重新注册
		_, err = f.register.Execute(ctx, RegisterRequest{Username: "alice", Password: "secret123"})
		assert.NoError(t, err)
	})
}

func TestAdminUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.register.Execute(ctx, RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	u, err := f.admin.Execute(ctx, "alice", true)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin)

	p, err := f.profile.Get(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, p.User.IsAdmin, "管理员标记已写入数据库")

	u, err = f.admin.Execute(ctx, "alice", false)
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)

	_, err = f.admin.Execute(ctx, "nobody", true)
	assert.True(t, errors.Is(err, user.ErrUserNotFound))
}
