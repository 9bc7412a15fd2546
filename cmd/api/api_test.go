package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/xiebiao/geektext/internal/application/user"
	"github.com/xiebiao/geektext/internal/infrastructure/config"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
	apperrors "github.com/xiebiao/geektext/pkg/errors"
	"github.com/xiebiao/geektext/pkg/metrics"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	admin  *userapp.AdminUseCase
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	metrics.InitMetrics()
	require.NoError(t, registerBindingRules())

	cfg, err := config.LoadFile("../../config/config.yaml")
	require.NoError(t, err)
	cfg.Server.Mode = gin.TestMode
	cfg.Server.RateLimit.RPS = 0
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	cfg.Redis.Enabled = false
	cfg.MQ.Enabled = false

	app, cleanup, err := InitializeApp(cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	// 同名的共享内存库，连接期间与应用看到同一份数据
	db, err := gormdb.NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return &testServer{t: t, engine: app.Engine, admin: userapp.NewAdminUseCase(gormdb.NewUserRepository(db))}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(s.t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

// signup 注册并登录，返回access token
func (s *testServer) signup(username string, admin bool) string {
	s.t.Helper()
	code, _ := s.do(http.MethodPost, "/api/v1/users/register", "", gin.H{"username": username, "password": "secret123"})
	require.Equal(s.t, http.StatusCreated, code)
	if admin {
		_, err := s.admin.Execute(context.Background(), username, true)
		require.NoError(s.t, err)
	}

	return s.login(username).AccessToken
}

type loginTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// login 登录已注册用户，每次调用开启一个新会话
func (s *testServer) login(username string) loginTokens {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/users/login", "", gin.H{"username": username, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, code)
	var tokens loginTokens
	require.NoError(s.t, json.Unmarshal(env.Data, &tokens))
	return tokens
}

func unmarshal(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v), string(env.Data))
}

func TestPing(t *testing.T) {
	s := newTestServer(t)
	code, env := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, env.Code)
}

func TestCatalogFlow(t *testing.T) {
	s := newTestServer(t)
	root := s.signup("root", true)
	alice := s.signup("alice", false)

	newBook := gin.H{
		"isbn":           "1-87-876587-9879",
		"title":          "Cien años de soledad",
		"description":    "novel",
		"genre":          "fiction",
		"price":          25,
		"date_published": "1967-05-30",
		"first_name":     "Gabriel",
		"last_name":      "Garcia Marquez",
	}

	t.Run("非管理员不能上架", func(t *testing.T) {
		code, env := s.do(http.MethodPost, "/api/v1/books", alice, newBook)
		assert.Equal(t, http.StatusForbidden, code)
		assert.Equal(t, apperrors.ErrCodeForbidden, env.Code)
	})

	t.Run("未登录", func(t *testing.T) {
		code, _ := s.do(http.MethodPost, "/api/v1/books", "", newBook)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	var created struct {
		ID            uint    `json:"id"`
		ISBN          string  `json:"isbn"`
		AuthorID      *uint   `json:"author_id"`
		DatePublished *string `json:"date_published"`
		Price         int     `json:"price"`
	}
	code, env := s.do(http.MethodPost, "/api/v1/books", root, newBook)
	require.Equal(t, http.StatusCreated, code, env.Message)
	unmarshal(t, env, &created)
	require.NotNil(t, created.AuthorID)
	assert.Equal(t, "1967-05-30", *created.DatePublished)

	t.Run("ISBN重复", func(t *testing.T) {
		code, env := s.do(http.MethodPost, "/api/v1/books", root, newBook)
		assert.Equal(t, http.StatusConflict, code)
		assert.Equal(t, apperrors.ErrCodeISBNDuplicate, env.Code)
	})

	t.Run("未知字段", func(t *testing.T) {
		code, env := s.do(http.MethodPost, "/api/v1/books", root, `{"isbn":"111","title":"t","description":"d","genre":"g","first_name":"a","last_name":"b","colour":"red"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, apperrors.ErrCodeUnknownField, env.Code)
	})

	t.Run("列表与详情", func(t *testing.T) {
		code, env := s.do(http.MethodGet, "/api/v1/books?sort_by=price_desc", "", nil)
		require.Equal(t, http.StatusOK, code)
		var page struct {
			Total int64             `json:"total"`
			List  []json.RawMessage `json:"list"`
		}
		unmarshal(t, env, &page)
		assert.EqualValues(t, 1, page.Total)
		assert.Len(t, page.List, 1)

		code, _ = s.do(http.MethodGet, "/api/v1/books?sort_by=title", "", nil)
		assert.Equal(t, http.StatusBadRequest, code)

		code, _ = s.do(http.MethodGet, "/api/v1/books/"+created.ISBN, "", nil)
		assert.Equal(t, http.StatusOK, code)
		code, env = s.do(http.MethodGet, "/api/v1/books/000", "", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, apperrors.ErrCodeBookNotFound, env.Code)
	})

	t.Run("部分更新", func(t *testing.T) {
		code, env := s.do(http.MethodPatch, "/api/v1/books/"+created.ISBN, root, `{"price":30,"isbn":"ignored"}`)
		require.Equal(t, http.StatusOK, code, env.Message)
		var b struct {
			ISBN  string `json:"isbn"`
			Price int    `json:"price"`
			Title string `json:"title"`
		}
		unmarshal(t, env, &b)
		assert.Equal(t, 30, b.Price)
		assert.Equal(t, created.ISBN, b.ISBN)
		assert.Equal(t, "Cien años de soledad", b.Title)

		code, env = s.do(http.MethodPatch, "/api/v1/books/"+created.ISBN, root, `{"author_id":999}`)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, apperrors.ErrCodeDanglingReference, env.Code)
	})

	t.Run("作者", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/authors/%d/books", *created.AuthorID)
		code, env := s.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, code)
		var ab struct {
			Total      int    `json:"total"`
			AuthorName string `json:"author_name"`
		}
		unmarshal(t, env, &ab)
		assert.Equal(t, 1, ab.Total)
		assert.Equal(t, "Gabriel Garcia Marquez", ab.AuthorName)

		code, _ = s.do(http.MethodGet, "/api/v1/authors?first_name=Gabriel&last_name=Garcia%20Marquez", "", nil)
		assert.Equal(t, http.StatusOK, code)
		code, _ = s.do(http.MethodGet, "/api/v1/authors/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("删除作者后缓存中的图书不再引用它", func(t *testing.T) {
		code, env := s.do(http.MethodPost, "/api/v1/books", root, gin.H{
			"isbn": "123", "title": "t", "description": "d", "genre": "g",
			"first_name": "A", "last_name": "B",
		})
		require.Equal(t, http.StatusCreated, code, env.Message)
		var b struct {
			AuthorID *uint `json:"author_id"`
		}
		unmarshal(t, env, &b)
		require.NotNil(t, b.AuthorID)

		code, _ = s.do(http.MethodGet, "/api/v1/books/123", "", nil)
		require.Equal(t, http.StatusOK, code)

		code, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/authors/%d", *b.AuthorID), root, nil)
		require.Equal(t, http.StatusOK, code)
		code, env = s.do(http.MethodGet, fmt.Sprintf("/api/v1/authors/%d", *b.AuthorID), "", nil)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, apperrors.ErrCodeAuthorNotFound, env.Code)

		code, env = s.do(http.MethodGet, "/api/v1/books/123", "", nil)
		require.Equal(t, http.StatusOK, code)
		b.AuthorID = nil
		unmarshal(t, env, &b)
		assert.Nil(t, b.AuthorID)
	})

	t.Run("评分评论", func(t *testing.T) {
		path := "/api/v1/books/" + created.ISBN
		code, _ := s.do(http.MethodPost, path+"/ratings", "", gin.H{"rating": 5})
		assert.Equal(t, http.StatusUnauthorized, code)

		code, _ = s.do(http.MethodPost, path+"/ratings", alice, gin.H{"rating": 4})
		require.Equal(t, http.StatusCreated, code)
		code, env := s.do(http.MethodPost, path+"/ratings", root, gin.H{"rating": 2})
		require.Equal(t, http.StatusCreated, code)
		var rated struct {
			Count   int64   `json:"count"`
			Average float64 `json:"average"`
		}
		unmarshal(t, env, &rated)
		assert.EqualValues(t, 2, rated.Count)
		assert.InDelta(t, 3.0, rated.Average, 1e-9)

		code, _ = s.do(http.MethodPost, path+"/ratings", alice, gin.H{"rating": 6})
		assert.Equal(t, http.StatusBadRequest, code)

		code, _ = s.do(http.MethodPost, path+"/comments", alice, gin.H{"comment": "good"})
		assert.Equal(t, http.StatusCreated, code)
		code, env = s.do(http.MethodGet, path+"/comments", "", nil)
		require.Equal(t, http.StatusOK, code)
		var comments struct {
			Total int `json:"total"`
		}
		unmarshal(t, env, &comments)
		assert.Equal(t, 1, comments.Total)
	})
}

func TestShoppingFlow(t *testing.T) {
	s := newTestServer(t)
	root := s.signup("root", true)
	alice := s.signup("alice", false)
	bob := s.signup("bob", false)

	code, env := s.do(http.MethodPost, "/api/v1/books", root, gin.H{
		"isbn": "9780000000001", "title": "t", "description": "d", "genre": "g",
		"first_name": "A", "last_name": "B",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	t.Run("只能访问自己的账户", func(t *testing.T) {
		code, _ := s.do(http.MethodGet, "/api/v1/users/alice", bob, nil)
		assert.Equal(t, http.StatusForbidden, code)
		code, _ = s.do(http.MethodGet, "/api/v1/users/alice", root, nil)
		assert.Equal(t, http.StatusOK, code)
		code, _ = s.do(http.MethodGet, "/api/v1/users", alice, nil)
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("没有心愿单时移动", func(t *testing.T) {
		code, env := s.do(http.MethodDelete, "/api/v1/users/alice/wishlist/books/9780000000001", alice, nil)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, apperrors.ErrCodeNotInWishlist, env.Code)
	})

	code, _ = s.do(http.MethodPost, "/api/v1/users/alice/wishlist/books", alice, gin.H{"isbn": "9780000000001"})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodDelete, "/api/v1/users/alice/wishlist/books/9780000000001", alice, nil)
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = s.do(http.MethodGet, "/api/v1/users/alice", alice, nil)
	require.Equal(t, http.StatusOK, code)
	var profile struct {
		Wishlist     []json.RawMessage `json:"wishlist"`
		ShoppingCart []json.RawMessage `json:"shopping_cart"`
	}
	unmarshal(t, env, &profile)
	assert.Len(t, profile.Wishlist, 0)
	assert.Len(t, profile.ShoppingCart, 1)

	code, _ = s.do(http.MethodDelete, "/api/v1/users/alice/wishlist/books/9780000000001", alice, nil)
	assert.Equal(t, http.StatusBadRequest, code, "已经移走")

	code, _ = s.do(http.MethodDelete, "/api/v1/users/alice/cart/books/9780000000001", alice, nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodDelete, "/api/v1/users/alice/cart/books/9780000000001", alice, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, apperrors.ErrCodeNotInCart, env.Code)

	t.Run("退出后Token失效", func(t *testing.T) {
		code, _ := s.do(http.MethodPost, "/api/v1/users/logout", bob, nil)
		require.Equal(t, http.StatusOK, code)
		code, _ = s.do(http.MethodGet, "/api/v1/users/bob", bob, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("Refresh Token", func(t *testing.T) {
		tokens := s.login("bob")

		code, env := s.do(http.MethodGet, "/api/v1/users/bob", tokens.RefreshToken, nil)
		assert.Equal(t, http.StatusUnauthorized, code, "Refresh Token不能当作Bearer Token")
		assert.Equal(t, apperrors.ErrCodeInvalidToken, env.Code)

		code, env = s.do(http.MethodPost, "/api/v1/users/refresh", "", gin.H{"refresh_token": tokens.RefreshToken})
		require.Equal(t, http.StatusOK, code, env.Message)
		var renewed struct {
			AccessToken string `json:"access_token"`
		}
		unmarshal(t, env, &renewed)
		code, _ = s.do(http.MethodGet, "/api/v1/users/bob", renewed.AccessToken, nil)
		assert.Equal(t, http.StatusOK, code)

		code, _ = s.do(http.MethodPost, "/api/v1/users/refresh", "", gin.H{"refresh_token": tokens.AccessToken})
		assert.Equal(t, http.StatusUnauthorized, code)

		// 登出删除会话，同一次登录的所有Token都失效
		code, _ = s.do(http.MethodPost, "/api/v1/users/logout", tokens.AccessToken, nil)
		require.Equal(t, http.StatusOK, code)
		code, _ = s.do(http.MethodGet, "/api/v1/users/bob", tokens.RefreshToken, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		code, _ = s.do(http.MethodGet, "/api/v1/users/bob", renewed.AccessToken, nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		code, env = s.do(http.MethodPost, "/api/v1/users/refresh", "", gin.H{"refresh_token": tokens.RefreshToken})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, apperrors.ErrCodeTokenExpired, env.Code)
	})
}
