package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/infrastructure/config"
	"github.com/xiebiao/geektext/internal/interface/http/middleware"
	"github.com/xiebiao/geektext/pkg/response"
)

// provideEngine 创建Gin引擎并注册路由
func provideEngine(
	cfg *config.Config,
	h *Handlers,
	auth *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(middleware.Tracing(), middleware.Logger(), middleware.Recovery(), middleware.Metrics(), limiter.Middleware())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r.Group("/api/v1"), h, auth)
	return r
}

func registerRoutes(v1 *gin.RouterGroup, h *Handlers, auth *middleware.AuthMiddleware) {
	authed := auth.RequireAuth()
	catalogAdmin := middleware.Require(user.ActionManageCatalog, "")
	owner := middleware.Require(user.ActionAccessAccount, "username")

	users := v1.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
		users.POST("/refresh", h.User.Refresh)
		users.POST("/logout", authed, h.User.Logout)
		users.GET("", authed, middleware.Require(user.ActionListUsers, ""), h.User.ListUsers)

		account := users.Group("/:username", authed, owner)
		{
			account.GET("", h.User.GetProfile)
			account.PATCH("", h.User.UpdateProfile)
			account.DELETE("", h.User.DeleteUser)

			account.POST("/wishlist", h.Shopping.CreateWishlist)
			account.GET("/wishlist", h.Shopping.GetWishlist)
			account.POST("/wishlist/books", h.Shopping.AddToWishlist)
			account.DELETE("/wishlist/books/:isbn", h.Shopping.MoveToCart)

			account.POST("/cart", h.Shopping.CreateCart)
			account.GET("/cart", h.Shopping.GetCart)
			account.POST("/cart/books", h.Shopping.AddToCart)
			account.DELETE("/cart/books/:isbn", h.Shopping.RemoveFromCart)
		}
	}

	books := v1.Group("/books")
	{
		books.GET("", h.Book.ListBooks)
		books.GET("/:isbn", h.Book.GetBook)
		books.POST("", authed, catalogAdmin, h.Book.CreateBook)
		books.PATCH("/:isbn", authed, catalogAdmin, h.Book.UpdateBook)
		books.DELETE("/:isbn", authed, catalogAdmin, h.Book.DeleteBook)

		review := middleware.Require(user.ActionReview, "")
		books.GET("/:isbn/ratings", h.Review.ListRatings)
		books.POST("/:isbn/ratings", authed, review, h.Review.RateBook)
		books.GET("/:isbn/comments", h.Review.ListComments)
		books.POST("/:isbn/comments", authed, review, h.Review.CommentBook)
	}

	authors := v1.Group("/authors")
	{
		authors.GET("", h.Author.ListAuthors)
		authors.GET("/:id", h.Author.GetAuthor)
		authors.GET("/:id/books", h.Author.AuthorBooks)
		authors.POST("", authed, catalogAdmin, h.Author.CreateAuthor)
		authors.PATCH("/:id", authed, catalogAdmin, h.Author.UpdateAuthor)
		authors.DELETE("/:id", authed, catalogAdmin, h.Author.DeleteAuthor)
	}
}
