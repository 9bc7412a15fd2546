//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/google/wire"

	"github.com/xiebiao/geektext/internal/application/catalog"
	reviewapp "github.com/xiebiao/geektext/internal/application/review"
	"github.com/xiebiao/geektext/internal/application/shopping"
	userapp "github.com/xiebiao/geektext/internal/application/user"
	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/infrastructure/config"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/geektext/internal/interface/http/handler"
	"github.com/xiebiao/geektext/internal/interface/http/middleware"
)

// infrastructureSet 数据库、Redis、消息队列
var infrastructureSet = wire.NewSet(
	provideDB,
	redis.NewClient,
	redis.NewSessionStore,
	provideBookCache,
	provideEventPublisher,
	provideJWTManager,
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	gormdb.NewTxManager,
	gormdb.NewAuthorRepository,
	gormdb.NewBookRepository,
	gormdb.NewUserRepository,
	gormdb.NewWishlistRepository,
	gormdb.NewCartRepository,
	gormdb.NewRatingRepository,
	gormdb.NewCommentRepository,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	provideBookService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	catalog.NewPublishBookUseCase,
	catalog.NewGetBookUseCase,
	catalog.NewUpdateBookUseCase,
	catalog.NewDeleteBookUseCase,
	catalog.NewAuthorUseCase,
	userapp.NewRegisterUseCase,
	userapp.NewLoginUseCase,
	userapp.NewLogoutUseCase,
	userapp.NewRefreshUseCase,
	userapp.NewProfileUseCase,
	shopping.NewWishlistUseCase,
	shopping.NewCartUseCase,
	shopping.NewMoveToCartUseCase,
	reviewapp.NewReviewUseCase,
)

// interfaceSet 处理器、中间件、路由
var interfaceSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewAuthorHandler,
	handler.NewUserHandler,
	handler.NewShoppingHandler,
	handler.NewReviewHandler,
	wire.Struct(new(Handlers), "*"),
	middleware.NewAuthMiddleware,
	provideRateLimiter,
	provideEngine,
)

// InitializeApp 组装整个应用，cleanup按相反顺序释放连接
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
