package main

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/infrastructure/config"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/geektext/internal/interface/http/handler"
	"github.com/xiebiao/geektext/internal/interface/http/middleware"
	"github.com/xiebiao/geektext/pkg/jwt"
	"github.com/xiebiao/geektext/pkg/mq"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Engine *gin.Engine
}

// Handlers 全部HTTP处理器
type Handlers struct {
	Book     *handler.BookHandler
	Author   *handler.AuthorHandler
	User     *handler.UserHandler
	Shopping *handler.ShoppingHandler
	Review   *handler.ReviewHandler
}

// provideDB 连接数据库并自动迁移
func provideDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gormdb.NewDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := gormdb.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideBookService(repo book.Repository, cfg *config.Config) book.Service {
	return book.NewService(repo, cfg.Catalog.Rule())
}

func provideBookCache(client *goredis.Client, cfg *config.Config) *redis.BookCache {
	return redis.NewBookCache(client, cfg.Catalog.CacheTTL)
}

func provideRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst)
}

// provideEventPublisher mq.enabled=false时事件直接丢弃
func provideEventPublisher(cfg *config.Config) (mq.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		return mq.Nop{}, func() {}, nil
	}

	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType)
	if err != nil {
		return nil, nil, err
	}
	return p, func() {
		if err := p.Close(); err != nil {
			zap.L().Warn("关闭MQ连接失败", zap.Error(err))
		}
	}, nil
}
