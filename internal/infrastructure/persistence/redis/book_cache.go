package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/pkg/circuitbreaker"
	"github.com/xiebiao/geektext/pkg/metrics"
)

// BookCache 图书详情缓存（按ISBN，固定TTL）
// 缓存策略：Cache-Aside，查询时先读缓存，未命中再查数据库并回填；更新、删除图书后删除缓存
// Redis调用经过熔断器，Redis故障时缓存视为未命中，请求直接回源数据库
type BookCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{
		client: client,
		ttl:    ttl,
		breaker: circuitbreaker.NewCircuitBreaker("redis-book-cache", circuitbreaker.Config{
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			ReadyToTrip: circuitbreaker.ConsecutiveFailures(5),
		}),
	}
}

func bookKey(isbn string) string {
	return "book:isbn:" + isbn
}

// cachedBook 缓存中的图书结构
type cachedBook struct {
	ID            uint       `json:"id"`
	ISBN          string     `json:"isbn"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Genre         string     `json:"genre"`
	Publisher     string     `json:"publisher"`
	Price         int        `json:"price"`
	CopiesSold    int        `json:"copies_sold"`
	DatePublished *time.Time `json:"date_published"`
	AuthorID      *uint      `json:"author_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Get 读取缓存，第二个返回值表示是否命中
func (c *BookCache) Get(ctx context.Context, isbn string) (*book.Book, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	var val []byte
	err := c.breaker.Execute(func() error {
		var err error
		val, err = c.client.Get(ctx, bookKey(isbn)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil // 未命中不算Redis故障
		}
		return err
	})
	if err != nil {
		metrics.IncCounterVec(metrics.CacheRequestsTotal, "error")
		zap.L().Warn("读取图书缓存失败", zap.String("isbn", isbn), zap.Error(err))
		return nil, false
	}
	if val == nil {
		metrics.IncCounterVec(metrics.CacheRequestsTotal, "miss")
		return nil, false
	}

	var cb cachedBook
	if err := json.Unmarshal(val, &cb); err != nil {
		metrics.IncCounterVec(metrics.CacheRequestsTotal, "error")
		return nil, false
	}
	metrics.IncCounterVec(metrics.CacheRequestsTotal, "hit")

	b := book.Book(cb)
	return &b, true
}

// Set 写入缓存，失败只记录日志
func (c *BookCache) Set(ctx context.Context, b *book.Book) {
	if c.ttl <= 0 {
		return
	}

	val, err := json.Marshal(cachedBook(*b))
	if err != nil {
		return
	}
	err = c.breaker.Execute(func() error {
		return c.client.Set(ctx, bookKey(b.ISBN), val, c.ttl).Err()
	})
	if err != nil {
		zap.L().Warn("写入图书缓存失败", zap.String("isbn", b.ISBN), zap.Error(err))
	}
}

// Delete 删除缓存，失败只记录日志（TTL到期后自然失效）
func (c *BookCache) Delete(ctx context.Context, isbn string) {
	err := c.breaker.Execute(func() error {
		return c.client.Del(ctx, bookKey(isbn)).Err()
	})
	if err != nil {
		zap.L().Warn("删除图书缓存失败", zap.String("isbn", isbn), zap.Error(err))
	}
}
