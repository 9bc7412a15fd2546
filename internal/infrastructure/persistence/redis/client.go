package redis

import (
	"context"
	"fmt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/geektext/internal/infrastructure/config"
)

// NewClient 创建Redis客户端
// 设计说明：
// 1. 配置连接池参数（PoolSize、MinIdleConns）
// 2. 配置超时参数（DialTimeout、ReadTimeout、WriteTimeout）
// 3. redis.enabled=false时启动进程内的miniredis，会话、黑名单和缓存走同一套代码
// 4. 测试连接可用性
// 返回的cleanup负责关闭客户端（以及内嵌的miniredis）
func NewClient(cfg *config.Config) (*redis.Client, func(), error) {
	opts := &redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}

	var embedded *miniredis.Miniredis
	if !cfg.Redis.Enabled {
		m, err := miniredis.Run()
		if err != nil {
			return nil, nil, fmt.Errorf("启动内嵌Redis失败: %w", err)
		}
		embedded = m
		opts.Addr = m.Addr()
		opts.Password = ""
		opts.DB = 0
	}

	client := redis.NewClient(opts)
	cleanup := func() {
		_ = client.Close()
		if embedded != nil {
			embedded.Close()
		}
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	zap.L().Info("Redis连接成功", zap.String("addr", opts.Addr), zap.Bool("embedded", embedded != nil))
	return client, cleanup, nil
}
