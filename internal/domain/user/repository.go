package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/gormdb层
// 3. 便于单元测试（用内存实现替换）
type Repository interface {
	// Create 创建用户
	// 注意：如果用户名已存在，应返回ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	// 如果不存在，返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据用户名查找用户
	// 如果不存在，返回ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// List 按ID升序返回全部用户
	List(ctx context.Context) ([]*User, error)

	// Update 更新用户信息
	Update(ctx context.Context, user *User) error

	// SetAdmin 设置管理员标记
	SetAdmin(ctx context.Context, id uint, isAdmin bool) error

	// Delete 删除用户（硬删除），同时删除其心愿单、购物车、评分和评论
	Delete(ctx context.Context, id uint) error
}
