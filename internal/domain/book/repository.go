package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 实现从context中获取事务，调用方用TxManager划定事务边界
type Repository interface {
	// Create 创建图书，ISBN重复返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书（按存储的原始字符串匹配）
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// FindByAuthorID 查询某作者的全部图书
	FindByAuthorID(ctx context.Context, authorID uint) ([]*Book, error)

	// Update 保存已修改的实体
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书，同时移除心愿单/购物车中的关联以及评分和评论
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索标题、类型、出版社)
	Genre    string // 按类型精确过滤
	SortBy   string // 排序方式(price_asc, price_desc, copies_sold_desc, created_at_desc)
}

// Normalize 参数默认值与范围限制
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}
