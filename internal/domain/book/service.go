package book

import (
	"context"
	"errors"

	"github.com/xiebiao/geektext/pkg/validator"
)

// Service 图书领域服务接口
// 领域服务封装ISBN规则、ISBN唯一性等业务规则，不涉及作者的存在性（由用例层校验）
type Service interface {
	// Publish 校验并持久化新图书
	// 业务规则:
	// - ISBN去掉'-'和' '后必须符合配置的字符规则
	// - ISBN不能重复
	Publish(ctx context.Context, book *Book) error

	// GetByISBN 根据ISBN获取图书
	GetByISBN(ctx context.Context, isbn string) (*Book, error)

	// ListByAuthor 查询作者的全部图书
	ListByAuthor(ctx context.Context, authorID uint) ([]*Book, error)

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Update 按ISBN查找并应用部分更新
	Update(ctx context.Context, isbn string, patch Patch) (*Book, error)

	// Delete 按ISBN删除，返回删除前的快照
	Delete(ctx context.Context, isbn string) (*Book, error)
}

type service struct {
	repo Repository
	rule validator.ISBNRule
}

// NewService 创建图书领域服务
func NewService(repo Repository, rule validator.ISBNRule) Service {
	if rule == "" {
		rule = validator.ISBNNumeric
	}
	return &service{repo: repo, rule: rule}
}

// Publish 发布图书
func (s *service) Publish(ctx context.Context, b *Book) error {
	// 1. ISBN格式校验
	if err := validator.CheckISBN(b.ISBN, s.rule); err != nil {
		return err
	}

	// 2. 字段校验
	if err := b.Validate(); err != nil {
		return err
	}

	// 3. 检查ISBN是否已存在（并发情况下由唯一索引兜底）
	existing, err := s.repo.FindByISBN(ctx, b.ISBN)
	if err == nil && existing != nil {
		return ErrISBNDuplicate
	}
	if err != nil && !errors.Is(err, ErrBookNotFound) {
		return err
	}

	// 4. 持久化
	return s.repo.Create(ctx, b)
}

// GetByISBN 根据ISBN获取图书
func (s *service) GetByISBN(ctx context.Context, isbn string) (*Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// ListByAuthor 查询作者的全部图书
func (s *service) ListByAuthor(ctx context.Context, authorID uint) ([]*Book, error) {
	return s.repo.FindByAuthorID(ctx, authorID)
}

// List 分页查询
func (s *service) List(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	params.Normalize()
	return s.repo.List(ctx, params)
}

// Update 部分更新
func (s *service) Update(ctx context.Context, isbn string, patch Patch) (*Book, error) {
	b, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	if err := b.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete 删除图书
func (s *service) Delete(ctx context.Context, isbn string) (*Book, error) {
	b, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, b.ID); err != nil {
		return nil, err
	}
	return b, nil
}
