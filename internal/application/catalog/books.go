package catalog

import (
	"context"
	"errors"

	"github.com/xiebiao/geektext/internal/domain/author"
	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/geektext/pkg/mq"
	"github.com/xiebiao/geektext/pkg/tracing"
)

// GetBookUseCase 图书详情与列表查询
// 详情走Cache-Aside：先读Redis，未命中再查库并回填
type GetBookUseCase struct {
	bookService book.Service
	cache       *redis.BookCache
}

// NewGetBookUseCase 创建查询用例，cache可以为nil
func NewGetBookUseCase(bookService book.Service, cache *redis.BookCache) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService, cache: cache}
}

// Execute 按ISBN查询图书
func (uc *GetBookUseCase) Execute(ctx context.Context, isbn string) (*book.Book, error) {
	if uc.cache != nil {
		if b, ok := uc.cache.Get(ctx, isbn); ok {
			return b, nil
		}
	}

	b, err := uc.bookService.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, b)
	}
	return b, nil
}

// List 分页查询图书
func (uc *GetBookUseCase) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, book.ListParams, error) {
	params.Normalize()
	books, total, err := uc.bookService.List(ctx, params)
	if err != nil {
		return nil, 0, params, err
	}
	return books, total, params, nil
}

// UpdateBookUseCase 图书部分更新用例
type UpdateBookUseCase struct {
	txManager   *gormdb.TxManager
	bookService book.Service
	authorRepo  author.Repository
	cache       *redis.BookCache
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(
	txManager *gormdb.TxManager,
	bookService book.Service,
	authorRepo author.Repository,
	cache *redis.BookCache,
) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		txManager:   txManager,
		bookService: bookService,
		authorRepo:  authorRepo,
		cache:       cache,
	}
}

// Execute 执行更新
// 1. 新的author_id必须引用已存在的作者
// 2. 提交后删除缓存
func (uc *UpdateBookUseCase) Execute(ctx context.Context, isbn string, patch book.Patch) (b *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog.UpdateBook")
	defer func() { tracing.End(span, err) }()

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if authorID, ok := patch.NewAuthorID(); ok {
			if _, err := uc.authorRepo.FindByID(txCtx, authorID); err != nil {
				if errors.Is(err, author.ErrAuthorNotFound) {
					return author.ErrAuthorMissing
				}
				return err
			}
		}

		var err error
		b, err = uc.bookService.Update(txCtx, isbn, patch)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Delete(ctx, isbn)
	}
	return b, nil
}

// DeleteBookUseCase 删除图书用例，返回删除前的图书
type DeleteBookUseCase struct {
	txManager   *gormdb.TxManager
	bookService book.Service
	cache       *redis.BookCache
	events      mq.EventPublisher
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(
	txManager *gormdb.TxManager,
	bookService book.Service,
	cache *redis.BookCache,
	events mq.EventPublisher,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		txManager:   txManager,
		bookService: bookService,
		cache:       cache,
		events:      events,
	}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, isbn string) (b *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog.DeleteBook")
	defer func() { tracing.End(span, err) }()

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		b, err = uc.bookService.Delete(txCtx, isbn)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Delete(ctx, isbn)
	}
	publish(ctx, uc.events, EventBookDeleted, BookEvent{BookID: b.ID, ISBN: b.ISBN, Title: b.Title})
	return b, nil
}
