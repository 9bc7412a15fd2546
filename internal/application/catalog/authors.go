package catalog

import (
	"context"

	"github.com/xiebiao/geektext/internal/domain/author"
	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/redis"
)

// AuthorUseCase 作者管理用例
// 作者没有独立的领域服务，规则都在实体上（NewAuthor/Apply）
type AuthorUseCase struct {
	txManager   *gormdb.TxManager
	authorRepo  author.Repository
	bookService book.Service
	cache       *redis.BookCache
}

// NewAuthorUseCase 创建作者用例，cache可以为nil
func NewAuthorUseCase(
	txManager *gormdb.TxManager,
	authorRepo author.Repository,
	bookService book.Service,
	cache *redis.BookCache,
) *AuthorUseCase {
	return &AuthorUseCase{
		txManager:   txManager,
		authorRepo:  authorRepo,
		bookService: bookService,
		cache:       cache,
	}
}

// CreateAuthorRequest 创建作者请求
type CreateAuthorRequest struct {
	FirstName string
	LastName  string
	Publisher string
	Bio       string
}

// AuthorBooks 作者及其全部图书
type AuthorBooks struct {
	Author *author.Author
	Books  []*book.Book
}

// Create 创建作者
func (uc *AuthorUseCase) Create(ctx context.Context, req CreateAuthorRequest) (*author.Author, error) {
	a, err := author.NewAuthor(req.FirstName, req.LastName, req.Publisher, req.Bio)
	if err != nil {
		return nil, err
	}
	if err := uc.authorRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get 查询作者详情（带图书）
func (uc *AuthorUseCase) Get(ctx context.Context, id uint) (*AuthorBooks, error) {
	a, err := uc.authorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	books, err := uc.bookService.ListByAuthor(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return &AuthorBooks{Author: a, Books: books}, nil
}

// List 查询全部作者
func (uc *AuthorUseCase) List(ctx context.Context) ([]*author.Author, error) {
	return uc.authorRepo.List(ctx)
}

// FindByName 按姓名查找作者
// 同名作者有多个时返回最早创建的一个
func (uc *AuthorUseCase) FindByName(ctx context.Context, firstName, lastName string) (*AuthorBooks, error) {
	a, err := uc.authorRepo.FindByName(ctx, firstName, lastName)
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, a.ID)
}

// Update 部分更新作者
func (uc *AuthorUseCase) Update(ctx context.Context, id uint, patch author.Patch) (*author.Author, error) {
	var a *author.Author
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		if a, err = uc.authorRepo.FindByID(txCtx, id); err != nil {
			return err
		}
		if err := a.Apply(patch); err != nil {
			return err
		}
		return uc.authorRepo.Update(txCtx, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Delete 删除作者，返回删除前的作者
// 作者的图书保留，author_id被置空；提交后清除这些图书的缓存
func (uc *AuthorUseCase) Delete(ctx context.Context, id uint) (*author.Author, error) {
	var (
		a        *author.Author
		orphaned []*book.Book
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		if a, err = uc.authorRepo.FindByID(txCtx, id); err != nil {
			return err
		}
		if orphaned, err = uc.bookService.ListByAuthor(txCtx, id); err != nil {
			return err
		}
		return uc.authorRepo.Delete(txCtx, id)
	})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		for _, b := range orphaned {
			uc.cache.Delete(ctx, b.ISBN)
		}
	}
	return a, nil
}
