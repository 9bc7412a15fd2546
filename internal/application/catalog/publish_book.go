package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/geektext/internal/domain/author"
	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/geektext/pkg/metrics"
	"github.com/xiebiao/geektext/pkg/mq"
	"github.com/xiebiao/geektext/pkg/tracing"
)

const tracerName = "geektext/catalog"

// 领域事件的routing key
const (
	EventBookCreated = "catalog.book.created"
	EventBookDeleted = "catalog.book.deleted"
)

// BookEvent 图书事件消息体
type BookEvent struct {
	BookID uint   `json:"book_id"`
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
}

// PublishBookUseCase 图书上架用例
// 设计说明:
// 1. 作者可以用author_id引用，也可以内联提供姓名（按姓名查找，不存在则创建）
// 2. 作者解析和图书写入在同一个事务中，任一步失败都不会留下新作者
// 3. 事务提交后再发布事件
type PublishBookUseCase struct {
	txManager   *gormdb.TxManager
	bookService book.Service
	authorRepo  author.Repository
	events      mq.EventPublisher
}

// NewPublishBookUseCase 创建上架用例
func NewPublishBookUseCase(
	txManager *gormdb.TxManager,
	bookService book.Service,
	authorRepo author.Repository,
	events mq.EventPublisher,
) *PublishBookUseCase {
	return &PublishBookUseCase{
		txManager:   txManager,
		bookService: bookService,
		authorRepo:  authorRepo,
		events:      events,
	}
}

// PublishBookRequest 上架请求
// 没有AuthorID时使用AuthorFirstName+AuthorLastName
type PublishBookRequest struct {
	book.Fields
	AuthorFirstName string
	AuthorLastName  string
}

func (r PublishBookRequest) inlineAuthor() bool {
	return r.AuthorFirstName != "" && r.AuthorLastName != ""
}

// Execute 执行上架用例
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (b *book.Book, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "catalog.PublishBook")
	defer func() { tracing.End(span, err) }()

	if req.AuthorID == nil && !req.inlineAuthor() {
		return nil, book.ErrAuthorRequired
	}

	b, err = book.NewBook(req.Fields)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		authorID, err := uc.resolveAuthor(txCtx, req, b.Publisher)
		if err != nil {
			return err
		}
		b.AuthorID = &authorID

		return uc.bookService.Publish(txCtx, b)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.BooksCreatedTotal)
	publish(ctx, uc.events, EventBookCreated, BookEvent{BookID: b.ID, ISBN: b.ISBN, Title: b.Title})
	return b, nil
}

// resolveAuthor 返回图书要关联的作者ID
func (uc *PublishBookUseCase) resolveAuthor(ctx context.Context, req PublishBookRequest, publisher string) (uint, error) {
	if req.AuthorID != nil {
		if _, err := uc.authorRepo.FindByID(ctx, *req.AuthorID); err != nil {
			if errors.Is(err, author.ErrAuthorNotFound) {
				return 0, author.ErrAuthorMissing
			}
			return 0, err
		}
		return *req.AuthorID, nil
	}

	a, err := uc.authorRepo.FindByName(ctx, req.AuthorFirstName, req.AuthorLastName)
	if err == nil {
		return a.ID, nil
	}
	if !errors.Is(err, author.ErrAuthorNotFound) {
		return 0, err
	}

	// 新作者沿用图书的出版社
	if r := []rune(publisher); len(r) > author.MaxPublisherLen {
		publisher = string(r[:author.MaxPublisherLen])
	}
	a, err = author.NewAuthor(req.AuthorFirstName, req.AuthorLastName, publisher, "")
	if err != nil {
		return 0, err
	}
	if err := uc.authorRepo.Create(ctx, a); err != nil {
		return 0, err
	}
	return a.ID, nil
}

// publish 发布领域事件，失败只记录日志
func publish(ctx context.Context, events mq.EventPublisher, routingKey string, msg interface{}) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, routingKey, msg); err != nil {
		zap.L().Warn("发布事件失败", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
