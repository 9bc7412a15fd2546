package shopping

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/cart"
	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/domain/wishlist"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/geektext/pkg/metrics"
	"github.com/xiebiao/geektext/pkg/mq"
	"github.com/xiebiao/geektext/pkg/tracing"
)

// EventWishlistMoved 心愿单图书转入购物车后发布
const EventWishlistMoved = "shopping.wishlist.moved"

// MovedEvent 转移事件消息体
type MovedEvent struct {
	UserID uint   `json:"user_id"`
	BookID uint   `json:"book_id"`
	ISBN   string `json:"isbn"`
}

// MoveToCartUseCase 心愿单 → 购物车
// 教学要点：这是项目里唯一跨两个聚合的写操作
// 流程:
//  1. 查找用户
//  2. 查找心愿单（没有心愿单 → ErrNoWishlist）
//  3. 查找图书，检查图书在心愿单中
//  4. 查找或创建购物车
//  5. 加入购物车（已在购物车中则不变）
//  6. 从心愿单移除
//
// 全部步骤在一个事务中，任何一步失败都会回滚，包括新建的购物车
type MoveToCartUseCase struct {
	txManager    *gormdb.TxManager
	userRepo     user.Repository
	bookRepo     book.Repository
	wishlistRepo wishlist.Repository
	cartRepo     cart.Repository
	events       mq.EventPublisher
}

// NewMoveToCartUseCase 创建转移用例
func NewMoveToCartUseCase(
	txManager *gormdb.TxManager,
	userRepo user.Repository,
	bookRepo book.Repository,
	wishlistRepo wishlist.Repository,
	cartRepo cart.Repository,
	events mq.EventPublisher,
) *MoveToCartUseCase {
	return &MoveToCartUseCase{
		txManager:    txManager,
		userRepo:     userRepo,
		bookRepo:     bookRepo,
		wishlistRepo: wishlistRepo,
		cartRepo:     cartRepo,
		events:       events,
	}
}

// MoveResult 转移结果
type MoveResult struct {
	Owner *user.User
	Book  *book.Book
	Cart  *cart.ShoppingCart
}

// Execute 执行转移
func (uc *MoveToCartUseCase) Execute(ctx context.Context, username, isbn string) (res *MoveResult, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "shopping.MoveToCart")
	defer func() {
		tracing.End(span, err)
		if err != nil {
			metrics.IncCounterVec(metrics.WishlistMovesTotal, "failure")
		} else {
			metrics.IncCounterVec(metrics.WishlistMovesTotal, "success")
		}
	}()

	res = &MoveResult{}
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		u, err := uc.userRepo.FindByUsername(txCtx, username)
		if err != nil {
			return err
		}
		res.Owner = u

		w, err := uc.wishlistRepo.FindByUserID(txCtx, u.ID)
		if err != nil {
			if errors.Is(err, wishlist.ErrWishlistNotFound) {
				return wishlist.ErrNoWishlist
			}
			return err
		}

		b, err := uc.bookRepo.FindByISBN(txCtx, isbn)
		if err != nil {
			return err
		}
		res.Book = b

		inWishlist, err := uc.wishlistRepo.HasBook(txCtx, w.ID, b.ID)
		if err != nil {
			return err
		}
		if !inWishlist {
			return wishlist.ErrNotInWishlist
		}

		c, err := findOrCreateCart(txCtx, uc.cartRepo, u.ID)
		if err != nil {
			return err
		}
		res.Cart = c

		if err := uc.cartRepo.AddBook(txCtx, c.ID, b.ID); err != nil {
			return err
		}
		return uc.wishlistRepo.RemoveBook(txCtx, w.ID, b.ID)
	})
	if err != nil {
		return nil, err
	}

	if uc.events != nil {
		event := MovedEvent{UserID: res.Owner.ID, BookID: res.Book.ID, ISBN: res.Book.ISBN}
		if err := uc.events.Publish(ctx, EventWishlistMoved, event); err != nil {
			zap.L().Warn("发布事件失败", zap.String("routing_key", EventWishlistMoved), zap.Error(err))
		}
	}
	return res, nil
}
