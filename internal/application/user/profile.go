package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xiebiao/geektext/internal/domain/book"
	"github.com/xiebiao/geektext/internal/domain/cart"
	"github.com/xiebiao/geektext/internal/domain/user"
	"github.com/xiebiao/geektext/internal/domain/wishlist"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/gormdb"
	"github.com/xiebiao/geektext/internal/infrastructure/persistence/redis"
)

// Profile 用户资料，带心愿单和购物车中的图书
// 用户没有心愿单（购物车）时对应字段为nil
type Profile struct {
	User          *user.User
	WishlistBooks []*book.Book
	CartBooks     []*book.Book
}

// ProfileUseCase 用户资料用例
type ProfileUseCase struct {
	txManager    *gormdb.TxManager
	userService  user.Service
	userRepo     user.Repository
	wishlistRepo wishlist.Repository
	cartRepo     cart.Repository
	sessionStore *redis.SessionStore
}

// NewProfileUseCase 创建资料用例
func NewProfileUseCase(
	txManager *gormdb.TxManager,
	userService user.Service,
	userRepo user.Repository,
	wishlistRepo wishlist.Repository,
	cartRepo cart.Repository,
	sessionStore *redis.SessionStore,
) *ProfileUseCase {
	return &ProfileUseCase{
		txManager:    txManager,
		userService:  userService,
		userRepo:     userRepo,
		wishlistRepo: wishlistRepo,
		cartRepo:     cartRepo,
		sessionStore: sessionStore,
	}
}

// List 全部用户（管理员）
func (uc *ProfileUseCase) List(ctx context.Context) ([]*user.User, error) {
	return uc.userRepo.List(ctx)
}

// Get 查询用户资料
func (uc *ProfileUseCase) Get(ctx context.Context, username string) (*Profile, error) {
	u, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return uc.load(ctx, u)
}

// Update 部分更新用户资料（姓名、密码）
func (uc *ProfileUseCase) Update(ctx context.Context, username string, patch user.Patch) (*Profile, error) {
	var u *user.User
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		u, err = uc.userService.UpdateProfile(txCtx, username, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.load(ctx, u)
}

// Delete 删除用户，返回删除前的资料
// 心愿单、购物车、评分和评论一起删除，会话同时失效
func (uc *ProfileUseCase) Delete(ctx context.Context, username string) (*Profile, error) {
	var snapshot *Profile
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		u, err := uc.userRepo.FindByUsername(txCtx, username)
		if err != nil {
			return err
		}
		if snapshot, err = uc.load(txCtx, u); err != nil {
			return err
		}
		return uc.userRepo.Delete(txCtx, u.ID)
	})
	if err != nil {
		return nil, err
	}

	// 用户已删除，会话清理失败不影响结果（鉴权时找不到用户同样拒绝）
	if uc.sessionStore != nil {
		if err := uc.sessionStore.DeleteUserSessions(ctx, snapshot.User.ID); err != nil {
			zap.L().Warn("清理用户会话失败", zap.Uint("user_id", snapshot.User.ID), zap.Error(err))
		}
	}
	return snapshot, nil
}

func (uc *ProfileUseCase) load(ctx context.Context, u *user.User) (*Profile, error) {
	p := &Profile{User: u}

	w, err := uc.wishlistRepo.FindByUserID(ctx, u.ID)
	switch {
	case err == nil:
		if p.WishlistBooks, err = uc.wishlistRepo.Books(ctx, w.ID); err != nil {
			return nil, err
		}
	case !errors.Is(err, wishlist.ErrWishlistNotFound):
		return nil, err
	}

	c, err := uc.cartRepo.FindByUserID(ctx, u.ID)
	switch {
	case err == nil:
		if p.CartBooks, err = uc.cartRepo.Books(ctx, c.ID); err != nil {
			return nil, err
		}
	case !errors.Is(err, cart.ErrCartNotFound):
		return nil, err
	}
	return p, nil
}
