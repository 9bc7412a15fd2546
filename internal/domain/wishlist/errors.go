package wishlist

import (
	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// 心愿单领域错误定义
var (
	ErrWishlistNotFound = apperrors.New(apperrors.ErrCodeWishlistNotFound, "心愿单不存在")

	// ErrWishlistExists 用户已有心愿单（user_id唯一索引冲突）
	ErrWishlistExists = apperrors.New(apperrors.ErrCodeDuplicateEntry, "用户已有心愿单")

	// ErrNoWishlist 用户还没有心愿单，与ErrNotInWishlist共用错误码
	ErrNoWishlist = apperrors.New(apperrors.ErrCodeNotInWishlist, "用户没有心愿单")

	// ErrNotInWishlist 图书不在心愿单中
	ErrNotInWishlist = apperrors.New(apperrors.ErrCodeNotInWishlist, "图书不在心愿单中")
)
