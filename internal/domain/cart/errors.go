package cart

import (
	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// 购物车领域错误定义
var (
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")
	ErrCartExists   = apperrors.New(apperrors.ErrCodeDuplicateEntry, "用户已有购物车")
	ErrNotInCart    = apperrors.New(apperrors.ErrCodeNotInCart, "图书不在购物车中")
)
