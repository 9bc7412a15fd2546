package book

import (
	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrAuthorRequired 创建图书必须提供author_id或作者姓名
	ErrAuthorRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "必须提供author_id或first_name+last_name")

	ErrISBNRequired        = apperrors.New(apperrors.ErrCodeInvalidParams, "isbn不能为空")
	ErrISBNTooLong         = apperrors.New(apperrors.ErrCodeInvalidParams, "isbn长度不能超过20")
	ErrTitleRequired       = apperrors.New(apperrors.ErrCodeInvalidParams, "title不能为空")
	ErrTitleTooLong        = apperrors.New(apperrors.ErrCodeInvalidParams, "title长度不能超过100")
	ErrGenreRequired       = apperrors.New(apperrors.ErrCodeInvalidParams, "genre不能为空")
	ErrGenreTooLong        = apperrors.New(apperrors.ErrCodeInvalidParams, "genre长度不能超过100")
	ErrDescriptionRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "description不能为空")
	ErrDescriptionTooLong  = apperrors.New(apperrors.ErrCodeInvalidParams, "description长度不能超过500")
	ErrPublisherTooLong    = apperrors.New(apperrors.ErrCodeInvalidParams, "publisher长度不能超过100")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格不能为负数")

	// ErrInvalidCopiesSold 无效的销量
	ErrInvalidCopiesSold = apperrors.New(apperrors.ErrCodeInvalidParams, "销量不能为负数")
)
