package author

import (
	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// 作者领域错误定义
var (
	ErrAuthorNotFound   = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")
	ErrNameRequired     = apperrors.New(apperrors.ErrCodeInvalidParams, "作者的first_name和last_name不能为空")
	ErrNameTooLong      = apperrors.New(apperrors.ErrCodeInvalidParams, "作者姓名长度不能超过50")
	ErrPublisherTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "出版社长度不能超过50")
	ErrBioTooLong       = apperrors.New(apperrors.ErrCodeInvalidParams, "简介长度不能超过500")

	// ErrAuthorMissing 图书引用的作者不存在
	ErrAuthorMissing = apperrors.New(apperrors.ErrCodeDanglingReference, "author_id引用的作者不存在")
)
