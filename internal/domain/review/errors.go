package review

import (
	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// 评分评论领域错误定义
var (
	ErrInvalidRating   = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在1到5之间")
	ErrCommentRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "comment不能为空")
	ErrCommentTooLong  = apperrors.New(apperrors.ErrCodeInvalidParams, "comment长度不能超过200")
)
