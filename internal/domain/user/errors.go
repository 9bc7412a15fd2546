package user

import (
	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// 用户领域错误定义
var (
	ErrUserNotFound      = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")
	ErrUsernameDuplicate = apperrors.New(apperrors.ErrCodeUsernameDuplicate, "用户名已存在")
	ErrUsernameRequired  = apperrors.New(apperrors.ErrCodeInvalidParams, "username不能为空")
	ErrUsernameTooLong   = apperrors.New(apperrors.ErrCodeInvalidParams, "username长度不能超过50")
	ErrNameTooLong       = apperrors.New(apperrors.ErrCodeInvalidParams, "姓名长度不能超过50")
)
