package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"参数错误", ErrInvalidParams, http.StatusBadRequest},
		{"未知字段", New(ErrCodeUnknownField, "未知字段: foo"), http.StatusBadRequest},
		{"格式错误", New(ErrCodeInvalidFormat, "ISBN格式不正确"), http.StatusBadRequest},
		{"重复记录", ErrDuplicateEntry, http.StatusConflict},
		{"ISBN重复", New(ErrCodeISBNDuplicate, "ISBN号已存在"), http.StatusConflict},
		{"外键悬空", New(ErrCodeDanglingReference, "作者不存在"), http.StatusBadRequest},
		{"未登录", ErrUnauthorized, http.StatusUnauthorized},
		{"无权限", ErrForbidden, http.StatusForbidden},
		{"不存在", New(ErrCodeBookNotFound, "图书不存在"), http.StatusNotFound},
		{"数据库错误", Wrap(errors.New("boom"), "保存失败"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestAppError_Is(t *testing.T) {
	sentinel := New(ErrCodeBookNotFound, "图书不存在")

	withCause := sentinel.WithCause(errors.New("record not found"))
	assert.ErrorIs(t, withCause, sentinel)

	wrapped := fmt.Errorf("查询失败: %w", sentinel)
	assert.ErrorIs(t, wrapped, sentinel)

	other := New(ErrCodeBookNotFound, "另一条消息")
	assert.NotErrorIs(t, other, sentinel)
}

func TestGetAppError(t *testing.T) {
	plain := errors.New("plain")
	appErr := GetAppError(plain)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.Equal(t, plain, appErr.Err)

	assert.Same(t, ErrForbidden, GetAppError(ErrForbidden))
}

func TestHasCodeAndIsNotFound(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(ErrCodeNotInWishlist, "图书不在心愿单中"))
	assert.True(t, HasCode(err, ErrCodeNotInWishlist))
	assert.False(t, HasCode(err, ErrCodeNotInCart))
	assert.False(t, HasCode(errors.New("x"), ErrCodeNotInCart))

	assert.True(t, IsNotFound(New(ErrCodeUserNotFound, "用户不存在")))
	assert.False(t, IsNotFound(ErrInvalidParams))
}
