package gormdb

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// isDuplicateError 判断是否为唯一索引冲突错误
// TranslateError开启后驱动错误会转换为gorm.ErrDuplicatedKey，错误信息匹配用于兼容:
// - MySQL 1062: Duplicate entry 'xxx' for key 'yyy'
// - PostgreSQL 23505: duplicate key value violates unique constraint
// - SQLite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// isForeignKeyError 判断是否为外键约束错误
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "foreign key constraint")
}

// storageError 把数据库错误转换为业务错误
// 唯一索引冲突返回duplicate，外键错误返回DanglingReference，其余包装为存储错误
func storageError(err error, duplicate *apperrors.AppError, message string) error {
	switch {
	case duplicate != nil && isDuplicateError(err):
		return duplicate.WithCause(err)
	case isForeignKeyError(err):
		return apperrors.New(apperrors.ErrCodeDanglingReference, "引用的记录不存在").WithCause(err)
	default:
		return apperrors.Wrap(err, message)
	}
}

// notFoundOr 记录不存在时返回notFound，其余包装为存储错误
func notFoundOr(err error, notFound *apperrors.AppError, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.Wrap(err, message)
}
