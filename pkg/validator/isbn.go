// Package validator 请求数据校验工具
// 包含ISBN规则、日期解析、严格/宽松JSON解码以及基于go-playground/validator的字段校验。
package validator

import (
	"fmt"
	"strings"
	"unicode"

	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// ISBNRule ISBN字符规则
type ISBNRule string

const (
	ISBNNumeric      ISBNRule = "numeric"      // 去掉分隔符后只能是数字（默认）
	ISBNAlphanumeric ISBNRule = "alphanumeric" // 去掉分隔符后允许字母和数字
)

// ErrInvalidISBN ISBN格式不正确
var ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidFormat, "ISBN格式不正确")

// ParseISBNRule 解析配置中的ISBN规则，空字符串视为numeric
func ParseISBNRule(s string) (ISBNRule, error) {
	switch ISBNRule(strings.ToLower(strings.TrimSpace(s))) {
	case "", ISBNNumeric:
		return ISBNNumeric, nil
	case ISBNAlphanumeric:
		return ISBNAlphanumeric, nil
	default:
		return "", fmt.Errorf("未知的ISBN规则: %s", s)
	}
}

// CleanISBN 去除ISBN中的'-'和' '
// 例如: 1-87-876587-9879 → 1878765879879
func CleanISBN(isbn string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == ' ' {
			return -1
		}
		return r
	}, isbn)
}

// CheckISBN 按规则校验ISBN
// 空串、去掉分隔符后为空、含有规则之外的字符都返回ErrInvalidISBN
func CheckISBN(isbn string, rule ISBNRule) error {
	cleaned := CleanISBN(isbn)
	if cleaned == "" {
		return ErrInvalidISBN
	}

	for _, r := range cleaned {
		switch {
		case r >= '0' && r <= '9':
		case rule == ISBNAlphanumeric && r < unicode.MaxASCII && unicode.IsLetter(r):
		default:
			return ErrInvalidISBN
		}
	}
	return nil
}
