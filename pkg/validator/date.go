package validator

import (
	"strings"
	"time"

	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// DateLayout 日历日期的输出格式
const DateLayout = "2006-01-02"

// ErrInvalidDate 日期格式不正确
var ErrInvalidDate = apperrors.New(apperrors.ErrCodeInvalidFormat, "日期格式不正确（应为YYYY-MM-DD）")

var dateLayouts = []string{
	DateLayout,
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate 把日期字符串解析为日历日期（UTC零点）
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidDate
}

// FormatDate 日期 → YYYY-MM-DD，nil返回空串
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}
