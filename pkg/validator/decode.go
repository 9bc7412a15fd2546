package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strings"

	apperrors "github.com/xiebiao/geektext/pkg/errors"
)

// ErrEmptyBody 请求体为空
var ErrEmptyBody = apperrors.New(apperrors.ErrCodeBindError, "请求体不能为空")

// DecodeStrict 严格解码（用于创建）
// 请求体中出现结构体未声明的字段时返回UnknownField错误
func DecodeStrict(data []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return translateDecodeError(err)
	}
	if dec.More() {
		return apperrors.New(apperrors.ErrCodeBindError, "请求体只能包含一个JSON对象")
	}
	return nil
}

// PatchRule 部分更新的字段规则
// Allowed: 可更新的字段；Ignored: 关系字段或查找键，出现时静默丢弃
type PatchRule struct {
	Allowed []string
	Ignored []string
}

// DecodePatch 宽松解码（用于部分更新）
// 1. 不在Allowed也不在Ignored中的键 → UnknownField
// 2. Ignored中的键被移除，绝不会赋值到实体
// 3. 剩余的键解码到dst（dst的字段应为optional.Value，以区分"未提供"）
func DecodePatch(data []byte, rule PatchRule, dst interface{}) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyBody
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return translateDecodeError(err)
	}

	allowed := toSet(rule.Allowed)
	ignored := toSet(rule.Ignored)

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, ok := ignored[k]; ok {
			delete(raw, k)
			continue
		}
		if _, ok := allowed[k]; !ok {
			return unknownField(k)
		}
	}

	cleaned, err := json.Marshal(raw)
	if err != nil {
		return apperrors.ErrBindError.WithCause(err)
	}
	if err := json.Unmarshal(cleaned, dst); err != nil {
		return translateDecodeError(err)
	}
	return nil
}

func translateDecodeError(err error) error {
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return apperrors.Newf(apperrors.ErrCodeInvalidParams, "字段类型错误: %s", typeErr.Field).WithCause(err)
	}

	// encoding/json没有导出未知字段的错误类型，只能匹配错误信息
	const prefix = "json: unknown field "
	if msg := err.Error(); strings.HasPrefix(msg, prefix) {
		return unknownField(strings.Trim(strings.TrimPrefix(msg, prefix), `"`))
	}

	return apperrors.ErrBindError.WithCause(err)
}

func unknownField(name string) error {
	return apperrors.Newf(apperrors.ErrCodeUnknownField, "未知字段: %s", name)
}

func toSet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
