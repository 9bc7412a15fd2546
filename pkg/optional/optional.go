// Package optional 提供区分"未提供"、"显式null"和"有值"三种状态的JSON字段类型，
// 用于PATCH请求的部分更新。
package optional

import (
	"bytes"
	"encoding/json"
)

// Value 可选字段
// Set=false 表示请求体中没有此键；Null=true 表示显式传入null
type Value[T any] struct {
	Set  bool
	Null bool
	V    T
}

// Of 构造一个有值的Value
func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, V: v}
}

// Null 构造一个显式null的Value
func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// Get 返回值以及是否需要写入（传入了非null值）
func (v Value[T]) Get() (T, bool) {
	return v.V, v.Set && !v.Null
}

// UnmarshalJSON 实现json.Unmarshaler
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.Null = true
		var zero T
		v.V = zero
		return nil
	}
	v.Null = false
	return json.Unmarshal(data, &v.V)
}

// MarshalJSON 实现json.Marshaler
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.Set || v.Null {
		return []byte("null"), nil
	}
	return json.Marshal(v.V)
}
