package models

import "encoding/json"

// Optional 记录 JSON 字段是否出现，用于 PATCH 的部分更新
// Set=false 表示请求体里没有这个字段；Set=true 且 Value=nil 表示显式传了 null
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some 构造一个已设置的值
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// Null 构造一个显式的 null
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON 只有字段出现在请求体时才会被调用
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON 未设置或 null 时输出 null
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
