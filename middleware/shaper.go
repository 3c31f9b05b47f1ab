// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ReplyShaper rewrites a reply payload before it is serialized
type ReplyShaper interface {
	Shape(v any) (any, error)
}

// NewReplyShaper returns PassThrough when no fields are listed
func NewReplyShaper(redact []string) ReplyShaper {
	if len(redact) == 0 {
		return PassThrough{}
	}
	return NewFieldRedactor(redact)
}

type PassThrough struct{}

func (PassThrough) Shape(v any) (any, error) {
	return v, nil
}

// FieldRedactor drops the named keys at every depth of the JSON tree
type FieldRedactor struct {
	fields map[string]struct{}
}

func NewFieldRedactor(fields []string) *FieldRedactor {
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return &FieldRedactor{fields: set}
}

func (f *FieldRedactor) Shape(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal reply: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}

	return f.strip(tree), nil
}

func (f *FieldRedactor) strip(node any) any {
	switch n := node.(type) {
	case map[string]any:
		for k, child := range n {
			if _, drop := f.fields[k]; drop {
				delete(n, k)
				continue
			}
			n[k] = f.strip(child)
		}
		return n
	case []any:
		for i := range n {
			n[i] = f.strip(n[i])
		}
		return n
	default:
		return node
	}
}
