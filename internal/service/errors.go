package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUserNotFound 表示 id 無法對應到現存使用者（格式錯誤的 id 視同不存在）
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken 表示 email 已被其他使用者使用
	ErrEmailTaken = errors.New("email already exists")
)

// ValidationError 列出驗證失敗的欄位與原因
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
