package shared

import (
	"strings"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest 分页参数，page从1开始
type PageRequest struct {
	Page  int
	Limit int
}

// NewPageRequest 0值使用默认值，负数或超过上限返回校验错误
func NewPageRequest(page, limit int) (PageRequest, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if page < 1 {
		return PageRequest{}, apperrors.Validation("page must be at least 1")
	}
	if limit < 1 {
		return PageRequest{}, apperrors.Validation("limit must be at least 1")
	}
	if limit > MaxLimit {
		return PageRequest{}, apperrors.Newf(apperrors.ErrCodeValidation, "limit must be at most %d", MaxLimit)
	}
	return PageRequest{Page: page, Limit: limit}, nil
}

// Offset SQL偏移量
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// SortOrder 排序方向
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder 空串返回默认值desc
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return SortDesc, nil
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return "", apperrors.Newf(apperrors.ErrCodeValidation, "order must be one of [asc desc], got %q", s)
}

// Desc 是否降序
func (o SortOrder) Desc() bool {
	return o != SortAsc
}
