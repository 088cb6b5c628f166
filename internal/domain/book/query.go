package book

import (
	"strings"

	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// SortField 可排序字段白名单，持久层负责映射到列
type SortField string

const (
	SortByTitle           SortField = "title"
	SortByWriter          SortField = "writer"
	SortByPublisher       SortField = "publisher"
	SortByPublicationYear SortField = "publication_year"
	SortByPrice           SortField = "price"
	SortByStockQuantity   SortField = "stock_quantity"
	SortByCreatedAt       SortField = "created_at"
	SortByUpdatedAt       SortField = "updated_at"
)

var sortFields = []SortField{
	SortByTitle, SortByWriter, SortByPublisher, SortByPublicationYear,
	SortByPrice, SortByStockQuantity, SortByCreatedAt, SortByUpdatedAt,
}

// ParseSortField 空串返回默认created_at，未知字段返回校验错误
func ParseSortField(s string) (SortField, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SortByCreatedAt, nil
	}
	for _, f := range sortFields {
		if string(f) == s {
			return f, nil
		}
	}

	names := make([]string, len(sortFields))
	for i, f := range sortFields {
		names[i] = string(f)
	}
	return "", apperrors.Newf(apperrors.ErrCodeValidation,
		"sort_by must be one of [%s], got %q", strings.Join(names, " "), s)
}

// ListQuery 图书列表查询条件
type ListQuery struct {
	Title     string // 子串匹配，忽略大小写
	Writer    string
	Publisher string
	GenreID   string // 精确匹配
	MinPrice  *int64
	MaxPrice  *int64
	MinYear   *int
	MaxYear   *int
	Page      shared.PageRequest
	Sort      SortField
	Order     shared.SortOrder
}

// Validate 区间上下界检查
func (q ListQuery) Validate() error {
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return ErrInvalidRange
	}
	if q.MinYear != nil && q.MaxYear != nil && *q.MinYear > *q.MaxYear {
		return ErrInvalidRange
	}
	return nil
}
