package genre

import (
	"context"
	"strings"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Repository 分类仓储接口，所有查询只返回active记录
type Repository interface {
	Create(ctx context.Context, genre *Genre) error

	// FindByID 不存在或已删除时返回NotFound(id)
	FindByID(ctx context.Context, id string) (*Genre, error)

	// ExistsByName 在active记录中检查名称（忽略大小写），excludeID用于更新时排除自身
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)

	Update(ctx context.Context, genre *Genre) error

	// SoftDelete 把状态置为deleted；记录不存在时返回NotFound(id)
	SoftDelete(ctx context.Context, id string, at time.Time) error

	List(ctx context.Context, query ListQuery) ([]*Genre, int64, error)
}

// SortField 可排序字段（白名单）
type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
)

// ParseSortField 空串返回默认created_at
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.TrimSpace(s)); f {
	case "":
		return SortByCreatedAt, nil
	case SortByName, SortByCreatedAt, SortByUpdatedAt:
		return f, nil
	}
	return "", apperrors.Newf(apperrors.ErrCodeValidation,
		"sort_by must be one of [name created_at updated_at], got %q", s)
}

// ListQuery 分类列表查询条件
type ListQuery struct {
	Name  string // 名称子串，忽略大小写
	Page  shared.PageRequest
	Sort  SortField
	Order shared.SortOrder
}
