package genre

import (
	"time"

	"github.com/xiebiao/bookshop/internal/domain/genre"
)

// GenreView 分类响应
type GenreView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToGenreView 实体转响应
func ToGenreView(g *genre.Genre) *GenreView {
	return &GenreView{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// ListGenresRequest 列表参数，零值使用默认
type ListGenresRequest struct {
	Name   string
	Page   int
	Limit  int
	SortBy string
	Order  string
}
