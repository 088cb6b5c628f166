package genre

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/genre"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/bookshop/pkg/response"
)

// 写操作在事务中执行，名称唯一性检查与写入在同一事务内

// CreateGenreUseCase 新建分类
type CreateGenreUseCase struct {
	genreService genre.Service
	txManager    *rdb.TxManager
}

func NewCreateGenreUseCase(genreService genre.Service, txManager *rdb.TxManager) *CreateGenreUseCase {
	return &CreateGenreUseCase{genreService: genreService, txManager: txManager}
}

func (uc *CreateGenreUseCase) Execute(ctx context.Context, name string) (*GenreView, error) {
	var created *genre.Genre
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		g, err := uc.genreService.CreateGenre(ctx, name)
		created = g
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToGenreView(created), nil
}

// UpdateGenreUseCase 重命名分类
type UpdateGenreUseCase struct {
	genreService genre.Service
	txManager    *rdb.TxManager
}

func NewUpdateGenreUseCase(genreService genre.Service, txManager *rdb.TxManager) *UpdateGenreUseCase {
	return &UpdateGenreUseCase{genreService: genreService, txManager: txManager}
}

func (uc *UpdateGenreUseCase) Execute(ctx context.Context, id, name string) (*GenreView, error) {
	var updated *genre.Genre
	err := uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		g, err := uc.genreService.RenameGenre(ctx, id, name)
		updated = g
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToGenreView(updated), nil
}

// DeleteGenreUseCase 软删除分类
type DeleteGenreUseCase struct {
	genreService genre.Service
}

func NewDeleteGenreUseCase(genreService genre.Service) *DeleteGenreUseCase {
	return &DeleteGenreUseCase{genreService: genreService}
}

func (uc *DeleteGenreUseCase) Execute(ctx context.Context, id string) error {
	return uc.genreService.DeleteGenre(ctx, id)
}

// GetGenreUseCase 分类详情
type GetGenreUseCase struct {
	genreService genre.Service
}

func NewGetGenreUseCase(genreService genre.Service) *GetGenreUseCase {
	return &GetGenreUseCase{genreService: genreService}
}

func (uc *GetGenreUseCase) Execute(ctx context.Context, id string) (*GenreView, error) {
	g, err := uc.genreService.GetGenre(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToGenreView(g), nil
}

// ListGenresUseCase 分类列表
type ListGenresUseCase struct {
	genreService genre.Service
}

func NewListGenresUseCase(genreService genre.Service) *ListGenresUseCase {
	return &ListGenresUseCase{genreService: genreService}
}

func (uc *ListGenresUseCase) Execute(ctx context.Context, req ListGenresRequest) (*response.PageData[*GenreView], error) {
	page, err := shared.NewPageRequest(req.Page, req.Limit)
	if err != nil {
		return nil, err
	}
	sort, err := genre.ParseSortField(req.SortBy)
	if err != nil {
		return nil, err
	}
	order, err := shared.ParseSortOrder(req.Order)
	if err != nil {
		return nil, err
	}

	genres, total, err := uc.genreService.ListGenres(ctx, genre.ListQuery{
		Name:  req.Name,
		Page:  page,
		Sort:  sort,
		Order: order,
	})
	if err != nil {
		return nil, err
	}

	views := make([]*GenreView, len(genres))
	for i, g := range genres {
		views[i] = ToGenreView(g)
	}
	return response.NewPageData(views, total, page.Page, page.Limit), nil
}
