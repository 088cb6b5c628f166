package rdb

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/genre"
	"github.com/xiebiao/bookshop/internal/domain/shared"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var genreSortColumns = map[genre.SortField]string{
	genre.SortByName:      "name",
	genre.SortByCreatedAt: "created_at",
	genre.SortByUpdatedAt: "updated_at",
}

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建分类仓储
func NewGenreRepository(db *gorm.DB) genre.Repository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, g *genre.Genre) error {
	model := fromGenreEntity(g)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return genre.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}

	g.CreatedAt = model.CreatedAt
	g.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *genreRepository) FindByID(ctx context.Context, id string) (*genre.Genre, error) {
	var model GenreModel
	err := getDB(ctx, r.db).
		Where("id = ? AND status = ?", id, activeStatus()).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genre.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toGenreEntity(&model), nil
}

func (r *genreRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	var count int64
	q := getDB(ctx, r.db).Model(&GenreModel{}).
		Where("status = ? AND LOWER(name) = LOWER(?)", activeStatus(), name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询分类失败")
	}
	return count > 0, nil
}

func (r *genreRepository) Update(ctx context.Context, g *genre.Genre) error {
	result := getDB(ctx, r.db).Model(&GenreModel{}).
		Where("id = ? AND status = ?", g.ID, activeStatus()).
		Updates(map[string]any{
			"name":       g.Name,
			"updated_at": g.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return genre.ErrNameDuplicate
		}
		return apperrors.Wrap(result.Error, "更新分类失败")
	}
	if result.RowsAffected == 0 {
		return genre.NotFound(g.ID)
	}
	return nil
}

func (r *genreRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	result := getDB(ctx, r.db).Model(&GenreModel{}).
		Where("id = ? AND status = ?", id, activeStatus()).
		Updates(map[string]any{
			"status":     string(shared.StatusDeleted),
			"deleted_at": at,
			"updated_at": at,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return genre.NotFound(id)
	}
	return nil
}

func (r *genreRepository) List(ctx context.Context, query genre.ListQuery) ([]*genre.Genre, int64, error) {
	q := getDB(ctx, r.db).Model(&GenreModel{}).Where("status = ?", activeStatus())
	if query.Name != "" {
		q = whereContains(q, "name", query.Name)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类总数失败")
	}

	column, ok := genreSortColumns[query.Sort]
	if !ok {
		column = "created_at"
	}

	var models []GenreModel
	err := orderBy(q, column, query.Order).
		Offset(query.Page.Offset()).
		Limit(query.Page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类列表失败")
	}

	genres := make([]*genre.Genre, len(models))
	for i := range models {
		genres[i] = toGenreEntity(&models[i])
	}
	return genres, total, nil
}

func fromGenreEntity(g *genre.Genre) *GenreModel {
	return &GenreModel{
		ID:        g.ID,
		Name:      g.Name,
		Status:    string(g.Status),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
		DeletedAt: copyTime(g.DeletedAt),
	}
}

func toGenreEntity(m *GenreModel) *genre.Genre {
	return &genre.Genre{
		ID:        m.ID,
		Name:      m.Name,
		Status:    toStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: copyTime(m.DeletedAt),
	}
}
