package genre

import (
	"context"
	"time"
)

// Service 分类领域服务
type Service interface {
	// CreateGenre 名称在active分类中唯一
	CreateGenre(ctx context.Context, name string) (*Genre, error)

	GetGenre(ctx context.Context, id string) (*Genre, error)

	RenameGenre(ctx context.Context, id, name string) (*Genre, error)

	// DeleteGenre 软删除，不影响已引用该分类的图书
	DeleteGenre(ctx context.Context, id string) error

	ListGenres(ctx context.Context, query ListQuery) ([]*Genre, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建分类领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateGenre(ctx context.Context, name string) (*Genre, error) {
	g, err := NewGenre(name)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, g.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNameDuplicate
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) GetGenre(ctx context.Context, id string) (*Genre, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) RenameGenre(ctx context.Context, id, name string) (*Genre, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := g.Rename(name); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, g.Name, g.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNameDuplicate
	}

	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) DeleteGenre(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id, time.Now())
}

func (s *service) ListGenres(ctx context.Context, query ListQuery) ([]*Genre, int64, error) {
	return s.repo.List(ctx, query)
}
