package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/genre"
)

// Service 图书领域服务
// 业务规则：
// - 书名在active图书中唯一
// - GenreID必须引用一个active分类（创建和修改时都校验）
type Service interface {
	CreateBook(ctx context.Context, draft Draft) (*Book, error)

	GetBook(ctx context.Context, id string) (*Book, error)

	UpdateBook(ctx context.Context, id string, patch Patch) (*Book, error)

	// DeleteBook 软删除，已有订单仍能关联到该图书
	DeleteBook(ctx context.Context, id string) error

	ListBooks(ctx context.Context, query ListQuery) ([]*Book, int64, error)
}

type service struct {
	repo   Repository
	genres genre.Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository, genres genre.Repository) Service {
	return &service{repo: repo, genres: genres}
}

func (s *service) CreateBook(ctx context.Context, draft Draft) (*Book, error) {
	b, err := NewBook(draft)
	if err != nil {
		return nil, err
	}

	g, err := s.resolveGenre(ctx, b.GenreID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureTitleFree(ctx, b.Title, ""); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	b.Genre = g
	return b, nil
}

func (s *service) GetBook(ctx context.Context, id string) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateBook(ctx context.Context, id string, patch Patch) (*Book, error) {
	if patch.Empty() {
		return nil, ErrEmptyPatch
	}

	// 行锁防止与下单并发时读到旧库存
	b, err := s.repo.LockByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prevTitle := b.Title

	if err := b.Apply(patch); err != nil {
		return nil, err
	}

	if patch.GenreID != nil {
		if _, err := s.resolveGenre(ctx, b.GenreID); err != nil {
			return nil, err
		}
	}
	if b.Title != prevTitle {
		if err := s.ensureTitleFree(ctx, b.Title, b.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, b, patch); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, b.ID)
}

func (s *service) DeleteBook(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id, time.Now())
}

func (s *service) ListBooks(ctx context.Context, query ListQuery) ([]*Book, int64, error) {
	if err := query.Validate(); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, query)
}

// resolveGenre 分类不存在时转换为422
func (s *service) resolveGenre(ctx context.Context, genreID string) (*genre.Genre, error) {
	g, err := s.genres.FindByID(ctx, genreID)
	if err != nil {
		if genre.IsNotFound(err) {
			return nil, GenreUnavailable(genreID)
		}
		return nil, err
	}
	return g, nil
}

func (s *service) ensureTitleFree(ctx context.Context, title, excludeID string) error {
	exists, err := s.repo.ExistsByTitle(ctx, title, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return ErrTitleDuplicate
	}
	return nil
}
