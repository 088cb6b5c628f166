package genre

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xiebiao/bookshop/internal/domain/shared"
)

const maxNameLength = 100

// Genre 图书分类
type Genre struct {
	ID        string
	Name      string
	Status    shared.RecordStatus
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // 仅用于审计，可见性以Status为准
}

// NewGenre 创建分类（工厂方法）
func NewGenre(name string) (*Genre, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Genre{
		ID:        uuid.NewString(),
		Name:      name,
		Status:    shared.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename 修改名称
func (g *Genre) Rename(name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	g.Name = name
	g.UpdatedAt = time.Now()
	return nil
}

// MarkDeleted 软删除
func (g *Genre) MarkDeleted(at time.Time) {
	g.Status = shared.StatusDeleted
	g.DeletedAt = &at
	g.UpdatedAt = at
}

// IsActive 是否可见
func (g *Genre) IsActive() bool {
	return g.Status.IsActive()
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if len(name) > maxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
