package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// HashCost bcrypt计算成本
type HashCost int

// DefaultHashCost 生产环境使用的bcrypt成本
const DefaultHashCost HashCost = 12

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt只使用前72字节
)

var (
	ErrInvalidEmail = apperrors.Validation("Email format is invalid")
	ErrWeakPassword = apperrors.Validation("Password must be 8-72 characters and contain letters and digits")
	ErrNameRequired = apperrors.Validation("Name must be 2-50 characters")
)

// Service 用户领域服务
type Service interface {
	Register(ctx context.Context, name, email, password string) (*User, error)

	// Authenticate 邮箱不存在和密码错误返回同一个错误，避免枚举邮箱
	Authenticate(ctx context.Context, email, password string) (*User, error)

	GetUser(ctx context.Context, id string) (*User, error)

	// EnsureAdmin 管理员不存在则创建，已存在的普通用户会被提升
	EnsureAdmin(ctx context.Context, name, email, password string) (*User, error)
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户领域服务
func NewService(repo Repository, cost HashCost) Service {
	c := int(cost)
	if c < bcrypt.MinCost || c > bcrypt.MaxCost {
		c = int(DefaultHashCost)
	}
	return &service{repo: repo, cost: c}
}

func (s *service) Register(ctx context.Context, name, email, password string) (*User, error) {
	u, err := s.newUser(name, email, password, RoleCustomer)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidLogin
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, apperrors.ErrInvalidLogin
		}
		return nil, apperrors.Wrap(err, "compare password hash")
	}
	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) EnsureAdmin(ctx context.Context, name, email, password string) (*User, error) {
	existing, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return existing, nil
		}
		existing.Promote()
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return nil, err
	}

	u, err := s.newUser(name, email, password, RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) newUser(name, email, password string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if n := len([]rune(name)); n < 2 || n > 50 {
		return nil, ErrNameRequired
	}
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, "hash password")
	}
	return NewUser(name, email, string(hash), role), nil
}

func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	return err == nil && addr.Address == strings.TrimSpace(email) && strings.Contains(addr.Address, ".")
}

func validatePasswordStrength(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
