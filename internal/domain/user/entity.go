package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role 用户角色
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User 用户实体（聚合根）
// PasswordHash 为bcrypt哈希，实体不持有明文
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser 创建新用户（工厂方法）
func NewUser(name, email, passwordHash string, role Role) *User {
	now := time.Now()
	return &User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Promote 提升为管理员
func (u *User) Promote() {
	u.Role = RoleAdmin
	u.UpdatedAt = time.Now()
}

// NormalizeEmail 邮箱统一小写并去掉首尾空白
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
