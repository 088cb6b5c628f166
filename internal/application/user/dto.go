package user

import (
	"time"

	"github.com/xiebiao/bookshop/internal/domain/user"
)

// UserInfo 用户响应，不包含密码哈希
type UserInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserInfo 实体转响应
func ToUserInfo(u *user.User) *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// RegisterRequest 注册参数
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// LoginRequest 登录参数
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LoginResponse 登录结果
type LoginResponse struct {
	User         *UserInfo `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"` // Access Token有效期（秒）
}

// RefreshResponse 刷新结果
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
