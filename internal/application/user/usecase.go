package user

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/logger"
)

// SessionStore 会话与Token黑名单存储（Redis实现）
type SessionStore interface {
	SaveSession(ctx context.Context, userID string, data map[string]any, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID string) error
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// RegisterUseCase 注册普通用户
type RegisterUseCase struct {
	userService user.Service
}

func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	u, err := uc.userService.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return ToUserInfo(u), nil
}

// LoginUseCase 登录并签发Token
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
	sessionTTL   time.Duration
}

// NewLoginUseCase 会话有效期与Refresh Token一致
func NewLoginUseCase(userService user.Service, jwtManager *jwt.Manager, sessionStore SessionStore, sessionTTL time.Duration) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}

	session := map[string]any{
		"user_id":  u.ID,
		"email":    u.Email,
		"role":     string(u.Role),
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	// 会话只用于审计，写入失败不影响登录
	if err := uc.sessionStore.SaveSession(ctx, u.ID, session, uc.sessionTTL); err != nil {
		logger.FromContext(ctx).Warn("save session failed",
			slog.String("user_id", u.ID),
			slog.Any("error", err),
		)
	}

	return &LoginResponse{
		User:         ToUserInfo(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}, nil
}

// LogoutUseCase 登出：删除会话并把Token加入黑名单直到其过期
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, claims *jwt.Claims, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, claims.UserID); err != nil {
		return err
	}
	return uc.sessionStore.Revoke(ctx, accessToken, uc.jwtManager.Remaining(claims))
}

// RefreshUseCase 用Refresh Token换取Access Token，角色按当前数据重新读取
type RefreshUseCase struct {
	userService user.Service
	jwtManager  *jwt.Manager
}

func NewRefreshUseCase(userService user.Service, jwtManager *jwt.Manager) *RefreshUseCase {
	return &RefreshUseCase{userService: userService, jwtManager: jwtManager}
}

func (uc *RefreshUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	u, err := uc.userService.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	token, err := uc.jwtManager.RefreshAccessToken(refreshToken, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken: token,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

// GetProfileUseCase 当前登录用户
type GetProfileUseCase struct {
	userService user.Service
}

func NewGetProfileUseCase(userService user.Service) *GetProfileUseCase {
	return &GetProfileUseCase{userService: userService}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID string) (*UserInfo, error) {
	u, err := uc.userService.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserInfo(u), nil
}

// BootstrapAdminUseCase 启动时确保管理员账号存在
type BootstrapAdminUseCase struct {
	userService user.Service
}

func NewBootstrapAdminUseCase(userService user.Service) *BootstrapAdminUseCase {
	return &BootstrapAdminUseCase{userService: userService}
}

func (uc *BootstrapAdminUseCase) Execute(ctx context.Context, name, email, password string) (*UserInfo, error) {
	u, err := uc.userService.EnsureAdmin(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return ToUserInfo(u), nil
}
