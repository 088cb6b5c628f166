package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/response"
)

const (
	ctxKeyUserID = "user_id"
	ctxKeyRole   = "role"
	ctxKeyClaims = "claims"
	ctxKeyToken  = "token"
)

// Blacklist 已登出Token检查（Redis实现）
type Blacklist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  Blacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist Blacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求请求携带有效的 Authorization: Bearer <token>
// 缺少头部返回ErrUnauthorized；格式错误、过期、签名不符或已登出返回ErrInvalidToken
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.TrimSpace(header) == "" {
			response.Error(c, apperrors.ErrUnauthorized)
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.Error(c, apperrors.ErrInvalidToken)
			return
		}

		claims, err := m.jwtManager.ParseToken(token)
		if err != nil {
			response.Error(c, err)
			return
		}

		revoked, err := m.blacklist.IsRevoked(c.Request.Context(), token)
		if err != nil {
			response.Error(c, apperrors.Wrap(err, "check token blacklist"))
			return
		}
		if revoked {
			response.Error(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(ctxKeyUserID, claims.UserID)
		c.Set(ctxKeyRole, claims.Role)
		c.Set(ctxKeyClaims, claims)
		c.Set(ctxKeyToken, token)
		c.Next()
	}
}

// RequireRole 必须放在RequireAuth之后
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ctxKeyRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		response.Error(c, apperrors.ErrForbidden)
	}
}

// GetUserID 从Context获取当前用户ID，未认证时返回空串
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxKeyUserID)
}

// GetClaims 当前Token的Claims
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(ctxKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// GetToken 当前请求的原始Token
func GetToken(c *gin.Context) string {
	return c.GetString(ctxKeyToken)
}
