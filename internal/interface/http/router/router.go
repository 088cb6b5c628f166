// Package router 组装Gin引擎：全局中间件、健康检查、文档和业务路由
package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/logger"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/response"
)

// HealthCheck 依赖探活，返回nil表示健康
type HealthCheck func(ctx context.Context) error

// Options 路由所需的全部依赖
type Options struct {
	Mode           string // debug | release | test
	Logger         *slog.Logger
	Health         HealthCheck
	EnableSwagger  bool
	AuthMiddleware *middleware.AuthMiddleware
	UserHandler    *handler.UserHandler
	BookHandler    *handler.BookHandler
	GenreHandler   *handler.GenreHandler
	OrderHandler   *handler.OrderHandler
}

// New 创建Gin引擎并注册全部路由
func New(opts Options) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(opts.Mode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(opts.Logger),
		middleware.Tracing(),
		middleware.Metrics(),
	)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.New(apperrors.ErrCodeNotFound, "Route not found"))
	})

	r.GET("/ping", ping(opts.Health))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	if opts.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	auth := opts.AuthMiddleware.RequireAuth()
	adminOnly := middleware.RequireRole(string(user.RoleAdmin))

	v1 := r.Group("/api/v1")
	{
		// 认证模块
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", opts.UserHandler.Register)
			authGroup.POST("/login", opts.UserHandler.Login)
			authGroup.POST("/refresh", opts.UserHandler.Refresh)
			authGroup.POST("/logout", auth, opts.UserHandler.Logout)
			authGroup.GET("/me", auth, opts.UserHandler.Me)
		}

		// 图书模块，全部需要登录
		books := v1.Group("/books", auth)
		{
			books.POST("", opts.BookHandler.Create)
			books.GET("", opts.BookHandler.List)
			books.GET("/:id", opts.BookHandler.Get)
			books.PATCH("/:id", opts.BookHandler.Update)
			books.DELETE("/:id", opts.BookHandler.Delete)
		}

		// 分类模块，查询公开，写操作仅管理员
		genres := v1.Group("/genres")
		{
			genres.GET("", opts.GenreHandler.List)
			genres.GET("/:id", opts.GenreHandler.Get)
			genres.POST("", auth, adminOnly, opts.GenreHandler.Create)
			genres.PATCH("/:id", auth, adminOnly, opts.GenreHandler.Update)
			genres.DELETE("/:id", auth, adminOnly, opts.GenreHandler.Delete)
		}

		// 交易模块
		transactions := v1.Group("/transactions", auth)
		{
			transactions.POST("", opts.OrderHandler.Place)
			transactions.GET("", opts.OrderHandler.List)
			transactions.GET("/statistics", opts.OrderHandler.Statistics)
			transactions.GET("/:id", opts.OrderHandler.Get)
		}
	}

	return r
}

// ping 健康检查，依赖不可用时返回503
func ping(check HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				logger.FromContext(c.Request.Context()).Warn("health check failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, response.Response{
					Success: false,
					Message: "Service unavailable",
					Data:    gin.H{"status": "unhealthy"},
				})
				return
			}
		}
		response.Success(c, "pong", gin.H{"status": "healthy"})
	}
}
