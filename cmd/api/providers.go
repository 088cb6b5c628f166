package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/messaging"
	"github.com/xiebiao/bookshop/internal/interface/grpcserver"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/internal/interface/http/router"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// App 组装完成的应用
type App struct {
	Engine *gin.Engine
	GRPC   *grpcserver.Server
	Admin  *appuser.BootstrapAdminUseCase
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideHashCost 配置为0时使用默认bcrypt成本
func provideHashCost(cfg *config.Config) user.HashCost {
	if cfg.Auth.BcryptCost <= 0 {
		return user.DefaultHashCost
	}
	return user.HashCost(cfg.Auth.BcryptCost)
}

// provideLocation 统计按数据库时区解释纯日期
func provideLocation(cfg *config.Config) *time.Location {
	return cfg.Database.Location()
}

// provideLoginUseCase 会话有效期与Refresh Token一致
func provideLoginUseCase(cfg *config.Config, svc user.Service, jwtManager *jwt.Manager, sessions appuser.SessionStore) *appuser.LoginUseCase {
	return appuser.NewLoginUseCase(svc, jwtManager, sessions, cfg.JWT.RefreshTokenExpire)
}

// provideEventPublisher mq未启用时事件直接丢弃
func provideEventPublisher(cfg *config.Config, log *slog.Logger) (apporder.EventPublisher, func(), error) {
	if !cfg.MQ.Enabled {
		log.Info("order events disabled")
		return apporder.NoopPublisher{}, func() {}, nil
	}

	publisher, err := mq.NewPublisher(mq.Options{
		URL:      cfg.MQ.URL,
		Exchange: cfg.MQ.Exchange,
		AppID:    "bookshop",
	})
	if err != nil {
		return nil, nil, err
	}
	log.Info("rabbitmq connected", slog.String("exchange", cfg.MQ.Exchange))

	cleanup := func() {
		if err := publisher.Close(); err != nil {
			log.Error("close rabbitmq failed", slog.Any("error", err))
		}
	}
	return messaging.NewOrderEventPublisher(publisher, cfg.MQ.PublishTimeout, cfg.MQ.BreakerTimeout), cleanup, nil
}

// dependencyChecks 数据库和Redis探活，HTTP和gRPC共用
func dependencyChecks(db *gorm.DB, redisClient *goredis.Client) map[string]grpcserver.Check {
	return map[string]grpcserver.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}
}

// provideRouter 创建Gin引擎
func provideRouter(
	cfg *config.Config,
	log *slog.Logger,
	db *gorm.DB,
	redisClient *goredis.Client,
	authMiddleware *middleware.AuthMiddleware,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	genreHandler *handler.GenreHandler,
	orderHandler *handler.OrderHandler,
) *gin.Engine {
	checks := dependencyChecks(db, redisClient)
	return router.New(router.Options{
		Mode:   cfg.Server.Mode,
		Logger: log,
		Health: func(ctx context.Context) error {
			var errs []error
			for _, check := range checks {
				errs = append(errs, check(ctx))
			}
			return errors.Join(errs...)
		},
		EnableSwagger:  cfg.Server.Mode != gin.ReleaseMode,
		AuthMiddleware: authMiddleware,
		UserHandler:    userHandler,
		BookHandler:    bookHandler,
		GenreHandler:   genreHandler,
		OrderHandler:   orderHandler,
	})
}

// provideGRPCServer 创建gRPC健康检查服务
func provideGRPCServer(cfg *config.Config, log *slog.Logger, db *gorm.DB, redisClient *goredis.Client) *grpcserver.Server {
	return grpcserver.New(grpcserver.Options{
		Logger:   log,
		Interval: cfg.GRPC.HealthCheckInterval,
		Checks:   dependencyChecks(db, redisClient),
	})
}
