//go:build wireinject
// +build wireinject

// Wire依赖注入配置，修改后执行 `wire gen ./cmd/api` 重新生成wire_gen.go
package main

import (
	"log/slog"

	"github.com/google/wire"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appgenre "github.com/xiebiao/bookshop/internal/application/genre"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/genre"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/rdb"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
)

// infrastructureSet 数据库、Redis、消息
var infrastructureSet = wire.NewSet(
	rdb.NewDB,
	redis.NewClient,
	provideEventPublisher,
)

// repositorySet 仓储和事务管理器
var repositorySet = wire.NewSet(
	rdb.NewUserRepository,
	rdb.NewGenreRepository,
	rdb.NewBookRepository,
	rdb.NewOrderRepository,
	rdb.NewTxManager,
	redis.NewSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.Blacklist), new(*redis.SessionStore)),
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	provideHashCost,
	user.NewService,
	genre.NewService,
	book.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	provideLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewRefreshUseCase,
	appuser.NewGetProfileUseCase,
	appuser.NewBootstrapAdminUseCase,

	appgenre.NewCreateGenreUseCase,
	appgenre.NewGetGenreUseCase,
	appgenre.NewListGenresUseCase,
	appgenre.NewUpdateGenreUseCase,
	appgenre.NewDeleteGenreUseCase,

	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,

	provideLocation,
	apporder.NewPlaceOrderUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewStatisticsUseCase,
)

// interfaceSet 中间件、处理器、路由、gRPC
var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewUserHandler,
	handler.NewGenreHandler,
	handler.NewBookHandler,
	handler.NewOrderHandler,
	provideRouter,
	provideGRPCServer,
	wire.Struct(new(App), "*"),
)

// InitializeApp 组装整个应用，cleanup按创建的逆序释放资源
func InitializeApp(cfg *config.Config, log *slog.Logger) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
