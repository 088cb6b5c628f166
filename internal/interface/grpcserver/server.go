// Package grpcserver gRPC健康检查服务
//
// 提供标准的 grpc.health.v1.Health，供负载均衡和容器编排探活。
// 后台按固定间隔执行依赖检查，任一失败时把状态置为NOT_SERVING。
package grpcserver

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName 对外声明的服务名，空服务名代表整个进程
const ServiceName = "bookshop.v1.Bookshop"

// Check 单个依赖的探活函数
type Check func(ctx context.Context) error

// Options 服务配置
type Options struct {
	Logger   *slog.Logger
	Interval time.Duration // 检查间隔，<=0时使用15秒
	Checks   map[string]Check
}

// Server gRPC服务
type Server struct {
	grpc     *grpc.Server
	health   *health.Server
	checks   map[string]Check
	interval time.Duration
	log      *slog.Logger
}

// New 创建服务并注册健康检查和反射
func New(opts Options) *Server {
	if opts.Interval <= 0 {
		opts.Interval = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Server{
		health:   health.NewServer(),
		checks:   opts.Checks,
		interval: opts.Interval,
		log:      opts.Logger.With("component", "grpc"),
	}
	s.grpc = grpc.NewServer(grpc.ChainUnaryInterceptor(s.logUnary))

	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)
	return s
}

// Serve 阻塞直到监听器关闭
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("grpc server listening", "addr", lis.Addr().String())
	return s.grpc.Serve(lis)
}

// Watch 立即检查一次，之后按间隔检查，ctx取消时返回
func (s *Server) Watch(ctx context.Context) {
	s.probe(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

// probe 执行所有检查并更新状态
func (s *Server) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.interval/2+time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.log.Warn("dependency unhealthy", "dependency", name, "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// GracefulStop 先把所有服务标记为NOT_SERVING，再等待进行中的调用结束
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	if err != nil {
		s.log.Warn("grpc call failed", "method", info.FullMethod, "latency", time.Since(start), "error", err)
	} else {
		s.log.Debug("grpc call", "method", info.FullMethod, "latency", time.Since(start))
	}
	return resp, err
}
