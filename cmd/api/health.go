package main

import (
	"context"
	"log/slog"
	"net"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"gorm.io/gorm"
)

const probeTimeout = 2 * time.Second

type probe func(ctx context.Context) error

// HealthServer 旁路端口上的grpc.health.v1.Health
// 每个依赖单独登记状态，服务名""表示整体状态
type HealthServer struct {
	server *grpc.Server
	health *health.Server
	probes map[string]probe
}

func newHealthServer(probes map[string]probe) *HealthServer {
	hs := health.NewServer()
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	for name := range probes {
		hs.SetServingStatus(name, healthpb.HealthCheckResponse_UNKNOWN)
	}
	return &HealthServer{server: srv, health: hs, probes: probes}
}

// provideHealthServer 探测MySQL和Redis
func provideHealthServer(db *gorm.DB, client *goredis.Client) (*HealthServer, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return newHealthServer(map[string]probe{
		"mysql": sqlDB.PingContext,
		"redis": func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}), nil
}

// Check 执行一轮探测
func (h *HealthServer) Check(ctx context.Context) {
	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	overall := healthpb.HealthCheckResponse_SERVING
	for _, name := range names {
		status := healthpb.HealthCheckResponse_SERVING

		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := h.probes[name](probeCtx)
		cancel()
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			overall = status
			slog.WarnContext(ctx, "health probe failed", "dependency", name, "error", err)
		}
		h.health.SetServingStatus(name, status)
	}
	h.health.SetServingStatus("", overall)
}

// Run 每隔interval探测一次，直到ctx取消
func (h *HealthServer) Run(ctx context.Context, interval time.Duration) {
	h.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Serve 阻塞直到Stop
func (h *HealthServer) Serve(lis net.Listener) error {
	return h.server.Serve(lis)
}

// Stop 所有服务置为NOT_SERVING后优雅停止
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
}
