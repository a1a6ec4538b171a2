package main

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func dialHealth(t *testing.T, hs *HealthServer) healthpb.HealthClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = hs.Serve(lis) }()
	t.Cleanup(hs.Stop)

	conn, err := grpc.Dial("bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func status(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.Status
}

func TestHealthServer(t *testing.T) {
	var redisDown atomic.Bool
	hs := newHealthServer(map[string]probe{
		"mysql": func(context.Context) error { return nil },
		"redis": func(context.Context) error {
			if redisDown.Load() {
				return errors.New("connection refused")
			}
			return nil
		},
	})
	client := dialHealth(t, hs)

	t.Run("探测前为UNKNOWN", func(t *testing.T) {
		assert.Equal(t, healthpb.HealthCheckResponse_UNKNOWN, status(t, client, "redis"))
	})

	t.Run("依赖全部正常", func(t *testing.T) {
		hs.Check(context.Background())
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, ""))
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, "mysql"))
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, "redis"))
	})

	t.Run("单个依赖故障", func(t *testing.T) {
		redisDown.Store(true)
		hs.Check(context.Background())
		assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client, ""))
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, "mysql"))
		assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client, "redis"))
	})

	t.Run("恢复", func(t *testing.T) {
		redisDown.Store(false)
		hs.Check(context.Background())
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, ""))
	})
}
