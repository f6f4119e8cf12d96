package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ranorsolutions/push-gateway/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func TestNewCreatesServer(t *testing.T) {
	g := New(service.NewMock())
	assert.NotNil(t, g.Server)
	assert.NotNil(t, g.Health)
}

func TestServe_HealthCheck(t *testing.T) {
	g := New(service.NewMock())

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- g.Serve(l) }()

	conn, err := grpc.Dial(l.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{}, grpc.WaitForReady(true))
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)

	g.GracefulStop()
	assert.NoError(t, <-done)
}

func TestGracefulStop_NotServing(t *testing.T) {
	g := New(service.NewMock())
	g.GracefulStop()

	resp, err := g.Health.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.Status)
}
