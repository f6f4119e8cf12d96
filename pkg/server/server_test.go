package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ranorsolutions/push-gateway/pkg/route"
	"github.com/ranorsolutions/push-gateway/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func newMockService(t *testing.T, protocol string) *service.Service {
	gin.SetMode(gin.TestMode)
	svc := service.NewMock()
	svc.Config.ServiceProtocol = protocol
	svc.HTTPHandlers = []*route.Handler{
		{
			Method:  http.MethodGet,
			Path:    "/health",
			Handler: []gin.HandlerFunc{func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) }},
		},
	}
	return svc
}

func run(t *testing.T, s *Server) (context.CancelFunc, <-chan error) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	t.Cleanup(cancel)
	return cancel, done
}

func httpHealthy(addr string) bool {
	resp, err := http.Get("http://" + addr + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == 200
}

func TestNew_CreatesServer(t *testing.T) {
	s, err := New(newMockService(t, ""))
	require.NoError(t, err)
	assert.NotNil(t, s.Listener)
	assert.NotNil(t, s.HTTP)
	assert.NotNil(t, s.GRPC)
	s.Listener.Close()
}

func TestNew_NilService(t *testing.T) {
	s, err := New(nil)
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestNew_PortInUse(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()

	svc := newMockService(t, "")
	_, port, _ := net.SplitHostPort(l.Addr().String())
	svc.Port = port

	s, err := New(svc)
	assert.Nil(t, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create net listener")
}

func TestRun_MixedProtocol(t *testing.T) {
	s, err := New(newMockService(t, ""))
	require.NoError(t, err)
	addr := s.Listener.Addr().String()

	cancel, done := run(t, s)

	require.Eventually(t, func() bool { return httpHealthy(addr) }, 2*time.Second, 20*time.Millisecond)

	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, ctxCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer ctxCancel()
	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_HTTPOnly(t *testing.T) {
	s, err := New(newMockService(t, "http"))
	require.NoError(t, err)
	addr := s.Listener.Addr().String()

	cancel, done := run(t, s)
	require.Eventually(t, func() bool { return httpHealthy(addr) }, 2*time.Second, 20*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestRun_Deadline(t *testing.T) {
	s, err := New(newMockService(t, ""))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err = s.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestShutdownCompletes(t *testing.T) {
	s, err := New(newMockService(t, ""))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, s.Shutdown(ctx))
	assert.NoError(t, s.Shutdown(ctx))
}
