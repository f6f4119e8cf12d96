package grpc

import (
	"net"

	"github.com/ranorsolutions/push-gateway/pkg/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// GRPCService encapsulates a gRPC server exposing the standard health service.
type GRPCService struct {
	Server  *grpc.Server
	Health  *health.Server
	Service *service.Service
}

// New creates a new gRPC server instance with health checks and reflection.
func New(svc *service.Service, opts ...grpc.ServerOption) *GRPCService {
	server := grpc.NewServer(opts...)

	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, hs)
	reflection.Register(server)

	return &GRPCService{
		Server:  server,
		Health:  hs,
		Service: svc,
	}
}

// Serve marks the service SERVING and starts the gRPC server on l.
func (g *GRPCService) Serve(l net.Listener) error {
	g.Health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	g.Service.Logger.Info("gRPC server listening on %s", l.Addr().String())
	return g.Server.Serve(l)
}

// GracefulStop reports NOT_SERVING and shuts down the server cleanly.
func (g *GRPCService) GracefulStop() {
	g.Service.Logger.Info("Stopping gRPC server...")
	g.Health.Shutdown()
	g.Server.GracefulStop()
}
