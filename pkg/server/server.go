package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	grpcsvc "github.com/ranorsolutions/push-gateway/pkg/grpc"
	httpsvc "github.com/ranorsolutions/push-gateway/pkg/http"
	"github.com/ranorsolutions/push-gateway/pkg/service"
	"github.com/soheilhy/cmux"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

// Server multiplexes HTTP/1 and gRPC traffic over a single listener.
type Server struct {
	Listener net.Listener
	Service  *service.Service
	HTTP     *httpsvc.HTTPService
	GRPC     *grpcsvc.GRPCService

	closing atomic.Bool
}

func New(svc *service.Service, opts ...grpc.ServerOption) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	httpService, err := httpsvc.New(svc)
	if err != nil {
		return nil, fmt.Errorf("failed to create http service: %w", err)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", svc.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to create net listener: %w", err)
	}

	return &Server{
		Listener: listener,
		Service:  svc,
		HTTP:     httpService,
		GRPC:     grpcsvc.New(svc, opts...),
	}, nil
}

// Run serves until ctx is cancelled or a listener fails, then shuts down.
// A shutdown caused by ctx returns ctx.Err().
func (s *Server) Run(ctx context.Context) error {
	m := cmux.New(s.Listener)
	g, gctx := errgroup.WithContext(ctx)

	if s.servesGRPC() {
		grpcListener := m.MatchWithWriters(
			cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"),
			cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc+proto"),
		)
		g.Go(func() error { return s.ignoreClosed(s.GRPC.Serve(grpcListener)) })
	}

	httpListener := m.Match(cmux.HTTP1Fast())
	g.Go(func() error {
		err := s.HTTP.ListenAndServe(httpListener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return s.ignoreClosed(err)
	})

	g.Go(func() error { return s.ignoreClosed(m.Serve()) })

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	})

	err := g.Wait()
	s.Service.Logger.Info("run server: %v", err)
	return err
}

// Shutdown drains HTTP requests, stops gRPC and closes the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closing.Store(true)

	var err error
	if s.HTTP != nil {
		err = s.HTTP.Shutdown(ctx)
	}
	if s.GRPC != nil {
		s.GRPC.GracefulStop()
	}
	if s.Listener != nil {
		if cerr := s.Listener.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
			err = cerr
		}
	}
	return err
}

func (s *Server) ignoreClosed(err error) error {
	if err == nil || s.closing.Load() {
		return nil
	}
	return err
}

func (s *Server) servesGRPC() bool {
	return s.Service.Config == nil || s.Service.Config.ServesGRPC()
}
