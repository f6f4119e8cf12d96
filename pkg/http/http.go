package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ranorsolutions/push-gateway/pkg/docs"
	"github.com/ranorsolutions/push-gateway/pkg/route"
	"github.com/ranorsolutions/push-gateway/pkg/service"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type HTTPService struct {
	Engine  *gin.Engine
	Server  *http.Server
	Service *service.Service
}

// New creates a Gin HTTP service wrapping a given `service.Service`.
// It registers every handler in svc.HTTPHandlers at its own path and allows
// cross-origin requests from any origin.
func New(svc *service.Service) (*HTTPService, error) {
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	engine := gin.New()
	engine.Use(RequestID())
	engine.Use(AccessLog(svc.Logger))
	engine.Use(gin.Recovery())

	if svc.Config != nil {
		docs.SwaggerInfo.Version = svc.Config.Version
	}
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	for _, h := range svc.HTTPHandlers {
		if err := route.Register(engine, h); err != nil {
			svc.Logger.Warn("%v", err)
		}
	}

	server := &http.Server{
		Handler:           cors.AllowAll().Handler(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &HTTPService{
		Server:  server,
		Engine:  engine,
		Service: svc,
	}, nil
}

// ListenAndServe starts serving requests on the given listener.
func (s *HTTPService) ListenAndServe(l net.Listener) error {
	s.Service.Logger.Info("HTTP server listening on %s", formatAddr(l.Addr().String()))
	return s.Server.Serve(l)
}

// Shutdown stops accepting requests and waits for in-flight ones to finish.
func (s *HTTPService) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}

// formatAddr normalizes the listener address for readable logs.
func formatAddr(addr string) string {
	re := regexp.MustCompile(`\[::\]`)
	return re.ReplaceAllString(addr, "http://localhost")
}
