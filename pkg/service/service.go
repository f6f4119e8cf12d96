package service

import (
	"fmt"

	"github.com/gin-gonic/gin"
	logs "github.com/ranorsolutions/http-common-go/pkg/log/logger"
	"github.com/ranorsolutions/push-gateway/pkg/config"
	"github.com/ranorsolutions/push-gateway/pkg/notify"
	"github.com/ranorsolutions/push-gateway/pkg/route"
)

type Service struct {
	Config       *config.Config
	Logger       *logs.Logger
	Port         string
	HTTPHandlers []*route.Handler
}

var newLogger = logs.New

// New creates the service container for cfg.
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger, err := newLogger(cfg.Service, cfg.Version, !cfg.IsTerminal)
	if err != nil {
		return nil, fmt.Errorf("unable to create service logger: %w", err)
	}

	return &Service{
		Config: cfg,
		Logger: logger,
		Port:   cfg.Port,
	}, nil
}

// HandleErr logs err and responds with the failure envelope carrying message.
func (s *Service) HandleErr(c *gin.Context, err error, message string, code int) {
	s.Logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(code, notify.Failed(message))
}
