package service

import (
	"github.com/ranorsolutions/http-common-go/pkg/log/logger"
	"github.com/ranorsolutions/push-gateway/pkg/config"
)

// NewMock creates a lightweight Service for tests, without a provider.
func NewMock() *Service {
	log, _ := logger.New("mock-service", "test", true)

	return &Service{
		Config: &config.Config{
			Port:    "0",
			Service: "mock-service",
			Version: "test",
			Topic:   "everyone",
		},
		Logger: log,
		Port:   "0",
	}
}
