package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/ranorsolutions/push-gateway/pkg/config"
	"github.com/ranorsolutions/push-gateway/pkg/firebase"
	"github.com/ranorsolutions/push-gateway/pkg/handler"
	"github.com/ranorsolutions/push-gateway/pkg/notify"
	"github.com/ranorsolutions/push-gateway/pkg/server"
	"github.com/ranorsolutions/push-gateway/pkg/service"
)

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../pkg/docs

// @title Push Gateway API
// @version 1.0
// @description Forwards push notifications to Firebase Cloud Messaging.
// @BasePath /

func main() {
	// .env is optional.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.GinMode)

	svc, err := service.New(cfg)
	if err != nil {
		return err
	}

	fbSvc, err := firebase.NewFirebaseService(ctx, svc, nil)
	if err != nil {
		svc.Logger.Error("Error initializing Firebase Admin: %v", err)
		svc.Logger.Error("Please make sure %s exists and holds a service account key", cfg.CredentialsFile)
		return err
	}

	h := handler.New(svc, notify.NewNotifier(fbSvc))
	svc.HTTPHandlers = h.Routes()

	srv, err := server.New(svc)
	if err != nil {
		return err
	}
	svc.Logger.Info("Server is running on port %s", cfg.Port)

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
