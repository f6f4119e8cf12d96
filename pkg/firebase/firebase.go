package firebase

import (
	"context"
	"fmt"

	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/ranorsolutions/push-gateway/pkg/config"
	"github.com/ranorsolutions/push-gateway/pkg/service"
	"google.golang.org/api/option"
)

// MessagingAPI defines the subset of Firebase Cloud Messaging methods we use.
// This makes it mockable in tests.
type MessagingAPI interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FirebaseService wraps a base service with an initialized FCM client.
type FirebaseService struct {
	Base      *service.Service
	Messaging MessagingAPI
	Config    *FirebaseConfig
	ProjectID string
}

// FirebaseConfig defines where the service account credential is read from.
type FirebaseConfig struct {
	CredentialsPath   string
	CredentialsSecret string
	ProjectID         string
}

// ConfigFrom extracts the Firebase settings from the process config.
func ConfigFrom(cfg *config.Config) *FirebaseConfig {
	return &FirebaseConfig{
		CredentialsPath:   cfg.CredentialsFile,
		CredentialsSecret: cfg.CredentialsSecret,
		ProjectID:         cfg.ProjectID,
	}
}

var newMessaging = func(ctx context.Context, cfg *fb.Config, opts ...option.ClientOption) (MessagingAPI, error) {
	app, err := fb.NewApp(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase Messaging: %w", err)
	}
	return client, nil
}

// NewFirebaseService resolves the credential and initializes the messaging client.
func NewFirebaseService(ctx context.Context, base *service.Service, cfg *FirebaseConfig) (*FirebaseService, error) {
	if base == nil {
		return nil, fmt.Errorf("base service is required")
	}
	if cfg == nil {
		if base.Config == nil {
			return nil, fmt.Errorf("firebase config is required")
		}
		cfg = ConfigFrom(base.Config)
	}

	creds, err := loadCredentials(ctx, cfg)
	if err != nil {
		return nil, err
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = creds.file.ProjectID
	}

	client, err := newMessaging(ctx, &fb.Config{ProjectID: projectID}, option.WithCredentialsJSON(creds.raw))
	if err != nil {
		return nil, err
	}

	base.Logger.Info("Firebase initialized for project %s (credentials from %s)", projectID, creds.source)

	return &FirebaseService{
		Base:      base,
		Messaging: client,
		Config:    cfg,
		ProjectID: projectID,
	}, nil
}

// Send delivers message through FCM and returns the provider message id.
// Errors are returned unwrapped so the messaging.Is* predicates keep working.
func (fs *FirebaseService) Send(ctx context.Context, message *messaging.Message) (string, error) {
	return fs.Messaging.Send(ctx, message)
}
