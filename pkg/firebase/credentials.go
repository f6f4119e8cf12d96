package firebase

import (
	"context"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// credentialsFile is the unmarshalled representation of a service account key.
type credentialsFile struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	TokenURL     string `json:"token_uri"`
}

type credentials struct {
	raw    []byte
	file   credentialsFile
	source string
}

var fetchSecret = accessSecretVersion

func accessSecretVersion(ctx context.Context, name string) ([]byte, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	defer client.Close()

	result, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to access secret version: %w", err)
	}
	return result.Payload.Data, nil
}

func loadCredentials(ctx context.Context, cfg *FirebaseConfig) (*credentials, error) {
	var (
		raw    []byte
		source string
		err    error
	)

	if cfg.CredentialsSecret != "" {
		source = cfg.CredentialsSecret
		raw, err = fetchSecret(ctx, cfg.CredentialsSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to load credentials from %s: %w", source, err)
		}
	} else {
		source = cfg.CredentialsPath
		raw, err = os.ReadFile(cfg.CredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
	}

	var file credentialsFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("malformed credentials in %s: %w", source, err)
	}
	if err := file.validate(); err != nil {
		return nil, fmt.Errorf("malformed credentials in %s: %w", source, err)
	}

	return &credentials{raw: raw, file: file, source: source}, nil
}

func (f credentialsFile) validate() error {
	if f.Type != "service_account" {
		return fmt.Errorf("expected a service_account key, got type %q", f.Type)
	}

	var missing []string
	if f.ProjectID == "" {
		missing = append(missing, "project_id")
	}
	if f.PrivateKey == "" {
		missing = append(missing, "private_key")
	}
	if f.ClientEmail == "" {
		missing = append(missing, "client_email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return parsePrivateKey(f.PrivateKey)
}

// parsePrivateKey accepts the PKCS#8 or PKCS#1 PEM keys the oauth2 JWT source signs with.
func parsePrivateKey(key string) error {
	block, _ := pem.Decode([]byte(key))
	if block == nil {
		return fmt.Errorf("private_key is not PEM encoded")
	}
	if _, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		return nil
	}
	if _, err := x509.ParsePKCS1PrivateKey(block.Bytes); err != nil {
		return fmt.Errorf("invalid private_key: %w", err)
	}
	return nil
}
