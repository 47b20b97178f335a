// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credentials builds an authenticated HTTP client for the document
// service from a service-account key. The key comes from an explicit
// configuration value on every call; nothing is cached at package level.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/pdiddy/notes2docs/internal/secrets"
	"github.com/pdiddy/notes2docs/pkg/types"
)

// Scopes grants document editing and sharing.
var Scopes = []string{
	"https://www.googleapis.com/auth/documents",
	"https://www.googleapis.com/auth/drive",
}

const serviceAccountType = "service_account"

// CredentialError reports a missing or invalid service-account key. It is
// fatal: nothing can be published without credentials.
type CredentialError struct {
	Source string
	Err    error
}

func (e *CredentialError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("credentials: %v", e.Err)
	}
	return fmt.Sprintf("credentials %s: %v", e.Source, e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// ServiceAccount is the subset of the key file checked before use.
type ServiceAccount struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	ProjectID   string `json:"project_id"`
}

// Load reads the key JSON named by cfg. A plain File wins over SealedFile.
// It returns the raw JSON and the parsed account fields.
func Load(cfg types.CredentialsConfig) ([]byte, ServiceAccount, error) {
	var (
		data   []byte
		source string
		err    error
	)
	switch {
	case cfg.File != "":
		source = cfg.File
		data, err = os.ReadFile(cfg.File)
	case cfg.SealedFile != "":
		source = cfg.SealedFile
		data, err = secrets.Open(cfg.SealedFile)
	default:
		return nil, ServiceAccount{}, &CredentialError{Err: errors.New("no service-account file configured")}
	}
	if err != nil {
		return nil, ServiceAccount{}, &CredentialError{Source: source, Err: err}
	}

	sa, err := parse(data)
	if err != nil {
		return nil, ServiceAccount{}, &CredentialError{Source: source, Err: err}
	}
	return data, sa, nil
}

func parse(data []byte) (ServiceAccount, error) {
	var sa ServiceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return ServiceAccount{}, fmt.Errorf("parsing key JSON: %w", err)
	}
	if sa.Type != serviceAccountType {
		return ServiceAccount{}, fmt.Errorf("key type %q, want %q", sa.Type, serviceAccountType)
	}
	if sa.ClientEmail == "" {
		return ServiceAccount{}, errors.New("key has no client_email")
	}
	if sa.PrivateKey == "" {
		return ServiceAccount{}, errors.New("key has no private_key")
	}
	return sa, nil
}

// NewClient returns an HTTP client that attaches service-account tokens to
// every request. Tokens are fetched lazily on the first call.
func NewClient(ctx context.Context, cfg types.CredentialsConfig, timeout time.Duration) (*http.Client, ServiceAccount, error) {
	data, sa, err := Load(cfg)
	if err != nil {
		return nil, ServiceAccount{}, err
	}

	creds, err := google.CredentialsFromJSON(ctx, data, Scopes...)
	if err != nil {
		return nil, ServiceAccount{}, &CredentialError{Source: sa.ClientEmail, Err: err}
	}

	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = timeout
	return client, sa, nil
}
