package storage

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// DriveScopes are the scopes requested for the service account.
var DriveScopes = []string{drive.DriveScope}

// LoadServiceAccount reads a service-account JSON key and returns credentials
// limited to DriveScopes.
func LoadServiceAccount(ctx context.Context, path string) (*google.Credentials, error) {
	if path == "" {
		return nil, fmt.Errorf("credentials file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, b, DriveScopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials file: %w", err)
	}

	return creds, nil
}
