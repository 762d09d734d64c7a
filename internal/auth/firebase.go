package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/shift-agent/shift-agent/config"
)

// InitializeFirebase returns the Admin SDK auth client used to verify ID
// tokens and manage owner and crew accounts.
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*auth.Client, error) {
	opts, err := firebaseOptions(cfg)
	if err != nil {
		return nil, err
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}
	return authClient, nil
}

// firebaseOptions requires a credentials file unless the Auth emulator is
// configured, in which case the SDK talks to it without credentials.
func firebaseOptions(cfg *config.FirebaseConfig) ([]option.ClientOption, error) {
	if cfg.CredentialsPath != "" {
		return []option.ClientOption{option.WithCredentialsFile(cfg.CredentialsPath)}, nil
	}
	if cfg.EmulatorHost == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required with the Auth emulator")
	}
	return nil, nil
}
