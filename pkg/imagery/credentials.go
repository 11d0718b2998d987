package imagery

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// credentialsEnvVar carries the service-account JSON blob in deployed
// environments, avoiding credential files on disk.
const credentialsEnvVar = "GOOGLE_CREDENTIALS_JSON"

// ErrNoCredentials is returned when neither the environment variable nor a
// local credential file is present.
var ErrNoCredentials = eris.New("imagery: no service account credentials found")

// TokenSource builds an OAuth2 token source for the imagery service.
// Credentials are resolved in order: the GOOGLE_CREDENTIALS_JSON environment
// variable; the configured credentials file; the first *.json file in the
// working directory.
func TokenSource(ctx context.Context, credentialsFile, scope string) (oauth2.TokenSource, error) {
	data, source, err := resolveCredentials(credentialsFile)
	if err != nil {
		return nil, err
	}

	cfg, err := google.JWTConfigFromJSON(data, scope)
	if err != nil {
		return nil, eris.Wrap(err, "imagery: parse service account json")
	}

	zap.L().Info("imagery credentials loaded",
		zap.String("source", source),
		zap.String("client_email", cfg.Email),
	)
	return cfg.TokenSource(ctx), nil
}

func resolveCredentials(credentialsFile string) ([]byte, string, error) {
	if blob := os.Getenv(credentialsEnvVar); blob != "" {
		return []byte(blob), "env", nil
	}

	if credentialsFile != "" {
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, "", eris.Wrapf(err, "imagery: read credentials file %s", credentialsFile)
		}
		return data, credentialsFile, nil
	}

	// Development fallback: any .json file next to the binary works, so
	// developers can drop in their own service account without config.
	matches, err := filepath.Glob("*.json")
	if err != nil {
		return nil, "", eris.Wrap(err, "imagery: glob credential files")
	}
	if len(matches) == 0 {
		return nil, "", ErrNoCredentials
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, "", eris.Wrapf(err, "imagery: read credentials file %s", matches[0])
	}
	return data, matches[0], nil
}
