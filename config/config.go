package config

import (
	"os"
	"time"

	"github.com/subosito/gotenv"
	"github.com/wistefan/shirt-store/logging"
)

var logger = logging.Log()

/**
* Default validity window for issued tokens.
 */
var defaultTokenExpiry = 10 * time.Minute

func init() {
	// optional .env file for local development
	gotenv.Load()
}

type Config interface {
	SigningKey() string
	TokenExpiry() time.Duration
	ApplicationsFile() string
}

type EnvConfig struct{}

func (EnvConfig) SigningKey() string {
	signingKey := os.Getenv("SIGNING_KEY")
	if signingKey == "" {
		logger.Warn("No signing key is configured, no token can be issued or accepted.")
	}
	return signingKey
}

func (EnvConfig) TokenExpiry() time.Duration {
	expiryEnvVar := os.Getenv("TOKEN_EXPIRY")
	if expiryEnvVar == "" {
		return defaultTokenExpiry
	}
	expiry, err := time.ParseDuration(expiryEnvVar)
	if err != nil {
		logger.Warnf("Invalid token expiry %s configured, will use the default of %v. Err: %v", expiryEnvVar, defaultTokenExpiry, err)
		return defaultTokenExpiry
	}
	return expiry
}

func (EnvConfig) ApplicationsFile() string {
	return os.Getenv("APPLICATIONS_FILE")
}
