package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backends selectable through the STORAGE environment variable.
const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

// Config holds the full configuration of the API server, parsed from
// environment variables.
type Config struct {
	HTTPPort        int           `env:"HTTP_PORT"         envDefault:"8080"`
	Storage         string        `env:"STORAGE"           envDefault:"mongo"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"  envDefault:"10s"`
	PrettyLogging   bool          `env:"PRETTY_LOGGING"    envDefault:"false"`

	Mongo MongoConfig
	Token TokenConfig

	// AppPasswordResetURL is the frontend URL embedded in password reset
	// emails; the signed reset token is appended as a query parameter.
	AppPasswordResetURL string `env:"APP_PASSWORD_RESET_URL" envDefault:"http://localhost:3000/password-reset"`
}

// MongoConfig holds the MongoDB connection settings.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" envDefault:"bookmark_keeper"`
}

// TokenConfig holds the JWT signing settings. Access and refresh tokens are
// signed with distinct secrets so a leaked access token cannot be replayed
// against the refresh endpoint.
type TokenConfig struct {
	Issuer                      string        `env:"TOKEN_ISSUER"                    envDefault:"bookmark-keeper-api"`
	AccessTokenSecret           string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret          string        `env:"REFRESH_TOKEN_SECRET"`
	PasswordResetTokenSecret    string        `env:"PASSWORD_RESET_TOKEN_SECRET"`
	AccessTokenExpiresIn        time.Duration `env:"ACCESS_TOKEN_EXPIRES_IN"         envDefault:"15m"`
	RefreshTokenExpiresIn       time.Duration `env:"REFRESH_TOKEN_EXPIRES_IN"        envDefault:"168h"`
	PasswordResetTokenExpiresIn time.Duration `env:"PASSWORD_RESET_TOKEN_EXPIRES_IN" envDefault:"1h"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks that the configuration is complete enough to start.
func (c *Config) validate() error {
	if c.Storage != StorageMongo && c.Storage != StorageMemory {
		return fmt.Errorf("invalid STORAGE value %q", c.Storage)
	}
	if c.Token.AccessTokenSecret == "" {
		return fmt.Errorf("missing ACCESS_TOKEN_SECRET environment variable")
	}
	if c.Token.RefreshTokenSecret == "" {
		return fmt.Errorf("missing REFRESH_TOKEN_SECRET environment variable")
	}
	if c.Token.RefreshTokenSecret == c.Token.AccessTokenSecret {
		return fmt.Errorf("REFRESH_TOKEN_SECRET must differ from ACCESS_TOKEN_SECRET")
	}
	if c.Token.PasswordResetTokenSecret == "" {
		return fmt.Errorf("missing PASSWORD_RESET_TOKEN_SECRET environment variable")
	}
	if c.Storage == StorageMongo && c.Mongo.URI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}

	return nil
}
