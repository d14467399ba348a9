package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	JWT          JWTConfig
	Auth         AuthConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Auth.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FLEET_APP_ENV" required:"true"`
	Port         string `envconfig:"FLEET_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FLEET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLEET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FLEET_DB_DSN"`
	Driver string `envconfig:"FLEET_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FLEET_DB_HOST"`
	LegacyPort     int    `envconfig:"FLEET_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FLEET_DB_USER"`
	LegacyPassword string `envconfig:"FLEET_DB_PASSWORD"`
	LegacyName     string `envconfig:"FLEET_DB_NAME"`
	LegacySSLMode  string `envconfig:"FLEET_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FLEET_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FLEET_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FLEET_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FLEET_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FLEET_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FLEET_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FLEET_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AuthConfig carries the credential pair accepted by the login endpoint and
// the enforcement mode applied to the API routes.
type AuthConfig struct {
	Username string `envconfig:"FLEET_AUTH_USERNAME"`
	Password string `envconfig:"FLEET_AUTH_PASSWORD"`
	Mode     string `envconfig:"FLEET_AUTH_MODE" default:"writes"`
}

func (a AuthConfig) validate() error {
	switch a.Mode {
	case AuthModeOff, AuthModeWrites, AuthModeAll:
	default:
		return fmt.Errorf("invalid %s %q (expected %s|%s|%s)", EnvAuthMode, a.Mode, AuthModeOff, AuthModeWrites, AuthModeAll)
	}
	if a.Mode != AuthModeOff && (a.Username == "" || a.Password == "") {
		return fmt.Errorf("%s and %s are required when auth mode is %q", EnvAuthUsername, EnvAuthPassword, a.Mode)
	}
	return nil
}

// EnforcesWrites reports whether mutations require a bearer token.
func (a AuthConfig) EnforcesWrites() bool {
	return a.Mode == AuthModeWrites || a.Mode == AuthModeAll
}

// EnforcesReads reports whether queries require a bearer token.
func (a AuthConfig) EnforcesReads() bool {
	return a.Mode == AuthModeAll
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FLEET_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FLEET_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
