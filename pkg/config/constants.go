package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// tags so the prefix only matters for untagged additions.
const EnvPrefix = "fleet"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	AuthModeOff    = "off"
	AuthModeWrites = "writes"
	AuthModeAll    = "all"
)

const (
	EnvAppEnv       = "FLEET_APP_ENV"
	EnvDBDSN        = "FLEET_DB_DSN"
	EnvDBHost       = "FLEET_DB_HOST"
	EnvDBUser       = "FLEET_DB_USER"
	EnvDBName       = "FLEET_DB_NAME"
	EnvAuthMode     = "FLEET_AUTH_MODE"
	EnvAuthUsername = "FLEET_AUTH_USERNAME"
	EnvAuthPassword = "FLEET_AUTH_PASSWORD"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
