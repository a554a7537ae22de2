package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "WCT_APP_ENV"
	EnvPort     = "WCT_APP_PORT"
	EnvDBDSN    = "WCT_DB_DSN"
	EnvDBHost   = "WCT_DB_HOST"
	EnvDBUser   = "WCT_DB_USER"
	EnvDBName   = "WCT_DB_NAME"
	EnvRedisURL = "WCT_REDIS_URL"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
