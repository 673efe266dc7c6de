package config

const (
	// EnvPrefix scopes every environment variable the service reads.
	EnvPrefix = "BOOKVERSE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv    = "BOOKVERSE_APP_ENV"
	EnvPort      = "BOOKVERSE_APP_PORT"
	EnvRedisURL  = "BOOKVERSE_REDIS_URL"
	EnvJWTSecret = "BOOKVERSE_JWT_SECRET"
	EnvJWTIssuer = "BOOKVERSE_JWT_ISSUER"

	EnvDBDSN  = "BOOKVERSE_DB_DSN"
	EnvDBHost = "BOOKVERSE_DB_HOST"
	EnvDBUser = "BOOKVERSE_DB_USER"
	EnvDBName = "BOOKVERSE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
