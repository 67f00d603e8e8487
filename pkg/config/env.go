package config

// EnvPrefix is passed to envconfig; every field carries an explicit name so the
// prefix only matters for unnamed fields.
const EnvPrefix = "TRADESHOW"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "TRADESHOW_APP_ENV"
	EnvPort     = "TRADESHOW_APP_PORT"
	EnvLogLevel = "TRADESHOW_LOG_LEVEL"

	EnvDBDSN    = "TRADESHOW_DB_DSN"
	EnvDBDriver = "TRADESHOW_DB_DRIVER"
	EnvDBHost   = "TRADESHOW_DB_HOST"
	EnvDBUser   = "TRADESHOW_DB_USER"
	EnvDBName   = "TRADESHOW_DB_NAME"

	EnvRedisURL = "TRADESHOW_REDIS_URL"

	EnvApparelMagicToken   = "TRADESHOW_APPARELMAGIC_TOKEN"
	EnvApparelMagicBaseURL = "TRADESHOW_APPARELMAGIC_BASE_URL"
	EnvShipStationKey      = "TRADESHOW_SHIPSTATION_API_KEY"
	EnvShipStationSecret   = "TRADESHOW_SHIPSTATION_API_SECRET"

	EnvSyncInterval = "TRADESHOW_SYNC_INTERVAL"
	EnvGCSBucket    = "TRADESHOW_GCS_BUCKET_NAME"
	EnvCORSOrigins  = "TRADESHOW_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
