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
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	ApparelMagic ApparelMagicConfig
	ShipStation  ShipStationConfig
	Sync         SyncConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Uploads      UploadConfig
	CORS         CORSConfig
	RateLimit    RateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TRADESHOW_APP_ENV" required:"true"`
	Port         string `envconfig:"TRADESHOW_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TRADESHOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TRADESHOW_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"TRADESHOW_LOG_FORMAT" default:"json"`
	PublicURL    string `envconfig:"TRADESHOW_PUBLIC_URL"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"TRADESHOW_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"TRADESHOW_DB_DSN"`
	Driver string `envconfig:"TRADESHOW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TRADESHOW_DB_HOST"`
	LegacyPort     int    `envconfig:"TRADESHOW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TRADESHOW_DB_USER"`
	LegacyPassword string `envconfig:"TRADESHOW_DB_PASSWORD"`
	LegacyName     string `envconfig:"TRADESHOW_DB_NAME"`
	LegacySSLMode  string `envconfig:"TRADESHOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TRADESHOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TRADESHOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TRADESHOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TRADESHOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	// SlowQuery logs statements slower than this; zero disables it.
	SlowQuery time.Duration `envconfig:"TRADESHOW_DB_SLOW_QUERY" default:"500ms"`
}

// IsSQLite reports a local sqlite database, schema managed by AutoMigrate.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

// RedisConfig is optional for the API. An empty URL disables sync locking.
type RedisConfig struct {
	URL          string        `envconfig:"TRADESHOW_REDIS_URL"`
	Address      string        `envconfig:"TRADESHOW_REDIS_ADDR"`
	Password     string        `envconfig:"TRADESHOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"TRADESHOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TRADESHOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TRADESHOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TRADESHOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TRADESHOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TRADESHOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TRADESHOW_AUTO_MIGRATE" default:"false"`
	Uploads     bool `envconfig:"TRADESHOW_FEATURE_UPLOADS" default:"true"`
}

type ApparelMagicConfig struct {
	BaseURL   string        `envconfig:"TRADESHOW_APPARELMAGIC_BASE_URL" default:"https://advanceapparels.app.apparelmagic.com/api/json"`
	Token     string        `envconfig:"TRADESHOW_APPARELMAGIC_TOKEN"`
	UserAgent string        `envconfig:"TRADESHOW_APPARELMAGIC_USER_AGENT" default:"TradeShowPortal/1.0"`
	Timeout   time.Duration `envconfig:"TRADESHOW_APPARELMAGIC_TIMEOUT" default:"60s"`
}

func (a ApparelMagicConfig) Enabled() bool {
	return a.Token != ""
}

type ShipStationConfig struct {
	BaseURL   string        `envconfig:"TRADESHOW_SHIPSTATION_BASE_URL" default:"https://ssapi.shipstation.com"`
	APIKey    string        `envconfig:"TRADESHOW_SHIPSTATION_API_KEY"`
	APISecret string        `envconfig:"TRADESHOW_SHIPSTATION_API_SECRET"`
	PageSize  int           `envconfig:"TRADESHOW_SHIPSTATION_PAGE_SIZE" default:"500"`
	MaxPages  int           `envconfig:"TRADESHOW_SHIPSTATION_MAX_PAGES" default:"20"`
	PageDelay time.Duration `envconfig:"TRADESHOW_SHIPSTATION_PAGE_DELAY" default:"200ms"`
	Timeout   time.Duration `envconfig:"TRADESHOW_SHIPSTATION_TIMEOUT" default:"60s"`
}

func (s ShipStationConfig) Enabled() bool {
	return s.APIKey != "" && s.APISecret != ""
}

// SyncConfig controls the scheduled worker and the per-kind run lock.
type SyncConfig struct {
	Interval    time.Duration `envconfig:"TRADESHOW_SYNC_INTERVAL" default:"6h"`
	LockTTL     time.Duration `envconfig:"TRADESHOW_SYNC_LOCK_TTL" default:"30m"`
	RunOnStart  bool          `envconfig:"TRADESHOW_SYNC_RUN_ON_START" default:"false"`
	LockEnabled bool          `envconfig:"TRADESHOW_SYNC_LOCK_ENABLED" default:"true"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"TRADESHOW_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"TRADESHOW_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"TRADESHOW_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName    string `envconfig:"TRADESHOW_GCS_BUCKET_NAME" default:"portal-attachments"`
	PublicBaseURL string `envconfig:"TRADESHOW_GCS_PUBLIC_BASE_URL" default:"https://storage.googleapis.com"`
}

type UploadConfig struct {
	MaxUploadMB int `envconfig:"TRADESHOW_MAX_UPLOAD_MB" default:"25"`
}

// MaxBytes returns the upload limit in bytes.
func (u UploadConfig) MaxBytes() int64 {
	if u.MaxUploadMB <= 0 {
		return 25 << 20
	}
	return int64(u.MaxUploadMB) << 20
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"TRADESHOW_CORS_ALLOWED_ORIGINS" default:"*"`
}

// RateLimitConfig throttles the public link-addressed portal routes per client
// IP. A zero limit disables the check.
type RateLimitConfig struct {
	PortalWindow  time.Duration `envconfig:"TRADESHOW_PORTAL_RATE_WINDOW" default:"1m"`
	PortalIPLimit int           `envconfig:"TRADESHOW_PORTAL_RATE_IP_LIMIT" default:"120"`
}

func (db *DBConfig) ensureDSN() error {
	switch strings.ToLower(db.Driver) {
	case "", DBDriverPostgres:
	case DBDriverSQLite:
		if db.DSN == "" {
			return fmt.Errorf("%s is required for the sqlite driver", EnvDBDSN)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}
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
