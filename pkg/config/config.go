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
	Redis        RedisConfig
	Mode         ModeConfig
	Checkout     CheckoutConfig
	Notify       NotifyConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WCT_APP_ENV" required:"true"`
	Port         string `envconfig:"WCT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WCT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WCT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WCT_DB_DSN"`
	Driver string `envconfig:"WCT_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"WCT_DB_HOST"`
	Port     int    `envconfig:"WCT_DB_PORT" default:"5432"`
	User     string `envconfig:"WCT_DB_USER"`
	Password string `envconfig:"WCT_DB_PASSWORD"`
	Name     string `envconfig:"WCT_DB_NAME"`
	SSLMode  string `envconfig:"WCT_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"WCT_DB_SQLITE_PATH" default:"wct.db"`

	MaxOpenConns    int           `envconfig:"WCT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WCT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WCT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WCT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WCT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WCT_REDIS_ADDR"`
	Password     string        `envconfig:"WCT_REDIS_PASSWORD"`
	DB           int           `envconfig:"WCT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WCT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WCT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WCT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WCT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WCT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ModeConfig controls persistence of the delivery/wholesale choice.
type ModeConfig struct {
	TTL time.Duration `envconfig:"WCT_MODE_TTL" default:"8760h"`
}

type CheckoutConfig struct {
	RateLimitWindow time.Duration `envconfig:"WCT_CHECKOUT_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitMax    int64         `envconfig:"WCT_CHECKOUT_RATE_LIMIT_MAX" default:"5"`
}

// NotifyConfig holds the EmailJS-compatible relay settings. All fields empty
// means notifications are disabled; orders still complete.
type NotifyConfig struct {
	BaseURL    string        `envconfig:"WCT_NOTIFY_BASE_URL" default:"https://api.emailjs.com"`
	ServiceID  string        `envconfig:"WCT_NOTIFY_SERVICE_ID"`
	TemplateID string        `envconfig:"WCT_NOTIFY_TEMPLATE_ID"`
	PublicKey  string        `envconfig:"WCT_NOTIFY_PUBLIC_KEY"`
	Timeout    time.Duration `envconfig:"WCT_NOTIFY_TIMEOUT" default:"10s"`
}

// Enabled reports whether the relay has the credentials it needs.
func (n NotifyConfig) Enabled() bool {
	return n.ServiceID != "" && n.TemplateID != "" && n.PublicKey != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"WCT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"WCT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = DriverSQLite
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
