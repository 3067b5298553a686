package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/teamflowhq/teamflow-backend/pkg/pagination"
)

type Config struct {
	App        AppConfig
	Service    ServiceConfig
	DB         DBConfig
	Redis      RedisConfig
	Mail       MailConfig
	Cron       CronConfig
	Frontend   FrontendConfig
	Pagination PaginationConfig
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
	Env          string `envconfig:"TEAMFLOW_APP_ENV" required:"true"`
	Port         string `envconfig:"TEAMFLOW_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TEAMFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TEAMFLOW_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"TEAMFLOW_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"TEAMFLOW_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"TEAMFLOW_DB_DSN"`
	Driver string `envconfig:"TEAMFLOW_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"TEAMFLOW_DB_HOST"`
	Port     int    `envconfig:"TEAMFLOW_DB_PORT" default:"5432"`
	User     string `envconfig:"TEAMFLOW_DB_USER"`
	Password string `envconfig:"TEAMFLOW_DB_PASSWORD"`
	Name     string `envconfig:"TEAMFLOW_DB_NAME"`
	SSLMode  string `envconfig:"TEAMFLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TEAMFLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TEAMFLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TEAMFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TEAMFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TEAMFLOW_REDIS_URL"`
	Address      string        `envconfig:"TEAMFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"TEAMFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"TEAMFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TEAMFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TEAMFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TEAMFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TEAMFLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TEAMFLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type MailConfig struct {
	SendgridAPIKey string        `envconfig:"TEAMFLOW_SENDGRID_API_KEY"`
	FromEmail      string        `envconfig:"TEAMFLOW_MAIL_FROM_EMAIL" default:"no-reply@teamflow.app"`
	FromName       string        `envconfig:"TEAMFLOW_MAIL_FROM_NAME" default:"TeamFlow"`
	SendTimeout    time.Duration `envconfig:"TEAMFLOW_MAIL_SEND_TIMEOUT" default:"10s"`
	MaxRetries     int           `envconfig:"TEAMFLOW_MAIL_MAX_RETRIES" default:"3"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"TEAMFLOW_CRON_INTERVAL" default:"5m"`
	LockTTL  time.Duration `envconfig:"TEAMFLOW_CRON_LOCK_TTL" default:"10m"`
}

type FrontendConfig struct {
	BaseURL string `envconfig:"TEAMFLOW_FRONTEND_BASE_URL" default:"http://localhost:3000"`
}

type PaginationConfig struct {
	DefaultPerPage int `envconfig:"TEAMFLOW_PAGINATION_PER_PAGE" default:"15"`
	MaxPerPage     int `envconfig:"TEAMFLOW_PAGINATION_MAX_PER_PAGE" default:"100"`
}

// Limits converts the section into the shape the query validator takes.
func (p PaginationConfig) Limits() pagination.Limits {
	return pagination.Limits{DefaultPerPage: p.DefaultPerPage, MaxPerPage: p.MaxPerPage}
}

func (db *DBConfig) ensureDSN() error {
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
