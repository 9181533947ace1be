package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Graph struct {
		BaseURL  string        `env:"GRAPH_API_BASE_URL" env-default:"https://graph.facebook.com/v21.0"`
		Timeout  time.Duration `env:"GRAPH_API_TIMEOUT" env-default:"30s"`
		PageSize int           `env:"GRAPH_API_PAGE_SIZE" env-default:"100"`
		MaxPages int           `env:"GRAPH_API_MAX_PAGES" env-default:"10"`
	}
	AWS struct {
		Region   string `env:"AWS_REGION" env-default:"us-west-2"`
		Bucket   string `env:"STORY_METRICS_BUCKET" env-default:"chapala-bronze-bucket"`
		Endpoint string `env:"AWS_ENDPOINT"`
	}
	Secrets struct {
		AccessTokenName  string `env:"FB_ACCESS_TOKEN_SECRET" env-default:"fb_access_token"`
		BusinessIDPrefix string `env:"IG_BUSINESS_ID_SECRET_PREFIX" env-default:"ig_business_id_"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		User  int64  `env:"TELEGRAM_USER"`
		Token string `env:"TELEGRAM_TOKEN"`
	}
	Exporter struct {
		DefaultAccount  string        `env:"IG_ACCOUNT_NAME" env-default:"NPI"`
		BatchWait       time.Duration `env:"EXPORT_BATCH_WAIT" env-default:"5m"`
		ScheduleEnabled bool          `env:"EXPORT_SCHEDULE_ENABLED" env-default:"false"`
		ScheduleHour    uint          `env:"EXPORT_SCHEDULE_HOUR" env-default:"23"`
		ScheduleMinute  uint          `env:"EXPORT_SCHEDULE_MINUTE" env-default:"30"`
	}
}

// GetDSN returns the postgres connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
