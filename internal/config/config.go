package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Intake variants. The deployed form decides which schema the public
// endpoint enforces; both write the same table.
const (
	IntakeModeAccount   = "account"
	IntakeModeSegmented = "segmented"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	AdminUser         string `env:"ADMIN_USER"`
	AdminPass         string `env:"ADMIN_PASS"`
	AdminSessionToken string `env:"ADMIN_SESSION_TOKEN"`

	IntakeMode string `env:"INTAKE_MODE" envDefault:"account"`

	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`
	AdminBaseURL    string `env:"ADMIN_BASE_URL"`

	AMQPURL string `env:"AMQP_URL"`

	MailHost string `env:"MAIL_HOST"`
	MailPort int    `env:"MAIL_PORT" envDefault:"587"`
	MailUser string `env:"MAIL_USER"`
	MailPass string `env:"MAIL_PASS"`
	MailFrom string `env:"MAIL_FROM" envDefault:"no-reply@vaultleads.io"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.IntakeMode != IntakeModeAccount && cfg.IntakeMode != IntakeModeSegmented {
		return nil, fmt.Errorf("invalid INTAKE_MODE %q (want %s or %s)", cfg.IntakeMode, IntakeModeAccount, IntakeModeSegmented)
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
