// Package config читает настройки сервисов из окружения и файлов .env.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFiles файлы, которые подхватываются при старте, если существуют.
var DefaultEnvFiles = []string{".env", ".env.local"}

// LoadEnvFiles загружает существующие файлы из files в окружение процесса.
// Уже заданные переменные не перезаписываются. Возвращает число загруженных файлов.
func LoadEnvFiles(files ...string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return 0, fmt.Errorf("load env files: %w", err)
	}
	return len(existing), nil
}

// Telemetry общие настройки журналирования и трассировки.
type Telemetry struct {
	LogLevel     string `env:"LOG_LEVEL" envDefault:"INFO"`
	OTELEndpoint string `env:"OTEL_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME"`
}

// Console настройки страницы участников.
type Console struct {
	HTTPAddr        string `env:"HTTP_ADDR" envDefault:":8081"`
	RosterAPIURL    string `env:"ROSTER_API_URL"`
	OrgID           string `env:"MEMBERS_ORG_ID"`
	DisplayTimezone string `env:"DISPLAY_TIMEZONE" envDefault:"UTC"`
	DefaultLang     string `env:"DEFAULT_LANG" envDefault:"en-US"`
	Telemetry
}

// RosterAPI настройки сервиса roster API.
type RosterAPI struct {
	HTTPAddr    string   `env:"HTTP_ADDR" envDefault:":8080"`
	DSN         string   `env:"DB_DSN"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	Telemetry
}

// LoadConsole читает настройки страницы из окружения. Обязательные поля не проверяются: см. Validate.
func LoadConsole() (Console, error) {
	var cfg Console
	if err := env.Parse(&cfg); err != nil {
		return Console{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "members-console"
	}
	return cfg, nil
}

// LoadRosterAPI читает и проверяет настройки roster API.
func LoadRosterAPI() (RosterAPI, error) {
	var cfg RosterAPI
	if err := env.Parse(&cfg); err != nil {
		return RosterAPI{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "roster-api"
	}
	return cfg, cfg.Validate()
}

// Validate проверяет обязательные поля и формат значений.
func (c Console) Validate() error {
	var errs []error
	if strings.TrimSpace(c.RosterAPIURL) == "" {
		errs = append(errs, errors.New("ROSTER_API_URL is required"))
	} else if u, err := url.Parse(c.RosterAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("ROSTER_API_URL %q must be an absolute url", c.RosterAPIURL))
	}
	if strings.TrimSpace(c.OrgID) == "" {
		errs = append(errs, errors.New("MEMBERS_ORG_ID is required"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if !validLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	return errors.Join(errs...)
}

// Location возвращает часовой пояс для вывода дат.
func (c Console) Location() (*time.Location, error) {
	if c.DisplayTimezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE %q: %w", c.DisplayTimezone, err)
	}
	return loc, nil
}

// Validate проверяет обязательные поля.
func (c RosterAPI) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DSN) == "" {
		errs = append(errs, errors.New("DB_DSN is required"))
	}
	if !validLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	return errors.Join(errs...)
}

func validLevel(level string) bool {
	switch strings.ToUpper(level) {
	case "", "DEBUG", "INFO", "WARN", "ERROR":
		return true
	}
	return false
}
