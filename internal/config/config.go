// Package config reads process settings from the environment. A .env file in
// the working directory is loaded first when present; real environment
// variables win over it.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr   string
	APIBaseURL string
	APIToken   string // fallback when the session carries none
	// AdminServiceMode lets requests without a session in as the service
	// admin, calling the API with APIToken.
	AdminServiceMode bool
	SessionSecret    string
	CookieSecure     bool
	OrdersPageSize   int
	LogLevel         string

	OTelEnabled  bool
	OTelEndpoint string
	ServiceName  string

	Backend BackendConfig
}

// BackendConfig drives the development REST backend.
type BackendConfig struct {
	Addr     string
	DBDriver string
	DBDSN    string
	Seed     int
}

const devSecret = "dev-insecure-session-secret"

func defaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("API_BASE_URL", "http://localhost:8081")
	v.SetDefault("API_TOKEN", "")
	v.SetDefault("ADMIN_SERVICE_MODE", false)
	v.SetDefault("SESSION_SECRET", devSecret)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("ORDERS_PAGE_SIZE", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	v.SetDefault("SERVICE_NAME", "pehlione-admin")
	v.SetDefault("BACKEND_ADDR", ":8081")
	v.SetDefault("BACKEND_DB_DRIVER", "sqlite")
	v.SetDefault("BACKEND_DB_DSN", "")
	v.SetDefault("BACKEND_SEED", 60)
}

// Load reads .env (if any) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromViper(New())
}

// New returns a viper instance with defaults bound to the environment.
func New() *viper.Viper {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	return v
}

func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTPAddr:         v.GetString("HTTP_ADDR"),
		APIBaseURL:       strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		APIToken:         v.GetString("API_TOKEN"),
		AdminServiceMode: v.GetBool("ADMIN_SERVICE_MODE"),
		SessionSecret:    v.GetString("SESSION_SECRET"),
		CookieSecure:     v.GetBool("COOKIE_SECURE"),
		OrdersPageSize:   v.GetInt("ORDERS_PAGE_SIZE"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		OTelEnabled:      v.GetBool("OTEL_ENABLED"),
		OTelEndpoint:     v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:      v.GetString("SERVICE_NAME"),
		Backend: BackendConfig{
			Addr:     v.GetString("BACKEND_ADDR"),
			DBDriver: v.GetString("BACKEND_DB_DRIVER"),
			DBDSN:    v.GetString("BACKEND_DB_DSN"),
			Seed:     v.GetInt("BACKEND_SEED"),
		},
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("API_BASE_URL must be an absolute URL, got %q", c.APIBaseURL))
	}
	if c.OrdersPageSize < 1 || c.OrdersPageSize > 100 {
		errs = append(errs, fmt.Errorf("ORDERS_PAGE_SIZE must be within 1..100, got %d", c.OrdersPageSize))
	}
	if c.AdminServiceMode && c.APIToken == "" {
		errs = append(errs, errors.New("ADMIN_SERVICE_MODE needs API_TOKEN"))
	}
	if len(c.SessionSecret) < 16 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 16 bytes"))
	}
	return errors.Join(errs...)
}

// ServiceAdmin is the admin name given to requests without a session, or ""
// when a login is required.
func (c Config) ServiceAdmin() string {
	if !c.AdminServiceMode {
		return ""
	}
	return "service"
}

// InsecureSecret reports whether the built-in development secret is in use.
func (c Config) InsecureSecret() bool { return c.SessionSecret == devSecret }
