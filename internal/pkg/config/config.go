package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pixelcraft/studio/internal/pkg/env"
)

const (
	PolarServerSandbox    = "sandbox"
	PolarServerProduction = "production"
)

// Config is the validated server configuration. It is built once at startup
// and passed to the components that need it.
type Config struct {
	AppEnv  string `validate:"oneof=development test production"`
	AppHost string `validate:"required"`
	AppPort string `validate:"required,numeric"`

	// PublicDomain is the externally reachable base URL, used for checkout
	// success redirects.
	PublicDomain string `validate:"required,url"`
	AuthSecret   string `validate:"required,min=32,max=100"`

	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBName     string `validate:"required"`

	CacheHost     string `validate:"required"`
	CachePort     string `validate:"required,numeric"`
	CachePassword string

	PolarAccessToken   string `validate:"required"`
	PolarWebhookSecret string `validate:"required"`
	PolarServer        string `validate:"oneof=sandbox production"`
	// PolarProducts overrides the built-in product table,
	// format "slug:productID:credits,...".
	PolarProducts       string
	PolarStrictProducts bool

	ImageKitURLEndpoint string `validate:"required,url"`
	ImageKitPublicKey   string `validate:"required"`
	ImageKitPrivateKey  string `validate:"required"`

	MetricsUser     string
	MetricsPassword string

	SkipValidation bool `validate:"-"`
}

// Load reads the configuration from the environment. Validation is skipped
// when SKIP_ENV_VALIDATION is set, which is useful for image builds.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:              env.AppEnv(),
		AppHost:             env.GetEnv("APP_HOST", "localhost"),
		AppPort:             env.GetEnv("APP_PORT", "4000"),
		PublicDomain:        strings.TrimRight(strings.TrimSpace(env.GetEnv("PUBLIC_DOMAIN", "")), "/"),
		AuthSecret:          env.GetEnv("AUTH_SECRET", ""),
		DBHost:              env.GetEnv("DB_HOST", "127.0.0.1"),
		DBPort:              env.GetEnv("DB_PORT", "3306"),
		DBUser:              env.GetEnv("DB_USER", ""),
		DBPassword:          env.GetEnv("DB_PASSWORD", ""),
		DBName:              env.GetEnv("DB_NAME", ""),
		CacheHost:           env.GetEnv("CACHE_HOST", "localhost"),
		CachePort:           env.GetEnv("CACHE_PORT", "6379"),
		CachePassword:       env.GetEnv("CACHE_PASSWORD", ""),
		PolarAccessToken:    strings.TrimSpace(env.GetEnv("POLAR_ACCESS_TOKEN", "")),
		PolarWebhookSecret:  strings.TrimSpace(env.GetEnv("POLAR_WEBHOOK_SECRET", "")),
		PolarServer:         strings.ToLower(env.GetEnv("POLAR_SERVER", PolarServerSandbox)),
		PolarProducts:       env.GetEnv("POLAR_PRODUCTS", ""),
		PolarStrictProducts: env.GetEnv("POLAR_STRICT_PRODUCTS", "false") == "true",
		ImageKitURLEndpoint: env.GetEnv("IMAGEKIT_URL_ENDPOINT", ""),
		ImageKitPublicKey:   env.GetEnv("IMAGEKIT_PUBLIC_KEY", ""),
		ImageKitPrivateKey:  env.GetEnv("IMAGEKIT_PRIVATE_KEY", ""),
		MetricsUser:         env.GetEnv("METRICS_USER", "admin"),
		MetricsPassword:     env.GetEnv("METRICS_PASSWORD", ""),
		SkipValidation:      env.GetEnv("SKIP_ENV_VALIDATION", "") != "",
	}

	if cfg.SkipValidation {
		return cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags and reports every invalid field at once.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid environment configuration: %s", strings.Join(msgs, "; "))
}

// Warnings reports misconfigurations that do not prevent startup.
func (c *Config) Warnings() []string {
	var out []string
	if strings.HasPrefix(c.PolarAccessToken, "polar_oat_") || strings.HasPrefix(c.PolarAccessToken, "oat_") {
		out = append(out, "POLAR_ACCESS_TOKEN looks like an OAuth access token; customer creation and checkout need a server API token")
	}
	if c.MetricsPassword == "" {
		out = append(out, "METRICS_PASSWORD is empty; /metrics and /monitor are disabled")
	}
	return out
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}
