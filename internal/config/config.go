package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string        `mapstructure:"PORT"`
	Env                  string        `mapstructure:"ENV"`
	DatabaseURL          string        `mapstructure:"DATABASE_URL"`
	DBMaxConns           int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns           int32         `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins          []string      `mapstructure:"CORS_ORIGINS"`
	JWTSecret            string        `mapstructure:"JWT_SECRET"`
	TokenTTL             time.Duration `mapstructure:"TOKEN_TTL"`
	RequestTimeout       time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	BodyLimit            string        `mapstructure:"BODY_LIMIT"`
	TelemetryFilterField string        `mapstructure:"TELEMETRY_FILTER_FIELD"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "3000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("BODY_LIMIT", "1M")
	v.SetDefault("TELEMETRY_FILTER_FIELD", "usuario")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("TOKEN_TTL")
	v.BindEnv("REQUEST_TIMEOUT")
	v.BindEnv("BODY_LIMIT")
	v.BindEnv("TELEMETRY_FILTER_FIELD")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. JWT_SECRET must be
// set outside development because login issues signed session tokens, and the
// telemetry filter field must name one of the two reading identifiers.
func (c *Config) Validate() error {
	if c.JWTSecret == "" && !c.IsDev() {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q", c.Env)
	}
	if f := c.TelemetryFilterField; f != "usuario" && f != "dispositivo" {
		return fmt.Errorf("TELEMETRY_FILTER_FIELD must be \"usuario\" or \"dispositivo\", got %q", f)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
