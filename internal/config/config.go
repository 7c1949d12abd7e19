package config

import (
	"errors"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not set")

type Config struct {
	Addr                   string        `mapstructure:"addr"`
	DatabaseURL            string        `mapstructure:"database_url"`
	JWTSecret              string        `mapstructure:"jwt_secret"`
	RedisAddr              string        `mapstructure:"redis_addr"`
	RedisPassword          string        `mapstructure:"redis_password"`
	RedisDB                int           `mapstructure:"redis_db"`
	LogLevel               string        `mapstructure:"log_level"`
	AutoMigrate            bool          `mapstructure:"auto_migrate"`
	NotificationInterval   time.Duration `mapstructure:"notification_interval"`
	CORSOrigins            string        `mapstructure:"cors_origins"`
	PortalSimulatedLatency bool          `mapstructure:"portal_simulated_latency"`
	UploadDir              string        `mapstructure:"upload_dir"`
}

// envBindings maps config keys to the environment variables that can set them.
// The second name, when present, is the legacy one.
var envBindings = map[string][]string{
	"addr":                     {"ADDR", "ESTATE_CRM_ADDR"},
	"database_url":             {"DATABASE_URL"},
	"jwt_secret":               {"JWT_SECRET", "SUPABASE_JWT_SECRET"},
	"redis_addr":               {"REDIS_ADDR", "REDIS_ADD"},
	"redis_password":           {"REDIS_PASSWORD", "REDIS_PASS"},
	"redis_db":                 {"REDIS_DB"},
	"log_level":                {"LOG_LEVEL"},
	"auto_migrate":             {"AUTO_MIGRATE"},
	"notification_interval":    {"NOTIFICATION_INTERVAL"},
	"cors_origins":             {"CORS_ORIGINS"},
	"portal_simulated_latency": {"PORTAL_SIMULATED_LATENCY"},
	"upload_dir":               {"UPLOAD_DIR"},
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadEnv()
}

// LoadEnv reads configuration from environment variables only.
func LoadEnv() (Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("redis_db", 0)
	v.SetDefault("auto_migrate", false)
	v.SetDefault("notification_interval", time.Hour)
	v.SetDefault("cors_origins", "*")
	v.SetDefault("portal_simulated_latency", true)
	v.SetDefault("upload_dir", "./uploads")

	for key, envs := range envBindings {
		if err := v.BindEnv(slices.Insert(envs, 0, key)...); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.NotificationInterval <= 0 {
		cfg.NotificationInterval = time.Hour
	}
	return cfg, nil
}

// RequireDatabase reports an error when no database URL was configured.
func (c Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}
