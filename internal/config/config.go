package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type StoreConfig struct {
	Driver     string
	SQLitePath string
	SeedFile   string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type LoggerConfig struct {
	Level  string
	Format string
}

type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("SQLITE_PATH", "ecm-catalogue.db")
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "ecm_catalogue")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("METRICS_ENABLED", true)

	// Env
	v.AutomaticEnv()

	lifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		lifetime = 30 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Store: StoreConfig{
			Driver:     v.GetString("STORE_DRIVER"),
			SQLitePath: v.GetString("SQLITE_PATH"),
			SeedFile:   v.GetString("SEED_FILE"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: lifetime,
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
	}

	switch cfg.Store.Driver {
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}

	return cfg, nil
}
