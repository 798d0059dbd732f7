package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

// LoadConfig reads config/server.yaml (or /config/server.yaml) and the
// ESSENSYS_SERVER_* environment. A missing file leaves the defaults in place.
func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		viper.SetEnvPrefix("essensys_server")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.SetConfigName("server")
		viper.AddConfigPath("config")
		viper.AddConfigPath("/config")

		cfg, err := load(viper.GetViper())
		if err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = cfg
	})

	return configInstance
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("general.log_level", "info")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("auth.enabled", false)

	v.SetDefault("database.driver", DriverMemory)
	v.SetDefault("database.path", "essensys.db")
	v.SetDefault("database.timeout", "5s")

	v.SetDefault("cache.driver", CacheMemory)
	v.SetDefault("cache.ttl", "2s")
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.prefix", "essensys:")
	v.SetDefault("cache.redis.dial_timeout", "5s")

	v.SetDefault("exchange.requested_indices", []int{613, 607, 615, 590, 349, 350, 351, 352, 363, 425, 426, 920})
	v.SetDefault("exchange.sweep_schedule", "@every 1m")
	v.SetDefault("exchange.stale_after", "5m")

	v.SetDefault("otel.enabled", false)
}

func load(v *viper.Viper) (AppConfig, error) {
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return AppConfig{}, err
		}
	}

	cfg := AppConfig{
		General: GeneralConfig{
			LogLevel: v.GetString("general.log_level"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			IdleTimeout:     v.GetDuration("server.idle_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			AllowedOrigins:  v.GetStringSlice("server.allowed_origins"),
		},
		Auth: AuthConfig{
			Enabled: v.GetBool("auth.enabled"),
			Clients: v.GetStringMapString("auth.clients"),
		},
		Database: DatabaseConfig{
			Driver:  v.GetString("database.driver"),
			DSN:     v.GetString("database.dsn"),
			Path:    v.GetString("database.path"),
			Timeout: v.GetDuration("database.timeout"),
		},
		Cache: CacheConfig{
			Driver: v.GetString("cache.driver"),
			TTL:    v.GetDuration("cache.ttl"),
			Redis: RedisConfig{
				Addr:        v.GetString("cache.redis.addr"),
				Password:    v.GetString("cache.redis.password"),
				DB:          v.GetInt("cache.redis.db"),
				Prefix:      v.GetString("cache.redis.prefix"),
				DialTimeout: v.GetDuration("cache.redis.dial_timeout"),
			},
		},
		Exchange: ExchangeConfig{
			RequestedIndices: v.GetIntSlice("exchange.requested_indices"),
			SweepSchedule:    v.GetString("exchange.sweep_schedule"),
			StaleAfter:       v.GetDuration("exchange.stale_after"),
		},
		Otel: OtelConfig{
			Enabled: v.GetBool("otel.enabled"),
		},
	}

	return cfg, cfg.Validate()
}

const (
	DriverMemory   = "memory"
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"

	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type AppConfig struct {
	General  GeneralConfig
	Server   ServerConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Exchange ExchangeConfig
	Otel     OtelConfig
}

type GeneralConfig struct {
	LogLevel string
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// AuthConfig maps controller serial numbers (Basic auth usernames) to their keys.
type AuthConfig struct {
	Enabled bool
	Clients map[string]string
}

// Credentials returns the accepted credentials, or nil when auth is disabled.
func (a AuthConfig) Credentials() map[string]string {
	if !a.Enabled {
		return nil
	}
	return a.Clients
}

type DatabaseConfig struct {
	Driver  string
	DSN     string
	Path    string
	Timeout time.Duration
}

// CacheConfig selects the cache in front of the action queue.
type CacheConfig struct {
	Driver string
	TTL    time.Duration
	Redis  RedisConfig
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	Prefix      string
	DialTimeout time.Duration
}

type ExchangeConfig struct {
	RequestedIndices []int
	SweepSchedule    string
	StaleAfter       time.Duration
}

type OtelConfig struct {
	Enabled bool
}

func (c AppConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d", ErrInvalidConfig, c.Server.Port)
	}
	if c.Auth.Enabled && len(c.Auth.Clients) == 0 {
		return fmt.Errorf("%w: auth enabled without clients", ErrInvalidConfig)
	}
	switch c.Database.Driver {
	case DriverMemory, DriverSqlite:
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("%w: database.dsn required for postgres", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	switch c.Cache.Driver {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("%w: unknown cache.driver %q", ErrInvalidConfig, c.Cache.Driver)
	}
	if c.Cache.Driver != CacheNone && c.Cache.TTL <= 0 {
		return fmt.Errorf("%w: cache.ttl must be positive", ErrInvalidConfig)
	}
	for _, index := range c.Exchange.RequestedIndices {
		if index < 0 || index > 999 {
			return fmt.Errorf("%w: requested index %d", ErrInvalidConfig, index)
		}
	}
	return nil
}

const redactedValue = "xxxxx"

var dsnPassword = regexp.MustCompile(`(?i)(password=)\S+`)

// redactedConfig has no LogValue method, so logging it does not recurse.
type redactedConfig AppConfig

// LogValue keeps client keys and connection secrets out of the logs.
func (c AppConfig) LogValue() slog.Value {
	return slog.AnyValue(redactedConfig(c.Redacted()))
}

// Redacted returns a copy with auth.clients keys, the redis password and any
// password in database.dsn masked.
func (c AppConfig) Redacted() AppConfig {
	if c.Auth.Clients != nil {
		clients := make(map[string]string, len(c.Auth.Clients))
		for clientID := range c.Auth.Clients {
			clients[clientID] = redactedValue
		}
		c.Auth.Clients = clients
	}
	if c.Cache.Redis.Password != "" {
		c.Cache.Redis.Password = redactedValue
	}
	c.Database.DSN = redactDSN(c.Database.DSN)
	return c
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.User != nil {
		if _, has := u.User.Password(); has {
			u.User = url.UserPassword(u.User.Username(), redactedValue)
		}
		return u.String()
	}
	return dsnPassword.ReplaceAllString(dsn, "${1}"+redactedValue)
}
