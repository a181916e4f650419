package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. NEVOCHAT_DB_PATH.
const EnvPrefix = "NEVOCHAT"

type Server struct {
	Port              string        `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

type DB struct {
	Path          string `mapstructure:"path"`
	MaxOpenConns  int    `mapstructure:"max_open_conns"`
	MaxIdleConns  int    `mapstructure:"max_idle_conns"`
	BusyTimeoutMS int    `mapstructure:"busy_timeout_ms"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Auth struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

// Session controls the login cookie. A zero TTL means sessions never expire
// and live until an explicit logout.
type Session struct {
	TTL          time.Duration `mapstructure:"ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

type Chat struct {
	MaxMessageLength int `mapstructure:"max_message_length"`
}

// Config is the full runtime configuration of the chat server.
type Config struct {
	Server  Server  `mapstructure:"server"`
	DB      DB      `mapstructure:"db"`
	Log     Log     `mapstructure:"log"`
	Auth    Auth    `mapstructure:"auth"`
	Session Session `mapstructure:"session"`
	Chat    Chat    `mapstructure:"chat"`
}

var defaults = map[string]any{
	"server.port":                "5000",
	"server.read_header_timeout": 10 * time.Second,
	"server.write_timeout":       10 * time.Second,
	"server.idle_timeout":        60 * time.Second,
	"server.shutdown_timeout":    10 * time.Second,
	"db.path":                    "chat_app.db",
	"db.max_open_conns":          4,
	"db.max_idle_conns":          4,
	"db.busy_timeout_ms":         5000,
	"log.level":                  "info",
	"log.format":                 "console",
	"auth.bcrypt_cost":           10,
	"session.ttl":                time.Duration(0),
	"session.cookie_name":        "session_token",
	"session.cookie_secure":      false,
	"chat.max_message_length":    4096,
}

// Load reads config.yml from dir (a missing file is not an error), applies
// NEVOCHAT_* environment overrides and validates the result. Variables from a
// .env file in the working directory are exported first when the file exists.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config in %q: %w", dir, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DB.Path) == "":
		return errors.New("db.path must not be empty")
	case c.DB.MaxOpenConns < 1:
		return fmt.Errorf("db.max_open_conns must be >= 1, got %d", c.DB.MaxOpenConns)
	case c.DB.BusyTimeoutMS < 0:
		return fmt.Errorf("db.busy_timeout_ms must be >= 0, got %d", c.DB.BusyTimeoutMS)
	case c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31:
		return fmt.Errorf("auth.bcrypt_cost must be within [4, 31], got %d", c.Auth.BcryptCost)
	case c.Session.TTL < 0:
		return fmt.Errorf("session.ttl must be >= 0, got %s", c.Session.TTL)
	case strings.TrimSpace(c.Session.CookieName) == "":
		return errors.New("session.cookie_name must not be empty")
	case c.Chat.MaxMessageLength < 1:
		return fmt.Errorf("chat.max_message_length must be >= 1, got %d", c.Chat.MaxMessageLength)
	}
	return nil
}
