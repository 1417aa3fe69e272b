package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// App is the web server configuration.
type App struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Presets  string   `mapstructure:"presets_path"`
}

type Server struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type Database struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// LoadApp reads configuration from path (optional) and the environment.
// Environment variables use the upper-cased key with "." replaced by "_",
// e.g. SERVER_PORT or DATABASE_DSN.
func LoadApp(path string) (*App, error) {
	v := viper.New()
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "blog.db")
	v.SetDefault("presets_path", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg App
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (a *App) validate() error {
	if a.Server.Port == "" {
		return errors.New("server port is required")
	}
	if a.Database.DSN == "" {
		return errors.New("database dsn is required")
	}
	return nil
}
