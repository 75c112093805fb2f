// Package config provides functionality for managing configuration options
// for the application using command-line flags, a JSON config file and
// environment variables.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string `json:"server_address" env:"SERVER_ADDRESS"`

	// DatabaseDriver selects the backend: "postgres" or "sqlite".
	DatabaseDriver string `json:"database_driver" env:"DATABASE_DRIVER"`

	// DatabaseDSN holds the connection string, or the file path for sqlite.
	DatabaseDSN string `json:"database_dsn" env:"DATABASE_DSN"`

	// LogLevel is the minimum zap level: debug, info, warn or error.
	LogLevel string `json:"log_level" env:"LOG_LEVEL"`

	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string `json:"cors_origins" env:"CORS_ORIGINS" envSeparator:","`

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string `json:"tls_cert" env:"TLS_CERT"`
	TLSKey  string `json:"tls_key" env:"TLS_KEY"`

	// ShutdownTimeout bounds how long in-flight requests may drain.
	ShutdownTimeout time.Duration `json:"-" env:"SHUTDOWN_TIMEOUT"`

	// SweepInterval is the period of the dangling-assignment sweeper; 0 disables it.
	SweepInterval time.Duration `json:"-" env:"SWEEP_INTERVAL"`

	// Config is the path to the Config file.
	Config string `json:"-" env:"CONFIG"`
}

// Parse parses the process arguments and environment. It exits the process
// on invalid configuration.
func Parse() *Options {
	opts, err := ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("error while parsing configuration: %v", err)
	}
	return opts
}

// ParseArgs builds Options from defaults, then args, then the JSON config
// file if it exists, then environment variables; later sources win.
func ParseArgs(args []string) (*Options, error) {
	options := &Options{}

	fs := flag.NewFlagSet("contactkeeper", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.DatabaseDriver, "driver", "sqlite", "database driver: postgres | sqlite")
	fs.StringVar(&options.DatabaseDSN, "d", "data/contacts.db", "db address (file path for sqlite)")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.StringVar(&options.TLSCert, "tls-cert", "", "path to TLS certificate")
	fs.StringVar(&options.TLSKey, "tls-key", "", "path to TLS private key")
	fs.DurationVar(&options.ShutdownTimeout, "shutdown-timeout", 10*time.Second, "graceful shutdown timeout")
	fs.DurationVar(&options.SweepInterval, "sweep-interval", time.Hour, "dangling assignment sweep interval (0 disables)")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	origins := fs.String("cors", "*", "comma-separated allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	options.CORSOrigins = splitList(*origins)

	// The config file location itself may come from the environment.
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := env.Parse(options); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := options.validate(); err != nil {
		return nil, err
	}
	return options, nil
}

func (o *Options) validate() error {
	switch o.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", o.DatabaseDriver)
	}
	if o.DatabaseDSN == "" {
		return errors.New("database dsn is required")
	}
	if (o.TLSCert == "") != (o.TLSKey == "") {
		return errors.New("tls cert and key must be set together")
	}
	return nil
}

// TLSEnabled reports whether HTTPS is configured.
func (o *Options) TLSEnabled() bool {
	return o.TLSCert != "" && o.TLSKey != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
