// Package config reads aradaa's settings from the environment and the
// command line. Flags override environment variables.
package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
)

// Config holds the server settings.
type Config struct {
	DBPath        string `env:"ARADAA_DB"             envDefault:"aradaa.sqlite3"`
	Addr          string `env:"ARADAA_ADDR"           envDefault:":8080"`
	AdminEmail    string `env:"ARADAA_ADMIN_EMAIL"    envDefault:"admin@aradaa.local"`
	LogPath       string `env:"ARADAA_LOG"`
	SeedPath      string `env:"ARADAA_SEED"`
	SecureCookies bool   `env:"ARADAA_SECURE_COOKIES"`
}

const usage = `Usage: aradaa [flags]

Flags:
  -d, -db <path>          SQLite database path (default: aradaa.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -e, -email <address>    admin email on first run (default: admin@aradaa.local)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -s, -seed <path>        YAML content to load when the database is created
      -secure-cookies     mark the session cookie Secure (use behind HTTPS)
  -h, -help               show this help and exit

Every flag can also be set through its ARADAA_* environment variable.
`

// Load builds the configuration from the environment, then applies args.
// It returns flag.ErrHelp when help was requested.
func Load(args []string, out io.Writer) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("aradaa", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "")
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "")
	fs.StringVar(&cfg.AdminEmail, "email", cfg.AdminEmail, "")
	fs.StringVar(&cfg.AdminEmail, "e", cfg.AdminEmail, "")
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "")
	fs.StringVar(&cfg.LogPath, "l", cfg.LogPath, "")
	fs.StringVar(&cfg.SeedPath, "seed", cfg.SeedPath, "")
	fs.StringVar(&cfg.SeedPath, "s", cfg.SeedPath, "")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", cfg.SecureCookies, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}
	return cfg, nil
}
