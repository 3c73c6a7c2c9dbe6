package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database describes the results ledger connection. DATABASE_URL, when
// set, takes precedence over the POSTGRES_* variables.
type Database struct {
	Username     string `env:"POSTGRES_USER,notEmpty"`
	Password     string `env:"POSTGRES_PASSWORD"`
	PasswordFile string `env:"POSTGRES_PASSWORD_FILE"`
	Host         string `env:"POSTGRES_HOST,notEmpty"`
	Port         uint16 `env:"POSTGRES_PORT" envDefault:"5432"`
	DBName       string `env:"POSTGRES_DB,notEmpty"`
	SSLMode      string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

func NewDatabase() (*Database, error) {
	var c Database
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse database env: %w", err)
	}

	if c.Password == "" {
		if c.PasswordFile == "" {
			return nil, fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE env variable set")
		}
		data, err := os.ReadFile(c.PasswordFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read from password file: %w", err)
		}
		c.Password = strings.TrimSpace(string(data))
	}

	return &c, nil
}

func (c Database) URL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username,
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

// DatabaseConfigured reports whether any database settings are present.
// Without them the server runs without a results ledger.
func DatabaseConfigured() bool {
	return os.Getenv("DATABASE_URL") != "" || os.Getenv("POSTGRES_HOST") != ""
}

func DbURL() (string, error) {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL, nil
	}

	cfg, err := NewDatabase()
	if err != nil {
		return "", fmt.Errorf("no DATABASE_URL set; %w", err)
	}
	return cfg.URL(), nil
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	dbURL, err := DbURL()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(dbURL)
}
