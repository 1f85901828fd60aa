// Package util holds small pieces of CLI plumbing shared by more than
// one subcommand: building a DSN and opening a connection is the only
// thing the "verify" shell command needs from a real database.
package util

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pgschema/pgdumpsort/internal/logger"
)

// ConnectionConfig holds the pieces of a libpq-style connection string.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
}

// Connect opens and pings a database connection built from config.
func Connect(ctx context.Context, config *ConnectionConfig) (*sql.DB, error) {
	log := logger.Get()
	log.Debug("attempting database connection",
		"host", config.Host,
		"port", config.Port,
		"database", config.Database,
		"user", config.User,
		"sslmode", config.SSLMode,
	)

	conn, err := sql.Open("pgx", BuildDSN(config))
	if err != nil {
		return nil, fmt.Errorf("opening connection: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log.Debug("database connection established")
	return conn, nil
}

// BuildDSN constructs a libpq key=value connection string from config.
func BuildDSN(config *ConnectionConfig) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("host=%s", config.Host))
	parts = append(parts, fmt.Sprintf("port=%d", config.Port))
	parts = append(parts, fmt.Sprintf("dbname=%s", config.Database))
	parts = append(parts, fmt.Sprintf("user=%s", config.User))
	if config.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", config.Password))
	}
	if config.SSLMode != "" {
		parts = append(parts, fmt.Sprintf("sslmode=%s", config.SSLMode))
	}
	return strings.Join(parts, " ")
}
