package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from the SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	cfg := &ConfigData{}

	dbConfig, err := s.GetDatabaseConfig()
	if err != nil {
		return nil, err
	}
	cfg.Database = dbConfig

	httpConfig, err := s.GetHTTPConfig()
	if err != nil {
		return nil, err
	}
	cfg.HTTP = *httpConfig

	refreshConfig, err := s.GetRefreshConfig()
	if err != nil {
		return nil, err
	}
	cfg.Refresh = *refreshConfig

	return cfg, nil
}

// GetDatabaseConfig reads the single-row database_config table.
// A missing row means no database is configured (synthetic mode).
func (s *SQLiteProvider) GetDatabaseConfig() (*DatabaseData, error) {
	row := s.db.QueryRow(`SELECT server, port, name, user, password, ssl_mode, connect_timeout
		FROM database_config LIMIT 1`)

	d := &DatabaseData{}
	err := row.Scan(&d.Server, &d.Port, &d.Name, &d.User, &d.Password, &d.SSLMode, &d.ConnectTimeout)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read database config: %w", err)
	}
	return d, nil
}

// GetHTTPConfig reads the single-row http_config table
func (s *SQLiteProvider) GetHTTPConfig() (*HTTPData, error) {
	row := s.db.QueryRow(`SELECT listen_addr, port FROM http_config LIMIT 1`)

	h := &HTTPData{}
	err := row.Scan(&h.ListenAddr, &h.Port)
	if err == sql.ErrNoRows {
		return &HTTPData{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read http config: %w", err)
	}
	return h, nil
}

// GetRefreshConfig reads the single-row refresh_config table
func (s *SQLiteProvider) GetRefreshConfig() (*RefreshData, error) {
	row := s.db.QueryRow(`SELECT interval, fallback_mode, window_days, avg_bags_per_pax
		FROM refresh_config LIMIT 1`)

	r := &RefreshData{}
	err := row.Scan(&r.Interval, &r.FallbackMode, &r.WindowDays, &r.AvgBagsPerPax)
	if err == sql.ErrNoRows {
		return &RefreshData{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh config: %w", err)
	}
	return r, nil
}

// IsReadOnly returns false since SQLite configuration can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the underlying database handle
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
