package config

import (
	"fmt"
	"time"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetDatabaseConfig() (*DatabaseData, error)
	GetHTTPConfig() (*HTTPData, error)
	GetRefreshConfig() (*RefreshData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Database *DatabaseData `json:"database,omitempty"`
	HTTP     HTTPData      `json:"http,omitempty"`
	Refresh  RefreshData   `json:"refresh,omitempty"`
}

// DatabaseData holds connection settings for the cargo capacity database.
// A nil Database section (or one left incomplete after environment
// overrides) puts the service into synthetic-data mode rather than
// failing startup.
type DatabaseData struct {
	Server         string `json:"server"`
	Port           int    `json:"port,omitempty"`
	Name           string `json:"name"`
	User           string `json:"user"`
	Password       string `json:"password"`
	SSLMode        string `json:"ssl_mode,omitempty"`
	ConnectTimeout int    `json:"connect_timeout,omitempty"`
}

// HTTPData holds the listen configuration for the notification API
type HTTPData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
}

// RefreshData holds the chart refresh cycle configuration
type RefreshData struct {
	Interval      string  `json:"interval,omitempty"`
	FallbackMode  string  `json:"fallback_mode,omitempty"`
	WindowDays    int     `json:"window_days,omitempty"`
	AvgBagsPerPax float64 `json:"avg_bags_per_pax,omitempty"`
}

// Fallback modes for a failed database fetch
const (
	FallbackSynthetic = "synthetic"
	FallbackError     = "error"
)

// Complete reports whether enough fields are present to attempt a
// database connection.
func (d *DatabaseData) Complete() bool {
	return d != nil && d.Server != "" && d.Name != "" && d.User != "" && d.Password != ""
}

// DSN builds a keyword/value connection string for the postgres driver
func (d *DatabaseData) DSN() string {
	port := d.Port
	if port == 0 {
		port = 5432
	}
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}
	timeout := d.ConnectTimeout
	if timeout == 0 {
		timeout = 30
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s connect_timeout=%d",
		d.Server, port, d.Name, d.User, d.Password, sslMode, timeout)
}

// IntervalDuration parses the refresh interval, defaulting to 3 minutes
func (r *RefreshData) IntervalDuration() time.Duration {
	if r.Interval == "" {
		return 3 * time.Minute
	}
	d, err := time.ParseDuration(r.Interval)
	if err != nil || d <= 0 {
		return 3 * time.Minute
	}
	return d
}

// Window returns the fetch window length in days, defaulting to 15
func (r *RefreshData) Window() int {
	if r.WindowDays <= 0 {
		return 15
	}
	return r.WindowDays
}

// BagsPerPax returns the average checked bags per passenger used for
// baggage volume estimation, defaulting to 1.3
func (r *RefreshData) BagsPerPax() float64 {
	if r.AvgBagsPerPax <= 0 {
		return 1.3
	}
	return r.AvgBagsPerPax
}

// Fallback returns the configured fallback mode, defaulting to synthetic
func (r *RefreshData) Fallback() string {
	if r.FallbackMode == FallbackError {
		return FallbackError
	}
	return FallbackSynthetic
}
