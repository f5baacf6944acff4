package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables recognized as credential overrides. These mirror
// how the deployment pipeline passes the ERP Postgres credentials to the
// service.
const (
	EnvDBServer   = "FLIGHTCAP_DB_SERVER"
	EnvDBName     = "FLIGHTCAP_DB_NAME"
	EnvDBUser     = "FLIGHTCAP_DB_USER"
	EnvDBPassword = "FLIGHTCAP_DB_PASSWORD"
)

// ApplyEnvOverrides loads a .env file if present and overlays database
// credentials from the environment onto cfg. Environment values win over
// file values. If no database section exists and at least one variable is
// set, a section is created so a bare-environment deployment still works.
func ApplyEnvOverrides(cfg *ConfigData) {
	// Missing .env is the normal case outside development
	_ = godotenv.Load()

	server := os.Getenv(EnvDBServer)
	name := os.Getenv(EnvDBName)
	user := os.Getenv(EnvDBUser)
	password := os.Getenv(EnvDBPassword)

	if server == "" && name == "" && user == "" && password == "" {
		return
	}

	if cfg.Database == nil {
		cfg.Database = &DatabaseData{}
	}
	if server != "" {
		cfg.Database.Server = server
	}
	if name != "" {
		cfg.Database.Name = name
	}
	if user != "" {
		cfg.Database.User = user
	}
	if password != "" {
		cfg.Database.Password = password
	}
}
