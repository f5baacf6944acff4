package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	// Load into temporary struct with YAML tags
	var yamlConfig struct {
		Database *struct {
			Server         string `yaml:"server"`
			Port           int    `yaml:"port"`
			Name           string `yaml:"name"`
			User           string `yaml:"user"`
			Password       string `yaml:"password"`
			SSLMode        string `yaml:"ssl_mode"`
			ConnectTimeout int    `yaml:"connect_timeout"`
		} `yaml:"database,omitempty"`
		HTTP struct {
			ListenAddr string `yaml:"listen_addr"`
			Port       int    `yaml:"port"`
		} `yaml:"http,omitempty"`
		Refresh struct {
			Interval      string  `yaml:"interval"`
			FallbackMode  string  `yaml:"fallback_mode"`
			WindowDays    int     `yaml:"window_days"`
			AvgBagsPerPax float64 `yaml:"avg_bags_per_pax"`
		} `yaml:"refresh,omitempty"`
	}

	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	cfg := &ConfigData{
		HTTP: HTTPData{
			ListenAddr: yamlConfig.HTTP.ListenAddr,
			Port:       yamlConfig.HTTP.Port,
		},
		Refresh: RefreshData{
			Interval:      yamlConfig.Refresh.Interval,
			FallbackMode:  yamlConfig.Refresh.FallbackMode,
			WindowDays:    yamlConfig.Refresh.WindowDays,
			AvgBagsPerPax: yamlConfig.Refresh.AvgBagsPerPax,
		},
	}

	if yamlConfig.Database != nil {
		cfg.Database = &DatabaseData{
			Server:         yamlConfig.Database.Server,
			Port:           yamlConfig.Database.Port,
			Name:           yamlConfig.Database.Name,
			User:           yamlConfig.Database.User,
			Password:       yamlConfig.Database.Password,
			SSLMode:        yamlConfig.Database.SSLMode,
			ConnectTimeout: yamlConfig.Database.ConnectTimeout,
		}
	}

	y.config = cfg
	return cfg, nil
}

// GetDatabaseConfig returns the database configuration section
func (y *YAMLProvider) GetDatabaseConfig() (*DatabaseData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return y.config.Database, nil
}

// GetHTTPConfig returns the HTTP listener configuration section
func (y *YAMLProvider) GetHTTPConfig() (*HTTPData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return &y.config.HTTP, nil
}

// GetRefreshConfig returns the refresh cycle configuration section
func (y *YAMLProvider) GetRefreshConfig() (*RefreshData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return &y.config.Refresh, nil
}

// IsReadOnly returns true since YAML files are not modified at runtime
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML providers
func (y *YAMLProvider) Close() error {
	return nil
}

func (y *YAMLProvider) ensureLoaded() error {
	if y.config != nil {
		return nil
	}
	_, err := y.LoadConfig()
	return err
}
