package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
	Log      LogConfig      `yaml:"log"`
	Activity ActivityConfig `yaml:"activity"`
	Report   ReportConfig   `yaml:"report"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

// StoreConfig controls the simulated network latency of entity store
// operations. Zero values disable the delay; tests rely on this.
type StoreConfig struct {
	LatencyMinMs int `yaml:"latency_min_ms"`
	LatencyMaxMs int `yaml:"latency_max_ms"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type ActivityConfig struct {
	RetentionDays int `yaml:"retention_days"`
}

type ReportConfig struct {
	// Country code for the business-day calendar used by schedule health
	// reports (US, GB, DE, FR, JP). "NONE" counts weekends only.
	Country string `yaml:"country"`
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.overrideFromEnv()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			// In-memory database: collections reset to seed data on restart.
			DSN: "file::memory:?cache=shared",
		},
		Store: StoreConfig{
			LatencyMinMs: 200,
			LatencyMaxMs: 400,
		},
		Log: LogConfig{
			Level: "info",
		},
		Activity: ActivityConfig{
			RetentionDays: 30,
		},
		Report: ReportConfig{
			Country: "US",
		},
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if minMs := os.Getenv("STORE_LATENCY_MIN_MS"); minMs != "" {
		if v, err := strconv.Atoi(minMs); err == nil {
			c.Store.LatencyMinMs = v
		}
	}
	if maxMs := os.Getenv("STORE_LATENCY_MAX_MS"); maxMs != "" {
		if v, err := strconv.Atoi(maxMs); err == nil {
			c.Store.LatencyMaxMs = v
		}
	}
	if days := os.Getenv("ACTIVITY_RETENTION_DAYS"); days != "" {
		if v, err := strconv.Atoi(days); err == nil {
			c.Activity.RetentionDays = v
		}
	}
	if country := os.Getenv("REPORT_COUNTRY"); country != "" {
		c.Report.Country = country
	}
}

func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = "config.yaml"
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
