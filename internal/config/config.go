package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration, loaded from YAML with environment
// variable overrides.
type Config struct {
	Server ServerConfig `yaml:"server"`
	TLS    TLSConfig    `yaml:"tls"`
	Data   DataConfig   `yaml:"data"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type TLSConfig struct {
	Enabled    bool   `yaml:"enabled"`
	CertFile   string `yaml:"cert_file"`
	KeyFile    string `yaml:"key_file"`
	MinVersion string `yaml:"min_version"` // "1.0" .. "1.3"
}

type DataConfig struct {
	// Dir is the root data directory; DBPath, RosterPath and SoundsDir
	// default to locations under it when left empty.
	Dir        string `yaml:"dir"`
	DBPath     string `yaml:"db_path"`
	RosterPath string `yaml:"roster_path"`
	SoundsDir  string `yaml:"sounds_dir"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: "8080"},
		TLS:    TLSConfig{MinVersion: "1.2"},
		Data: DataConfig{
			Dir: "./data",
		},
		Log: LogConfig{Level: "info", Pretty: false},
	}
}

// Load reads the YAML config at path, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(cfg)
	cfg.fillDefaults()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Data.DBPath = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("ROSTER_PATH"); v != "" {
		cfg.Data.RosterPath = v
	}
	if v := os.Getenv("SOUNDS_DIR"); v != "" {
		cfg.Data.SoundsDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func (c *Config) fillDefaults() {
	if c.Data.Dir == "" {
		c.Data.Dir = "./data"
	}
	if c.Data.DBPath == "" {
		c.Data.DBPath = c.Data.Dir + "/activities.db"
	}
	if c.Data.RosterPath == "" {
		c.Data.RosterPath = c.Data.Dir + "/students.json"
	}
	if c.Data.SoundsDir == "" {
		c.Data.SoundsDir = c.Data.Dir + "/sounds"
	}
}
