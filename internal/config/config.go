package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Engine      string `mapstructure:"engine"` // "file" (on device) or "memory" (blob-store backed)
	Path        string `mapstructure:"path"`
	SnapshotDir string `mapstructure:"snapshot_dir"` // blob store dir for the memory engine
	SnapshotKey string `mapstructure:"snapshot_key"`
	LogMode     bool   `mapstructure:"log_mode"`
}

type BackupConfig struct {
	Dir           string `mapstructure:"dir"`
	EncryptionKey string `mapstructure:"encryption_key"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Log      LogConfig      `mapstructure:"log"`
}

var (
	appConfig *Config
	loadErr   error
	once      sync.Once
)

// Load loads configuration from given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in current working directory.
// Load is single-shot: the first call decides the result, and every later
// call returns that same config or error.
func Load(path string) (*Config, error) {
	once.Do(func() {
		appConfig, loadErr = load(path)
	})
	return appConfig, loadErr
}

func load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetDefault("database.engine", "file")
	v.SetDefault("database.path", "data/expenses.db")
	v.SetDefault("database.snapshot_dir", "data/snapshots")
	v.SetDefault("backup.dir", "data/backups")
	v.SetDefault("log.level", "info")

	// environment overrides, e.g. MTE_DATABASE_ENGINE=memory
	v.SetEnvPrefix("MTE") // my track expenses
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// no config.yaml found, run on defaults and env
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
