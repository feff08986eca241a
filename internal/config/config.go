package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// EnvProduction is the env value that silences informational output.
const EnvProduction = "production"

// StoreConfig selects the File record store.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// FieldBinding attaches a field extension to a content field, the way a
// schema directive would. Path is the argument for the generic extension.
type FieldBinding struct {
	Field     string `mapstructure:"field"`
	Extension string `mapstructure:"extension"`
	Path      string `mapstructure:"path"`
}

// Config holds all runtime configuration for a filelink build.
// Values are populated from .filelink.toml, FILELINK_* env vars, and CLI flags.
type Config struct {
	RootDir string         `mapstructure:"root_dir"`
	Dirs    any            `mapstructure:"-"`
	Verbose bool           `mapstructure:"verbose"`
	Env     string         `mapstructure:"env"`
	Sources []string       `mapstructure:"sources"`
	Store   StoreConfig    `mapstructure:"store"`
	Fields  []FieldBinding `mapstructure:"fields"`
}

// Production reports whether the build runs in production mode.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
//
// The dirs option is kept raw for dirspec.Decode. Viper lower-cases nested
// keys, so a dirs table is re-read from the config file itself to keep the
// extension names exactly as written.
func Load() (Config, error) {
	viper.SetDefault("root_dir", ".")
	viper.SetDefault("verbose", false)
	viper.SetDefault("env", "development")
	viper.SetDefault("sources", []string{"**/*"})
	viper.SetDefault("store.driver", DriverMemory)
	viper.SetDefault("store.path", ".filelink/index.db")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Dirs = viper.Get("dirs")
	if _, isTable := cfg.Dirs.(map[string]any); isTable {
		if file := viper.ConfigFileUsed(); file != "" {
			raw, err := rawDirs(file)
			if err != nil {
				return Config{}, err
			}
			if raw != nil {
				cfg.Dirs = raw
			}
		}
	}

	switch cfg.Store.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("unknown store driver %q (want %s or %s)", cfg.Store.Driver, DriverMemory, DriverSQLite)
	}
	return cfg, nil
}

// rawDirs decodes only the dirs key of a TOML or YAML config file,
// preserving key case.
func rawDirs(file string) (any, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	var doc struct {
		Dirs any `toml:"dirs" yaml:"dirs"`
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parsing dirs in %s: %w", file, err)
	}
	return doc.Dirs, nil
}
