// Package config loads tablesort settings from defaults, an optional JSON
// file, TABLESORT_* environment variables and explicit overrides, in that order.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "TABLESORT_"

type Config struct {
	Storage StorageConfig `koanf:"storage"`
	Table   TableConfig   `koanf:"table"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

type StorageConfig struct {
	// Driver picks the medium: memory, sqlite or redis.
	Driver string `koanf:"driver" validate:"oneof=memory sqlite redis"`

	// Expiration is absolute (fixed TTL) or sliding (extended on read).
	Expiration string `koanf:"expiration" validate:"oneof=absolute sliding"`

	// TTL is the default lifetime of a stored preference.
	TTL time.Duration `koanf:"ttl" validate:"gt=0"`

	SQLitePath        string        `koanf:"sqlite_path"`
	SQLiteBusyTimeout time.Duration `koanf:"sqlite_busy_timeout" validate:"gte=0"`

	RedisAddr   string `koanf:"redis_addr" validate:"required_if=Driver redis"`
	RedisDB     int    `koanf:"redis_db" validate:"gte=0"`
	RedisPrefix string `koanf:"redis_prefix"`
}

type TableConfig struct {
	// Locale is a BCP 47 tag used to collate text columns.
	Locale   string `koanf:"locale" validate:"required,bcp47_language_tag"`
	CacheKey string `koanf:"cache_key"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON   bool   `koanf:"json"`
	Source bool   `koanf:"source"`
}

type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
}

func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Driver:            "sqlite",
			Expiration:        "absolute",
			TTL:               5 * time.Minute,
			SQLitePath:        "tablesort.db",
			SQLiteBusyTimeout: 5 * time.Second,
			RedisAddr:         "localhost:6379",
			RedisPrefix:       "tablesort:",
		},
		Table: TableConfig{
			Locale:   "und",
			CacheKey: "tablesort",
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Namespace: "tablesort",
		},
	}
}

// Load builds the configuration. file may be empty. overrides use koanf
// paths such as "storage.driver".
func Load(file string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if file != "" {
		data, err := readJSONFile(file)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawMap(maps.Unflatten(data, ".")), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(rawMap(maps.Unflatten(overrides, ".")), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Storage.Driver == "sqlite" && cfg.Storage.SQLitePath == "" {
		return fmt.Errorf("invalid config: storage.sqlite_path is required for the sqlite driver")
	}
	return nil
}

func readJSONFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return data, nil
}

// transformEnvKey converts STORAGE_REDIS_ADDR to storage.redis_addr.
func transformEnvKey(s string) string {
	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool { return r == '_' })
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	}
	return parts[0] + "." + strings.Join(parts[1:], "_")
}

// rawMap is a koanf.Provider adapter for map[string]any data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}
