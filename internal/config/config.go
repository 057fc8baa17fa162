// Package config loads ghostline.cfg.json through viper and exposes typed
// views of the sections the recorder consumes.
package config

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "ghostline.cfg.json"

// DefaultTriggerSize is the trigger half-extent used when none is configured.
var DefaultTriggerSize = mgl32.Vec3{2.5, 2.5, 2.5}

// StorageConfig selects and configures the run-history backend.
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// SQLiteConfig configures the sqlite backend. An empty Path keeps the
// database in memory and dumps it to DumpPath every DumpInterval.
type SQLiteConfig struct {
	Path         string        `json:"path" mapstructure:"path"`
	DumpPath     string        `json:"dumpPath" mapstructure:"dumpPath"`
	DumpInterval time.Duration `json:"dumpInterval" mapstructure:"dumpInterval"`
}

// DBConfig holds postgres connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// InfluxConfig holds run metric settings.
type InfluxConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Protocol string `mapstructure:"protocol"`
	Token    string `mapstructure:"token"`
	Org      string `mapstructure:"org"`
	Bucket   string `mapstructure:"bucket"`
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// RecordingConfig holds the initial PathLog modes and comparison location.
type RecordingConfig struct {
	Autosave      bool
	DirectMode    bool
	ComparisonDir string
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// SetDefaults registers every default. Load calls it; commands that run
// without a config file call it directly.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./ghostlogs")

	viper.SetDefault("trigger.size", []float64{2.5, 2.5, 2.5})

	viper.SetDefault("recording.autosave", false)
	viper.SetDefault("recording.directMode", false)
	viper.SetDefault("comparison.dir", "./comparisons")

	viper.SetDefault("colors.path", "#3fa7ff")
	viper.SetDefault("colors.selected", "#ffd23f")
	viper.SetDefault("colors.trigger", "#3fff7a")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.sqlite.path", "")
	viper.SetDefault("storage.sqlite.dumpPath", "./ghostline_runs.db")
	viper.SetDefault("storage.sqlite.dumpInterval", "3m")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "ghostline")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "ghostline")
	viper.SetDefault("influx.bucket", "runs")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "ghostline")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetTriggerSize returns the half-extents used for new triggers. Malformed
// values fall back to the default size.
func GetTriggerSize() mgl32.Vec3 {
	size := DefaultTriggerSize
	raw := viper.Get("trigger.size")
	var values []float64
	switch v := raw.(type) {
	case []float64:
		values = v
	case []any:
		for _, e := range v {
			f, ok := toFloat(e)
			if !ok {
				return DefaultTriggerSize
			}
			values = append(values, f)
		}
	}
	if len(values) != 3 {
		return DefaultTriggerSize
	}
	for i, f := range values {
		if f <= 0 {
			return DefaultTriggerSize
		}
		size[i] = float32(f)
	}
	return size
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// GetStorageConfig returns the run-history backend configuration.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		SQLite: SQLiteConfig{
			Path:         viper.GetString("storage.sqlite.path"),
			DumpPath:     viper.GetString("storage.sqlite.dumpPath"),
			DumpInterval: viper.GetDuration("storage.sqlite.dumpInterval"),
		},
	}
}

// GetDBConfig returns the postgres connection settings.
func GetDBConfig() DBConfig {
	return DBConfig{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
	}
}

// GetInfluxConfig returns the run metric settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Protocol: viper.GetString("influx.protocol"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
		Bucket:   viper.GetString("influx.bucket"),
	}
}

// GetOTelConfig returns the OpenTelemetry configuration.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetRecordingConfig returns the initial recording modes.
func GetRecordingConfig() RecordingConfig {
	return RecordingConfig{
		Autosave:      viper.GetBool("recording.autosave"),
		DirectMode:    viper.GetBool("recording.directMode"),
		ComparisonDir: viper.GetString("comparison.dir"),
	}
}

// GetColors returns the presentation colors keyed by element.
func GetColors() map[string]string {
	return viper.GetStringMapString("colors")
}
