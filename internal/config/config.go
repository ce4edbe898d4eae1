package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kozaktomas/photo-selector/internal/constants"
	"gopkg.in/yaml.v3"
)

//go:embed event.yaml
var eventYAML []byte

type Config struct {
	Event    EventConfig
	Catalog  CatalogConfig
	Storage  StorageConfig
	Database DatabaseConfig
	MariaDB  MariaDBConfig
	Log      LogConfig
	Web      WebConfig
}

// EventConfig describes the event whose photos are being selected.
// It is embedded at build time and may be replaced by EVENT_FILE.
type EventConfig struct {
	Name         string         `yaml:"name" toml:"name"`
	Contact      string         `yaml:"contact" toml:"contact"`
	Instructions string         `yaml:"instructions" toml:"instructions"`
	TimeZone     string         `yaml:"time_zone" toml:"time_zone"`
	TotalPhotos  int            `yaml:"total_photos" toml:"total_photos"`
	PhotoPattern string         `yaml:"photo_pattern" toml:"photo_pattern"`
	Limits       map[string]int `yaml:"limits" toml:"limits"`
}

type CatalogConfig struct {
	ImagesDir string // directory served under /images/ and scanned by tools
}

type StorageConfig struct {
	Backend string // file, sqlite, postgres, mariadb or memory
	Key     string // key of the persisted selection blob
	Path    string // file or sqlite database path
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type MariaDBConfig struct {
	DSN string // e.g. selector:selector@tcp(mariadb:3306)/selector?parseTime=true
}

type LogConfig struct {
	Level string
}

type WebConfig struct {
	Host               string
	Port               int
	AllowedOrigins     []string // extra CORS origins; localhost is always allowed
	FlushRatePerMinute int
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Load builds the configuration from the environment. An unreadable
// EVENT_FILE is returned as an error; the embedded event is used otherwise.
func Load() (*Config, error) {
	event, err := DefaultEvent()
	if err != nil {
		return nil, err
	}
	if path := os.Getenv("EVENT_FILE"); path != "" {
		event, err = LoadEventFile(path)
		if err != nil {
			return nil, err
		}
	}
	event.TotalPhotos = envInt("TOTAL_PHOTOS", event.TotalPhotos)

	return &Config{
		Event: event,
		Catalog: CatalogConfig{
			ImagesDir: envString("IMAGES_DIR", constants.DefaultImagesDir),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(envString("STORAGE_BACKEND", constants.DefaultStorageBackend)),
			Key:     envString("STORAGE_KEY", constants.DefaultStorageKey),
			Path:    envString("STORAGE_PATH", constants.DefaultStoragePath),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		MariaDB: MariaDBConfig{
			DSN: os.Getenv("MARIADB_DSN"),
		},
		Log: LogConfig{
			Level: envString("LOG_LEVEL", "info"),
		},
		Web: WebConfig{
			Host:               envString("WEB_HOST", constants.DefaultWebHost),
			Port:               envInt("WEB_PORT", constants.DefaultWebPort),
			AllowedOrigins:     splitList(os.Getenv("WEB_ALLOWED_ORIGINS")),
			FlushRatePerMinute: envInt("FLUSH_RATE_PER_MINUTE", constants.DefaultFlushRatePerMinute),
		},
	}, nil
}

// DefaultEvent returns the event embedded at build time.
func DefaultEvent() (EventConfig, error) {
	var event EventConfig
	if err := yaml.Unmarshal(eventYAML, &event); err != nil {
		return EventConfig{}, fmt.Errorf("parse embedded event.yaml: %w", err)
	}
	return event.withDefaults(), nil
}

// LoadEventFile reads an event description from a YAML or TOML file,
// chosen by extension.
func LoadEventFile(path string) (EventConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EventConfig{}, fmt.Errorf("read event file: %w", err)
	}

	var event EventConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &event); err != nil {
			return EventConfig{}, fmt.Errorf("parse event file %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &event); err != nil {
			return EventConfig{}, fmt.Errorf("parse event file %s: %w", path, err)
		}
	default:
		return EventConfig{}, fmt.Errorf("unsupported event file extension %q", filepath.Ext(path))
	}
	return event.withDefaults(), nil
}

func (e EventConfig) withDefaults() EventConfig {
	if e.TotalPhotos <= 0 {
		e.TotalPhotos = constants.DefaultTotalPhotos
	}
	if e.PhotoPattern == "" {
		e.PhotoPattern = constants.DefaultPhotoPattern
	}
	if e.TimeZone == "" {
		e.TimeZone = "UTC"
	}
	if e.Limits == nil {
		e.Limits = map[string]int{
			"print":       constants.DefaultPrintLimit,
			"enlargement": constants.DefaultEnlargementLimit,
		}
	}
	return e
}
