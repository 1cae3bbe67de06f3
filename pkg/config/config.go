package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Elevation ElevationConfig `yaml:"elevation"`
	Log       LogConfig       `yaml:"log"`
	DB        DBConfig        `yaml:"db"`
	Server    ServerConfig    `yaml:"server"`
}

// SchedulerConfig holds the location-generator and queue-refresh settings
// shared across HexSearch, HexSearchSpawnpoint, SpawnScan and SpeedScan.
type SchedulerConfig struct {
	Name string `yaml:"name"` // hexsearch, hexsearchspawnpoint, spawnscan, speedscan

	CenterLat float64 `yaml:"center_lat"`
	CenterLng float64 `yaml:"center_lng"`

	StepLimit int `yaml:"step_limit"`
	NoPokemon bool `yaml:"no_pokemon"`

	ScanDelay Duration `yaml:"scan_delay"`
	KPH       float64  `yaml:"kph"`

	// SpawnpointScanning is the path to a sidecar JSON file of known
	// spawn points, or "nofile" to disable file-based loading and fall
	// back to storage.
	SpawnpointScanning string   `yaml:"spawnpoint_scanning"`
	SpawnDelay         Duration `yaml:"spawn_delay"`

	RefreshInterval Duration `yaml:"refresh_interval"`

	// Workers is the parallel worker count, used for metrics only — the
	// scheduler itself has no notion of a worker pool.
	Workers int `yaml:"workers"`

	// ProxyRotation selects the sibling proxy module's rotation strategy.
	// Not scheduler state; carried here purely so one config file drives
	// the whole deployment.
	ProxyRotation string `yaml:"proxy_rotation"` // none, round, random
}

// ElevationConfig holds settings for the elevation-cache collaborator.
type ElevationConfig struct {
	GoogleMapsKey    string   `yaml:"-"` // loaded from env
	DefaultAltitude  Distance `yaml:"default_altitude"`
	AltitudeRange    Distance `yaml:"altitude_range"`
	CacheFirstResult bool     `yaml:"cache_first_result"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server   LogSettings `yaml:"server"`
	Requests LogSettings `yaml:"requests"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// DBConfig holds database settings.
type DBConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds the worker-facing HTTP API settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scheduler: SchedulerConfig{
			Name:               "speedscan",
			StepLimit:          10,
			ScanDelay:          Duration(10 * time.Second),
			KPH:                35,
			SpawnpointScanning: "nofile",
			SpawnDelay:         Duration(10 * time.Second),
			RefreshInterval:    Duration(5 * time.Minute),
			Workers:            1,
			ProxyRotation:      "none",
		},
		Elevation: ElevationConfig{
			DefaultAltitude:  Distance(8.0),
			AltitudeRange:    Distance(1.0),
			CacheFirstResult: true,
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
			Requests: LogSettings{
				Path:  "./logs/requests.log",
				Level: "INFO",
			},
		},
		DB: DBConfig{
			Path: "./data/scanscheduler.db",
		},
		Server: ServerConfig{
			Address: "localhost:9001",
		},
	}
}

// Load loads the configuration from the given path. If the file does not
// exist, it is created with default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		_ = godotenv.Load(".env.local", ".env")
		loadSecretsFromEnv(cfg)

		return cfg, nil
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# scanscheduler configuration
# ---------------------------
# Supported units:
#   Duration: ns, us (or µs), ms, s, m, h, d (day), w (week)
#   Distance: m (meters), km (kilometers), nm (nautical miles), ft (feet)

`)
	data = append(header, data...)

	reName := regexp.MustCompile(`(?m)^(\s+)name:`)
	data = reName.ReplaceAll(data, []byte("${1}# Options: hexsearch, hexsearchspawnpoint, spawnscan, speedscan\n${1}name:"))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path if one
// does not already exist.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return Save(path, DefaultConfig())
}

func loadSecretsFromEnv(cfg *Config) {
	if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
		cfg.Elevation.GoogleMapsKey = key
	}
}
