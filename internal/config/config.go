// Package config loads archeologist settings from defaults, an optional
// TOML file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"archeologist/internal/application"
	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

const (
	// DefaultBackendURL is where the analysis backend listens by default
	DefaultBackendURL = "http://localhost:8005"

	// DefaultServerAddr is the development backend's listen address
	DefaultServerAddr = "localhost:8005"

	appName = "archeologist"
)

// Environment overrides
const (
	EnvBackend  = "ARCHEOLOGIST_BACKEND"
	EnvConfig   = "ARCHEOLOGIST_CONFIG"
	EnvSnapshot = "ARCHEOLOGIST_SNAPSHOT"
)

// Config holds archeologist configuration.
type Config struct {
	Backend BackendConfig      `toml:"backend"`
	Camera  CameraConfig       `toml:"camera"`
	Panels  PanelsConfig       `toml:"panels"`
	Layout  ports.LayoutParams `toml:"layout"`
	Cache   CacheConfig        `toml:"cache"`
	Log     LogConfig          `toml:"log"`
	Server  ServerConfig       `toml:"server"`
}

// BackendConfig locates the graph source. Snapshot, when set, replaces the
// HTTP backend with a graph JSON file.
type BackendConfig struct {
	URL      string `toml:"url" validate:"required,url"`
	Snapshot string `toml:"snapshot"`
}

// CameraConfig controls camera transitions.
type CameraConfig struct {
	TransitionMS  int        `toml:"transition_ms" validate:"gt=0"`
	FocusDistance float64    `toml:"focus_distance" validate:"gt=0"`
	Overview      [3]float64 `toml:"overview"`
}

// PanelsConfig bounds the resizable panels. Sizes are in pixels; the
// terminal maps cells to pixels with CellWidth and CellHeight.
type PanelsConfig struct {
	Left         application.Bounds `toml:"left"`
	Right        application.Bounds `toml:"right"`
	Sub          application.Bounds `toml:"sub"`
	InitialLeft  int                `toml:"initial_left" validate:"gt=0"`
	InitialRight int                `toml:"initial_right" validate:"gt=0"`
	InitialSub   int                `toml:"initial_sub" validate:"gt=0"`
	CellWidth    int                `toml:"cell_width" validate:"gt=0"`
	CellHeight   int                `toml:"cell_height" validate:"gt=0"`
}

// CacheConfig controls the graph snapshot cache.
type CacheConfig struct {
	Path     string `toml:"path"`
	Disabled bool   `toml:"disabled"`
}

// LogConfig controls logging. File "auto" logs under the XDG state dir;
// an empty file disables logging.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// ServerConfig controls the development backend.
type ServerConfig struct {
	Addr string `toml:"addr" validate:"required,hostname_port"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{URL: DefaultBackendURL},
		Camera: CameraConfig{
			TransitionMS:  int(application.DefaultTransition / time.Millisecond),
			FocusDistance: application.DefaultFocusDistance,
			Overview:      [3]float64{0, 0, 220},
		},
		Panels: PanelsConfig{
			Left:         application.Bounds{Min: 200, Max: 500},
			Right:        application.Bounds{Min: 200, Max: 500},
			Sub:          application.Bounds{Min: 150, Max: 400},
			InitialLeft:  320,
			InitialRight: 320,
			InitialSub:   320,
			CellWidth:    8,
			CellHeight:   16,
		},
		Layout: ports.LayoutParams{
			LinkDistance:  40,
			LinkStrength:  0.8,
			Charge:        -15,
			CenterForce:   0.5,
			WarmupTicks:   120,
			CooldownTicks: 80,
			Seed:          1,
		},
		Log:    LogConfig{Level: "info"},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// Dir returns the archeologist config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// StateDir returns the directory for logs and the graph cache.
func StateDir() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, appName)
}

// Path returns the config file path from ARCHEOLOGIST_CONFIG,
// falling back to config.toml in Dir.
func Path() string {
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file at path, or Path() when path is empty.
// A missing file is not an error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = Path()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if env := os.Getenv(EnvBackend); env != "" {
		c.Backend.URL = env
	}
	if env := os.Getenv(EnvSnapshot); env != "" {
		c.Backend.Snapshot = env
	}
}

var validate = validator.New()

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to path.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Navigation returns the camera pose constants
func (c *Config) Navigation() application.NavigationConfig {
	return application.NavigationConfig{
		Transition:    time.Duration(c.Camera.TransitionMS) * time.Millisecond,
		FocusDistance: c.Camera.FocusDistance,
		OverviewPosition: domain.Vec3{
			X: c.Camera.Overview[0],
			Y: c.Camera.Overview[1],
			Z: c.Camera.Overview[2],
		},
	}
}

// PanelConfig returns the panel bounds and initial sizes
func (c *Config) PanelConfig() application.PanelConfig {
	return application.PanelConfig{
		Left:  c.Panels.Left,
		Right: c.Panels.Right,
		Sub:   c.Panels.Sub,
		Initial: application.PanelSizes{
			Left:  c.Panels.InitialLeft,
			Right: c.Panels.InitialRight,
			Sub:   c.Panels.InitialSub,
		},
	}
}

// CachePath returns the SQLite cache location, or "" when disabled
func (c *Config) CachePath() string {
	if c.Cache.Disabled {
		return ""
	}
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(StateDir(), "graph.db")
}

// LogPath resolves the log file setting
func (c LogConfig) LogPath() string {
	if c.File == "auto" {
		return filepath.Join(StateDir(), appName+".log")
	}
	return c.File
}
