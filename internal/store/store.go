package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/RamXX/beads/internal/model"
	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"
	"github.com/spf13/viper"
)

const (
	// DirName is the store root marker searched for by FindRoot.
	DirName    = ".beads"
	IssuesFile = "issues.jsonl"
	ConfigFile = "config.json"

	SchemaVersion = "1.0.0"
)

// Settings are the behavioural switches kept in config.json.
type Settings struct {
	AutoCloseChildren  bool `json:"auto_close_children" mapstructure:"auto_close_children"`
	RequireNoteOnClose bool `json:"require_note_on_close" mapstructure:"require_note_on_close"`
}

// Config is the record stored next to the collection file.
type Config struct {
	Version  string   `json:"version" mapstructure:"version"`
	Created  string   `json:"created" mapstructure:"created"`
	Settings Settings `json:"settings" mapstructure:"settings"`
}

// DefaultConfig returns the record written by Init.
func DefaultConfig(now time.Time) Config {
	return Config{
		Version: SchemaVersion,
		Created: model.NewTimestamp(now).String(),
		Settings: Settings{
			AutoCloseChildren:  true,
			RequireNoteOnClose: false,
		},
	}
}

// Store is an opened store root. It holds no beads; every View or Update
// reads the collection file afresh.
type Store struct {
	root   string
	config Config
	now    func() time.Time
}

// FindRoot walks upward from start looking for a .beads directory and
// returns its path.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(dir, DirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialized
		}
		dir = parent
	}
}

// Init creates the store root under dir with an empty collection file and a
// default config record. Existing files are left untouched; created reports
// whether anything was written.
func Init(dir string) (root string, created bool, err error) {
	root = filepath.Join(dir, DirName)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", false, fmt.Errorf("mkdir %s: %w", root, err)
	}

	issues := filepath.Join(root, IssuesFile)
	if _, err := os.Stat(issues); errors.Is(err, fs.ErrNotExist) {
		if err := atomic.WriteFile(issues, strings.NewReader("")); err != nil {
			return "", false, fmt.Errorf("create %s: %w", issues, err)
		}
		created = true
	}

	cfgPath := filepath.Join(root, ConfigFile)
	if _, err := os.Stat(cfgPath); errors.Is(err, fs.ErrNotExist) {
		if err := writeConfig(cfgPath, DefaultConfig(time.Now())); err != nil {
			return "", false, err
		}
		created = true
	}
	return root, created, nil
}

// Open loads the config record of an existing store root. A missing record
// yields defaults; BEADS_SETTINGS_* environment variables override it.
func Open(root string) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, ErrNotInitialized
	}
	s := &Store{root: root, now: time.Now}
	if err := s.loadConfig(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return s, nil
}

func (s *Store) loadConfig() error {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("BEADS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("version", SchemaVersion)
	v.SetDefault("created", "")
	v.SetDefault("settings.auto_close_children", true)
	v.SetDefault("settings.require_note_on_close", false)

	path := s.ConfigPath()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debug("config record missing, using defaults", "path", path)
	case err != nil:
		return fmt.Errorf("read %s: %w", path, err)
	default:
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
		}
	}
	if err := v.Unmarshal(&s.config); err != nil {
		return fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
	}
	return nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Root returns the .beads directory.
func (s *Store) Root() string { return s.root }

// IssuesPath returns the collection file path.
func (s *Store) IssuesPath() string { return filepath.Join(s.root, IssuesFile) }

// ConfigPath returns the config record path.
func (s *Store) ConfigPath() string { return filepath.Join(s.root, ConfigFile) }

// Config returns the effective configuration, env overrides included.
func (s *Store) Config() Config { return s.config }

// SetClock replaces the time source used by mutations.
func (s *Store) SetClock(now func() time.Time) { s.now = now }

// Load reads the collection file.
func (s *Store) Load() ([]*model.Bead, error) {
	return LoadFile(s.IssuesPath())
}

// View loads the collection and passes it to fn. Nothing is written.
func (s *Store) View(fn func(beads []*model.Bead) error) error {
	beads, err := s.Load()
	if err != nil {
		return err
	}
	return fn(beads)
}

// Update loads the collection, applies fn and saves the result once. If fn
// returns an error nothing is written. There is no locking: two processes
// updating the same store concurrently race, and the last save wins.
func (s *Store) Update(fn func(c *Collection) error) error {
	beads, err := s.Load()
	if err != nil {
		return err
	}
	c := NewCollection(beads, s.config.Settings, s.now)
	if err := fn(c); err != nil {
		return err
	}
	if err := SaveFile(s.IssuesPath(), c.Beads); err != nil {
		return err
	}
	log.Debug("saved collection", "path", s.IssuesPath(), "beads", len(c.Beads))
	return nil
}

// ConfigKeys lists the keys accepted by GetConfigValue, in display order.
var ConfigKeys = []string{
	"version",
	"created",
	"settings.auto_close_children",
	"settings.require_note_on_close",
}

// GetConfigValue returns the effective value of a config key.
func (s *Store) GetConfigValue(key string) (string, error) {
	switch key {
	case "version":
		return s.config.Version, nil
	case "created":
		return s.config.Created, nil
	case "settings.auto_close_children":
		return strconv.FormatBool(s.config.Settings.AutoCloseChildren), nil
	case "settings.require_note_on_close":
		return strconv.FormatBool(s.config.Settings.RequireNoteOnClose), nil
	default:
		return "", fmt.Errorf("%w: unknown config key %q", model.ErrInvalid, key)
	}
}

// SetConfigValue updates a setting in config.json. The file on disk is
// re-read so environment overrides are never persisted.
func (s *Store) SetConfigValue(key, value string) error {
	b, err := parseBool(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrInvalid, key, err)
	}

	cfg := DefaultConfig(time.Now())
	data, err := os.ReadFile(s.ConfigPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return fmt.Errorf("read %s: %w", s.ConfigPath(), err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("%s: %w: %v", s.ConfigPath(), ErrMalformed, err)
		}
	}

	switch key {
	case "settings.auto_close_children":
		cfg.Settings.AutoCloseChildren = b
		s.config.Settings.AutoCloseChildren = b
	case "settings.require_note_on_close":
		cfg.Settings.RequireNoteOnClose = b
		s.config.Settings.RequireNoteOnClose = b
	case "version", "created":
		return fmt.Errorf("%w: config key %q is read-only", model.ErrInvalid, key)
	default:
		return fmt.Errorf("%w: unknown config key %q", model.ErrInvalid, key)
	}
	return writeConfig(s.ConfigPath(), cfg)
}

// ConfigEntries returns all config fields as key-value pairs for listing.
func (s *Store) ConfigEntries() [][2]string {
	entries := make([][2]string, 0, len(ConfigKeys))
	for _, k := range ConfigKeys {
		v, _ := s.GetConfigValue(k)
		entries = append(entries, [2]string{k, v})
	}
	return entries
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value %q", value)
}
