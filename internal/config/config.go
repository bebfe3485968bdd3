package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/multierr"

	"github.com/justyntemme/boky-t/internal/content"
	"github.com/justyntemme/boky-t/internal/corpus"
	"github.com/justyntemme/boky-t/pkg/models"
)

const (
	configFileName  = "config.toml"
	configDirName   = "boky-t"
	envPrefix       = "BOKY_"
	MaxRecentlyRead = 10 // Maximum number of recently read titles to track
)

// RecentlyReadEntry represents a recently opened title
type RecentlyReadEntry struct {
	TitleID  string    `toml:"title_id"`
	Label    string    `toml:"label"`
	OpenedAt time.Time `toml:"opened_at"`
}

// CorpusConfig points at the directory holding the four JSON tables
type CorpusConfig struct {
	Dir string `toml:"dir"`
}

// LibraryConfig controls how books are classified and titled
type LibraryConfig struct {
	RootTitle     string   `toml:"root_title"`
	Numbered      []string `toml:"numbered"`
	SingleChapter []string `toml:"single_chapter"`
}

// ReaderConfig holds the reading preferences
type ReaderConfig struct {
	Zoom         int                 `toml:"zoom"`
	Theme        string              `toml:"theme"`
	RecentlyRead []RecentlyReadEntry `toml:"recently_read,omitempty"`
}

// Config holds the application configuration
type Config struct {
	Corpus  CorpusConfig  `toml:"corpus"`
	Library LibraryConfig `toml:"library"`
	Reader  ReaderConfig  `toml:"reader"`
	Logging LoggingConfig `toml:"logging"`

	// Path to config file (not persisted)
	path string
}

// Default returns a configuration with every default filled in
func Default() *Config {
	cls := corpus.DefaultClassification()
	return &Config{
		Corpus: CorpusConfig{Dir: "data"},
		Library: LibraryConfig{
			RootTitle:     "Boky Fivavahana",
			Numbered:      cls.Numbered,
			SingleChapter: cls.SingleChapter,
		},
		Reader: ReaderConfig{
			Zoom:  content.DefaultZoom,
			Theme: "default",
		},
		Logging: LoggingConfig{
			Console: LoggerConfig{Level: "normal"},
			File:    LoggerConfig{Level: "none", Mode: "overwrite"},
		},
	}
}

// Load reads the configuration at path, or at the default location when
// path is empty. A missing file yields the defaults. Environment overrides
// are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Config doesn't exist, use defaults
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.UpdateFromEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromString parses configuration from a TOML string
func LoadFromString(content string) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the configuration is saved to
func (c *Config) Path() string {
	return c.path
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var err error
	if c.Reader.Zoom < content.MinZoom || c.Reader.Zoom > content.MaxZoom {
		err = multierr.Append(err, fmt.Errorf("reader.zoom %d outside [%d, %d]", c.Reader.Zoom, content.MinZoom, content.MaxZoom))
	}
	return multierr.Append(err, c.Logging.Validate())
}

// Save persists the configuration to disk
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no file location")
	}
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0600)
}

// Dump writes the effective configuration as TOML
func (c *Config) Dump(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(c)
}

// Classification returns the book classification of the library section
func (c *Config) Classification() corpus.Classification {
	return corpus.Classification{
		Numbered:      slices.Clone(c.Library.Numbered),
		SingleChapter: slices.Clone(c.Library.SingleChapter),
	}
}

// Zoom returns the stored zoom percentage
func (c *Config) Zoom() int {
	return c.Reader.Zoom
}

// SetZoom updates the zoom percentage and saves
func (c *Config) SetZoom(percent int) error {
	c.Reader.Zoom = content.ClampZoom(percent)
	return c.Save()
}

// SetTheme updates the theme name and saves
func (c *Config) SetTheme(name string) error {
	c.Reader.Theme = name
	return c.Save()
}

// AddRecentlyRead moves a title to the front of the recently read list and saves
func (c *Config) AddRecentlyRead(titleID models.ID, label string) error {
	// Remove existing entry for this title if present
	newList := make([]RecentlyReadEntry, 0, MaxRecentlyRead)
	for _, entry := range c.Reader.RecentlyRead {
		if entry.TitleID != titleID.String() {
			newList = append(newList, entry)
		}
	}

	entry := RecentlyReadEntry{
		TitleID:  titleID.String(),
		Label:    label,
		OpenedAt: time.Now().UTC().Truncate(time.Second),
	}
	c.Reader.RecentlyRead = append([]RecentlyReadEntry{entry}, newList...)

	if len(c.Reader.RecentlyRead) > MaxRecentlyRead {
		c.Reader.RecentlyRead = c.Reader.RecentlyRead[:MaxRecentlyRead]
	}
	return c.Save()
}

// RecentlyReadIDs returns the recently read title ids, newest first
func (c *Config) RecentlyReadIDs() []models.ID {
	ids := make([]models.ID, len(c.Reader.RecentlyRead))
	for i, entry := range c.Reader.RecentlyRead {
		ids[i] = models.ID(entry.TitleID)
	}
	return ids
}

// UpdateFromEnv updates config from environment variables.
// Variables starting with BOKY_ are used, sections are separated by a
// double underscore:
// BOKY_CORPUS__DIR -> corpus.dir
// BOKY_LOGGING__FILE__LEVEL -> logging.file.level
func (c *Config) UpdateFromEnv() error {
	var err error
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(env, envPrefix), "=")
		if !ok {
			continue
		}
		key = strings.ReplaceAll(strings.ToLower(key), "__", ".")
		err = multierr.Append(err, c.Set(key, value))
	}
	return err
}

// Set sets a configuration value using dot notation (e.g. "reader.zoom").
// Lists take comma separated values.
func (c *Config) Set(key, value string) error {
	switch key {
	case "corpus.dir":
		c.Corpus.Dir = value
	case "library.root_title":
		c.Library.RootTitle = value
	case "library.numbered":
		c.Library.Numbered = splitList(value)
	case "library.single_chapter":
		c.Library.SingleChapter = splitList(value)
	case "reader.zoom":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		c.Reader.Zoom = n
	case "reader.theme":
		c.Reader.Theme = value
	case "logging.console.level":
		c.Logging.Console.Level = value
	case "logging.file.level":
		c.Logging.File.Level = value
	case "logging.file.destination":
		c.Logging.File.Destination = value
	case "logging.file.mode":
		c.Logging.File.Mode = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, configDirName, configFileName), nil
}
