package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"cardgen/internal/differ"
	"cardgen/internal/source"
)

// ConfigError is a fatal configuration problem: a bad manifest or flag value.
type ConfigError struct {
	Path string // файл конфигурации или имя флага
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Config mirrors cardgen.toml.
type Config struct {
	Run   RunConfig    `toml:"run"`
	Rules differ.Rules `toml:"rules"`
}

type RunConfig struct {
	Old        string   `toml:"old"`
	New        string   `toml:"new"`
	Out        string   `toml:"out"`
	OldTag     string   `toml:"old_tag"`
	NewTag     string   `toml:"new_tag"`
	Jobs       int      `toml:"jobs"`
	Extensions []string `toml:"extensions"`
}

// DefaultConfig is used when no manifest is found.
func DefaultConfig() Config {
	return Config{
		Run: RunConfig{
			OldTag:     "old",
			NewTag:     "new",
			Extensions: append([]string(nil), source.DefaultExtensions...),
		},
		Rules: differ.DefaultRules(),
	}
}

// Manifest is a loaded cardgen.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Resolve makes a path from the manifest absolute relative to its directory.
func (m *Manifest) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

// LoadManifest looks for cardgen.toml from startDir upwards.
// ok is false when there is none.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifestFile(path)
	return m, true, err
}

// LoadManifestFile decodes path over DefaultConfig. Unknown keys and invalid
// values fail with *ConfigError.
func LoadManifestFile(path string) (*Manifest, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to parse TOML: %w", err)}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))}
	}
	cfg.Rules = cfg.Rules.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Run.Jobs < 0 {
		return fmt.Errorf("[run].jobs must be >= 0, got %d", c.Run.Jobs)
	}
	for _, ext := range c.Run.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("[run].extensions: %q must start with '.'", ext)
		}
	}
	if strings.TrimSpace(c.Run.OldTag) == "" || strings.TrimSpace(c.Run.NewTag) == "" {
		return fmt.Errorf("[run].old_tag and [run].new_tag must not be empty")
	}
	if c.Run.OldTag == c.Run.NewTag {
		return fmt.Errorf("old and new version tags are both %q", c.Run.OldTag)
	}
	return nil
}
