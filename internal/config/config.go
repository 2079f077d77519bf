package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// PathEnv overrides the config file location.
const PathEnv = "TREEFROG_CONFIG"

// Project holds the per-repository setup applied to new worktrees.
type Project struct {
	ShareFiles []string `toml:"share_files"` // symlinked from the main repo
	CloneFiles []string `toml:"clone_files"` // copied from the main repo
	Commands   []string `toml:"commands"`    // run in the new worktree
}

// IsEmpty reports whether p configures nothing.
func (p Project) IsEmpty() bool {
	return len(p.ShareFiles) == 0 && len(p.CloneFiles) == 0 && len(p.Commands) == 0
}

// Config holds the treefrog configuration.
type Config struct {
	WorktreeBase string             `toml:"worktree_base"`
	Theme        string             `toml:"theme"`
	Projects     map[string]Project `toml:"projects"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`

	resolved map[string]string // resolved project dir -> Projects key
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Projects: map[string]Project{}}
}

// FilePath returns the config file location for the given environment.
func FilePath(getenv func(string) string) (string, error) {
	if p := getenv(PathEnv); p != "" {
		return p, nil
	}
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "treefrog", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("could not resolve config directory: set HOME or XDG_CONFIG_HOME")
	}
	return filepath.Join(home, ".config", "treefrog", "config.toml"), nil
}

// Load reads the config file for the process environment.
// Returns Default() if the file doesn't exist.
func Load() (Config, error) {
	path, err := FilePath(os.Getenv)
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile reads and validates the config at path.
// Returns Default() if the file doesn't exist, and an error naming path if
// it exists but is invalid.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("invalid treefrog config at %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Default(), fmt.Errorf("invalid treefrog config at %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path

	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("invalid treefrog config at %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return Default(), fmt.Errorf("invalid treefrog config at %s: %w", path, err)
	}
	return cfg, nil
}

// normalize expands ~ and indexes projects by resolved path.
func (c *Config) normalize() error {
	base, err := expandPath(c.WorktreeBase)
	if err != nil {
		return fmt.Errorf("expand worktree_base: %w", err)
	}
	c.WorktreeBase = base

	if c.Projects == nil {
		c.Projects = map[string]Project{}
	}
	c.resolved = make(map[string]string, len(c.Projects))
	for key := range c.Projects {
		dir, err := expandPath(key)
		if err != nil {
			return fmt.Errorf("expand project %q: %w", key, err)
		}
		c.resolved[resolveDir(dir)] = key
	}
	return nil
}

// Project returns the global settings for the repository whose main
// worktree is mainDir, or an empty Project.
func (c *Config) Project(mainDir string) Project {
	if c == nil || len(c.Projects) == 0 {
		return Project{}
	}
	if c.resolved == nil {
		if err := c.normalize(); err != nil {
			return Project{}
		}
	}
	if key, ok := c.resolved[resolveDir(mainDir)]; ok {
		return c.Projects[key]
	}
	return Project{}
}

// resolveDir returns the symlink-resolved form of dir, or dir cleaned when
// it cannot be resolved.
func resolveDir(dir string) string {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved
	}
	return filepath.Clean(dir)
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
