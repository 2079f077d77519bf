package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repository config file.
const LocalConfigFileName = ".treefrog.toml"

// LoadLocal reads <mainDir>/.treefrog.toml.
// Returns nil (no error) if the file doesn't exist.
func LoadLocal(mainDir string) (*Project, error) {
	path := filepath.Join(mainDir, LocalConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var p Project
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return nil, fmt.Errorf("invalid treefrog config at %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("invalid treefrog config at %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := p.validate("local"); err != nil {
		return nil, fmt.Errorf("invalid treefrog config at %s: %w", path, err)
	}
	return &p, nil
}
