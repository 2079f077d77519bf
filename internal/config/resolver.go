package config

import "context"

type ctxKey struct{}

// WithConfig returns a new context with cfg stored in it.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the Config from context.
// Returns nil if no config is stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}
	return nil
}

// Resolve returns the effective settings for the repository at mainDir:
// the global project entry merged with the repository's .treefrog.toml.
func (c *Config) Resolve(mainDir string) (Project, error) {
	local, err := LoadLocal(mainDir)
	if err != nil {
		return Project{}, err
	}
	return c.Project(mainDir).Merge(local), nil
}
