// Package config loads treefrog's configuration.
//
// The global file is read from the first of:
//
//   - $TREEFROG_CONFIG
//   - $XDG_CONFIG_HOME/treefrog/config.toml
//   - ~/.config/treefrog/config.toml
//
// A missing file yields the defaults.
//
// # Projects
//
// Per-repository settings live in [projects."<main repo path>"] tables and
// are matched against the symlink-resolved main repository directory:
//
//	worktree_base = "~/treefrog"
//
//	[projects."/Users/me/src/app"]
//	share_files = [".env", "config/local.yml"]
//	clone_files = ["node_modules"]
//	commands    = ["npm install"]
//
// A repository may also carry a .treefrog.toml at its top level with the
// same three keys. Its entries are appended to the global project's.
//
// # Path Validation
//
// worktree_base and project keys must be absolute or start with ~. File
// entries must be relative to the repository and may not leave it.
package config
