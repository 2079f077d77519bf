// Package cmd runs external commands for treefrog.
//
// Every git call and the interactive subshell go through this package. The
// [Runner] interface is the single process-spawning capability the rest of
// the tool depends on, so tests can substitute a scripted fake.
//
// # Usage
//
//	res, err := cmd.Exec{}.Run(ctx, repoDir, "git", "status", "--porcelain")
//	if err != nil {
//	    // err is an *ExitError whose message is git's trimmed stderr
//	}
//
// When a command exits non-zero the error message is the command's own
// diagnostic text, so callers can wrap it with context and show it as is.
package cmd
