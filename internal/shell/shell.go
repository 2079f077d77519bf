package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/treefrog/internal/cmd"
	"github.com/raphi011/treefrog/internal/log"
)

// ExitHint is appended to the prompt banner.
const ExitHint = "[Ctrl-D to return]"

const (
	defaultShell = "/bin/sh"
	defaultPS1   = `\w \$ `
)

var unsafePromptChars = regexp.MustCompile(`[^A-Za-z0-9._/-]`)

// PromptPrefix returns the banner prefix for branch, "[treefrog]" when empty.
func PromptPrefix(branch string) string {
	if branch == "" {
		return "[treefrog]"
	}
	return fmt.Sprintf("[treefrog:%s]", unsafePromptChars.ReplaceAllString(branch, "_"))
}

// Banner returns the full banner line shown above the prompt.
func Banner(prefix string) string {
	return prefix + " " + ExitHint
}

// Options configures Start.
type Options struct {
	Dir    string
	Branch string

	// Environ is the environment the shell starts from; nil uses os.Environ().
	Environ []string
	// Interactive overrides terminal detection when set.
	Interactive func() bool
}

// Start launches $SHELL in opts.Dir and waits for it to exit.
// It logs a notice and returns nil when no interactive terminal is attached.
func Start(ctx context.Context, opts Options) error {
	l := log.FromContext(ctx)

	interactive := opts.Interactive
	if interactive == nil {
		interactive = IsInteractive
	}
	if !interactive() {
		l.Println("Skipping shell launch because no interactive terminal is attached.")
		return nil
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}

	prefix := PromptPrefix(opts.Branch)
	shellPath := ShellCommand(environ)
	launch, err := prepare(shellPath, Environ(environ, prefix))
	if err != nil {
		return err
	}
	defer launch.cleanup()

	l.Printf("Starting interactive shell in: %s\n", opts.Dir)
	l.Printf("Prompt prefix: %s\n", prefix)
	l.Println("Exit the shell to return to your previous session.")

	if err := cmd.Attach(ctx, cmd.AttachOptions{Dir: opts.Dir, Env: launch.env}, shellPath, launch.args...); err != nil {
		return fmt.Errorf("failed to launch shell '%s': %w", shellPath, err)
	}
	return nil
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ShellCommand returns $SHELL from environ, or /bin/sh.
func ShellCommand(environ []string) string {
	if s := lookup(environ, "SHELL"); s != "" {
		return s
	}
	return defaultShell
}

// Environ returns environ with the treefrog prompt variables set.
func Environ(environ []string, prefix string) []string {
	banner := Banner(prefix)

	base := lookup(environ, "PS1")
	if base == "" {
		base = lookup(environ, "PROMPT")
	}
	if base == "" {
		base = defaultPS1
	}
	ps1 := `\[\e[90m\]` + banner + `\[\e[0m\]\n` + base

	return setenv(environ, map[string]string{
		"TREEFROG_SUBSHELL":      "1",
		"TREEFROG_PROMPT_PREFIX": prefix,
		"TREEFROG_PROMPT_HINT":   ExitHint,
		"TREEFROG_PROMPT_BANNER": banner,
		"PS1":                    ps1,
		"PROMPT":                 ps1,
	})
}

type launchConfig struct {
	args    []string
	env     []string
	cleanup func()
}

func prepare(shellPath string, env []string) (launchConfig, error) {
	if strings.ToLower(filepath.Base(shellPath)) != "zsh" {
		return launchConfig{env: env, cleanup: func() {}}, nil
	}

	original := lookup(env, "ZDOTDIR")
	if original == "" {
		original = lookup(env, "HOME")
	}

	dir, err := os.MkdirTemp("", "treefrog-zdotdir-")
	if err != nil {
		return launchConfig{}, fmt.Errorf("create zsh config dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".zshrc"), []byte(zshrc), 0600); err != nil {
		os.RemoveAll(dir)
		return launchConfig{}, fmt.Errorf("write zsh config: %w", err)
	}

	return launchConfig{
		args: []string{"-i"},
		env: setenv(env, map[string]string{
			"ZDOTDIR":                   dir,
			"TREEFROG_ORIGINAL_ZDOTDIR": original,
		}),
		cleanup: func() { os.RemoveAll(dir) },
	}, nil
}

const zshrc = `if [[ -n "${TREEFROG_ORIGINAL_ZDOTDIR:-}" && -f "${TREEFROG_ORIGINAL_ZDOTDIR}/.zshrc" ]]; then
  source "${TREEFROG_ORIGINAL_ZDOTDIR}/.zshrc"
elif [[ -f "${HOME}/.zshrc" ]]; then
  source "${HOME}/.zshrc"
fi

treefrog_apply_prompt_prefix() {
  if [[ -z "${TREEFROG_PROMPT_PREFIX:-}" ]]; then
    return
  fi
  local hint="${TREEFROG_PROMPT_HINT:-[Ctrl-D to return]}"
  local banner="%F{8}${TREEFROG_PROMPT_PREFIX} ${hint}%f"
  local prompt_body="${PROMPT}"
  if [[ "${prompt_body}" == *$'\n'* ]]; then
    local first_line="${prompt_body%%$'\n'*}"
    if [[ "${first_line}" == *"${TREEFROG_PROMPT_PREFIX}"* && "${first_line}" == *"${hint}"* ]]; then
      prompt_body="${prompt_body#*$'\n'}"
    fi
  fi
  PROMPT="${banner}"$'\n'"${prompt_body}"
}

autoload -U add-zsh-hook
add-zsh-hook precmd treefrog_apply_prompt_prefix
treefrog_apply_prompt_prefix
`

// lookup returns the last value of key in environ.
func lookup(environ []string, key string) string {
	val := ""
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			val = v
		}
	}
	return val
}

// setenv returns a copy of environ with vars replacing existing entries.
func setenv(environ []string, vars map[string]string) []string {
	out := make([]string, 0, len(environ)+len(vars))
	for _, kv := range environ {
		k, _, _ := strings.Cut(kv, "=")
		if _, replaced := vars[k]; !replaced {
			out = append(out, kv)
		}
	}
	for _, k := range sortedKeys(vars) {
		out = append(out, k+"="+vars[k])
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
