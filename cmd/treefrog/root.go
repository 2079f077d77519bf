package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/treefrog/internal/config"
	"github.com/raphi011/treefrog/internal/git"
	"github.com/raphi011/treefrog/internal/log"
	"github.com/raphi011/treefrog/internal/output"
	"github.com/raphi011/treefrog/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// workDir is the directory commands operate from.
	workDir string
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupFiles   = "files"
	GroupUtility = "utility"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "treefrog",
		Short: "Disposable git worktrees for parallel agent sessions",
		Long: `treefrog creates git worktrees for branches in a managed directory outside
your repository, prepares them with shared and copied files plus setup
commands, and hands a branch back to the main repository when you are done,
carrying uncommitted changes along.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = log.WithLogger(ctx, log.New(os.Stderr, verbose, quiet))
			cmd.SetContext(ctx)

			// Completion and help work outside git environments.
			if cmd.Name() == "completion" || cmd.Name() == cobra.ShellCompRequestCmd || cmd.Name() == "help" {
				return nil
			}
			return git.CheckGit()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Worktree Commands:"},
		&cobra.Group{ID: GroupFiles, Title: "File Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	root.AddCommand(newCreateCmd())
	root.AddCommand(newEnterCmd())
	root.AddCommand(newRemoveCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newCheckoutCmd())

	root.AddCommand(newShareCmd())
	root.AddCommand(newCloneCmd())

	root.AddCommand(newPathCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := styles.Init(loadedCfg.Theme); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = log.WithLogger(ctx, log.New(os.Stderr, false, false))
	ctx = output.WithTerminalPrinter(ctx, os.Stdout)
	ctx = config.WithConfig(ctx, &loadedCfg)

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
