package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/raphi011/treefrog/internal/log"
	"github.com/raphi011/treefrog/internal/output"
	"github.com/raphi011/treefrog/internal/share"
)

func newShareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "share <file>...",
		Short:   "Symlink files from the main repository into this worktree",
		GroupID: GroupFiles,
		Args:    cobra.MinimumNArgs(1),
		Long: `Symlink files or directories from the main repository into the
worktree containing the current directory. Paths are relative to the
repository root.`,
		Example: `  treefrog share .env config/local.yml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return placeFiles(ctx, args, "Sharing files from main repo...", share.Link, "Files shared successfully!")
		},
	}

	return cmd
}

func newCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clone <file>...",
		Short:   "Copy files from the main repository into this worktree",
		GroupID: GroupFiles,
		Args:    cobra.MinimumNArgs(1),
		Long: `Copy files or directories from the main repository into the worktree
containing the current directory. Paths are relative to the repository
root. Files that already exist in the worktree are left untouched.`,
		Example: `  treefrog clone node_modules .env.local`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return placeFiles(ctx, args, "Copying files from main repo...", share.Copy, "Files copied successfully!")
		},
	}

	return cmd
}

type placeFunc func(ctx context.Context, files []string, mainDir, targetDir string) error

// placeFiles runs place for files from the main repository into the
// current managed worktree.
func placeFiles(ctx context.Context, files []string, progress string, place placeFunc, done string) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	rc, err := openRepo(ctx)
	if err != nil {
		return err
	}
	dir, err := currentDir()
	if err != nil {
		return err
	}
	wt, err := rc.store.Current(ctx, dir)
	if err != nil {
		return err
	}

	l.Println(progress)
	if err := place(ctx, files, rc.mainDir, wt.Path); err != nil {
		return err
	}
	out.Success("%s", done)
	return nil
}
