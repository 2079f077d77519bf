package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/raphi011/treefrog/internal/log"
)

// BranchExists reports whether refs/heads/<branch> exists.
//
// Refs are read in-process with go-git. Repositories go-git cannot open
// (for example reftable storage) fall back to "git show-ref".
func (r *Repo) BranchExists(ctx context.Context, branch string) (bool, error) {
	repo, err := gogit.PlainOpenWithOptions(r.dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err == nil {
		_, err = repo.Reference(plumbing.NewBranchReferenceName(branch), false)
		if err == nil {
			return true, nil
		}
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return false, nil
		}
	}
	log.FromContext(ctx).Debug("go-git ref lookup failed, using show-ref", "branch", branch, "err", err)

	err = r.run(ctx, r.dir, "show-ref", "--verify", "--quiet", branchRefPrefix+branch)
	switch {
	case err == nil:
		return true, nil
	case exitCode(err) == 1:
		return false, nil
	default:
		return false, fmt.Errorf("failed to check branch %s: %w", branch, err)
	}
}
