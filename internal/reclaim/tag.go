package reclaim

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TagPrefix starts every stash message created by a checkout.
const TagPrefix = "treefrog-checkout"

// NewTag returns a stash message unique to this checkout of branch.
func NewTag(branch string, now time.Time) string {
	return fmt.Sprintf("%s:%s:%d:%s", TagPrefix, branch, now.UnixMilli(), uuid.NewString()[:8])
}
