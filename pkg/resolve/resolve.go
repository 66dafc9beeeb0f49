// Package resolve turns pending local apps into available or unavailable
// ones. Batch resolves everything against the cask catalog in one pass;
// Probe asks Homebrew about each app separately and is the fallback when
// the batch path fails.
package resolve

import (
	"context"

	"github.com/arthur-debert/brewadopt/pkg/types"
)

// Resolver classifies pending apps in place. Batch leaves the apps
// untouched when it fails so another resolver can take over.
type Resolver interface {
	Name() string
	Resolve(ctx context.Context, apps []*types.LocalApp) error
}
