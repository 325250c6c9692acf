package lockfile

import (
	"fmt"
	"sort"

	"github.com/ralt/lockedpip/internal/models"
)

// PlatformResolver decides which platform's records are kept during one parse.
//
// With an explicit platform, records for any other platform are dropped.
// Without one, the first platform seen becomes active and a second distinct
// platform is an error: the caller has to pick one.
type PlatformResolver struct {
	explicit bool
	active   string
	observed map[string]struct{}
}

// NewPlatformResolver creates a resolver. An empty platform means the active
// platform is inferred from the lockfile.
func NewPlatformResolver(platform string) *PlatformResolver {
	r := &PlatformResolver{
		explicit: platform != "",
		active:   platform,
		observed: make(map[string]struct{}),
	}
	if r.explicit {
		r.observed[platform] = struct{}{}
	}
	return r
}

// Observe records a platform value seen at line. It fails once a second
// distinct platform shows up and no platform was given explicitly.
func (r *PlatformResolver) Observe(platform string, line int, text string) error {
	if platform == "" {
		return nil
	}
	r.observed[platform] = struct{}{}
	if r.active == "" {
		r.active = platform
	}
	if !r.explicit && len(r.observed) > 1 {
		return &models.LockError{
			Type: models.ErrAmbiguity,
			Line: line,
			Text: text,
			Err: fmt.Errorf("multiple platforms found in lockfile: %v, please specify one with --platform",
				r.Observed()),
		}
	}
	return nil
}

// Active returns the active platform, empty while nothing was observed
func (r *PlatformResolver) Active() string {
	return r.active
}

// Explicit reports whether the platform was supplied by the caller
func (r *PlatformResolver) Explicit() bool {
	return r.explicit
}

// Observed returns every platform seen so far, sorted
func (r *PlatformResolver) Observed() []string {
	platforms := make([]string, 0, len(r.observed))
	for p := range r.observed {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	return platforms
}

// Accepts reports whether a record for platform belongs to the active platform
func (r *PlatformResolver) Accepts(platform string) bool {
	return platform == r.active
}
