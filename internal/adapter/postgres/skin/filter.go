package skin

import "github.com/skinstore/backend/internal/domain"

const (
	defaultLimit = 50
	maxLimit     = 200
)

// normalizeFilter applies defaults and clamps pagination values.
func normalizeFilter(f domain.SkinFilter) domain.SkinFilter {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	if f.Offset < 0 {
		f.Offset = 0
	}

	return f
}

// hasSearch returns true if a non-empty text filter is set.
func hasSearch(f domain.SkinFilter) bool {
	return f.Search != nil && *f.Search != ""
}
