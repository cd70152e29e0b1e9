// Package pagination provides pure offset/limit windowing helpers shared by
// the repositories and services.
package pagination

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Clamp normalizes an offset/limit pair: offset floors at 0, limit defaults
// to DefaultLimit when <= 0 and caps at MaxLimit.
func Clamp(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return offset, limit
}

// ClampLimit bounds a bare limit to [1, max], falling back to def when the
// caller passed nothing (0) and flooring to 1 for negative values.
func ClampLimit(limit, def, max int) int {
	if limit == 0 {
		limit = def
	}
	if limit < 1 {
		limit = 1
	}
	if limit > max {
		limit = max
	}
	return limit
}

// HasMore reports whether another page exists past the current window.
func HasMore(offset, limit int, total int64) bool {
	return int64(offset+limit) < total
}
