package domain

// Coalesce returns the first non-zero value from vals.
func Coalesce[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

// FirstRule returns the first non-nil rule, so request rules can override
// profile defaults.
func FirstRule[T any](rules ...*Rule[T]) *Rule[T] {
	for _, r := range rules {
		if r != nil {
			return r
		}
	}
	return nil
}

// NonEmpty returns the first slice with at least one element.
func NonEmpty[T any](lists ...[]T) []T {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}
