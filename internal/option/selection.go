package option

// Selection-set algebra. All operations are pure: they take the current
// selection and return a new slice, never mutating the input. Equality is
// by option value, not by identity of the option structs.

// Contains reports whether the selection already holds opt's value.
func Contains[T comparable](sel []Option[T], opt Option[T]) bool {
	for _, s := range sel {
		if s.Value == opt.Value {
			return true
		}
	}
	return false
}

// Add returns the selection with opt appended. It is a no-op (returning
// the input unchanged) when opt is already selected, or when max > 0 and
// the selection is already at max.
func Add[T comparable](sel []Option[T], opt Option[T], max int) []Option[T] {
	if Contains(sel, opt) {
		return sel
	}
	if max > 0 && len(sel) >= max {
		return sel
	}
	out := make([]Option[T], len(sel), len(sel)+1)
	copy(out, sel)
	return append(out, opt)
}

// Remove returns the selection without opt. It is a no-op when opt is not
// selected, or when removing would shrink the selection below min.
func Remove[T comparable](sel []Option[T], opt Option[T], min int) []Option[T] {
	if !Contains(sel, opt) {
		return sel
	}
	if min > 0 && len(sel) <= min {
		return sel
	}
	out := make([]Option[T], 0, len(sel)-1)
	for _, s := range sel {
		if s.Value != opt.Value {
			out = append(out, s)
		}
	}
	return out
}

// Toggle adds opt if absent and removes it if present, honoring the same
// min/max bounds as Add and Remove.
func Toggle[T comparable](sel []Option[T], opt Option[T], min, max int) []Option[T] {
	if Contains(sel, opt) {
		return Remove(sel, opt, min)
	}
	return Add(sel, opt, max)
}
