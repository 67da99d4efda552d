package engine

import "selectkit/internal/option"

// Highlight navigation over the filtered list. All helpers skip disabled
// options and return -1 only when the list is empty or entirely disabled.
// Next/prev wrap circularly; page moves clamp.

func firstEnabled[T comparable](opts []option.Option[T]) int {
	for i := range opts {
		if !opts[i].Disabled {
			return i
		}
	}
	return -1
}

func lastEnabled[T comparable](opts []option.Option[T]) int {
	for i := len(opts) - 1; i >= 0; i-- {
		if !opts[i].Disabled {
			return i
		}
	}
	return -1
}

// nextEnabled scans forward from current+1, wrapping around once.
func nextEnabled[T comparable](opts []option.Option[T], current int) int {
	n := len(opts)
	if n == 0 {
		return -1
	}
	start := current + 1
	if current < 0 {
		start = 0
	}
	for step := 0; step < n; step++ {
		i := (start + step) % n
		if !opts[i].Disabled {
			return i
		}
	}
	return -1
}

// prevEnabled scans backward from current-1, wrapping around once.
func prevEnabled[T comparable](opts []option.Option[T], current int) int {
	n := len(opts)
	if n == 0 {
		return -1
	}
	start := current - 1
	if current < 0 {
		start = n - 1
	}
	for step := 0; step < n; step++ {
		i := ((start-step)%n + n) % n
		if !opts[i].Disabled {
			return i
		}
	}
	return -1
}

// pageEnabled moves by delta from current, clamps to the list bounds, and
// settles on the nearest enabled option in the direction of travel,
// falling back to the opposite direction at the edges.
func pageEnabled[T comparable](opts []option.Option[T], current, delta int) int {
	n := len(opts)
	if n == 0 {
		return -1
	}
	target := current + delta
	if current < 0 {
		if delta > 0 {
			target = delta - 1
		} else {
			target = n + delta
		}
	}
	if target < 0 {
		target = 0
	}
	if target > n-1 {
		target = n - 1
	}

	forward := delta > 0
	if i := seekEnabled(opts, target, forward); i >= 0 {
		return i
	}
	return seekEnabled(opts, target, !forward)
}

// seekEnabled scans from i (inclusive) toward an edge without wrapping.
func seekEnabled[T comparable](opts []option.Option[T], i int, forward bool) int {
	if forward {
		for ; i < len(opts); i++ {
			if !opts[i].Disabled {
				return i
			}
		}
		return -1
	}
	for ; i >= 0; i-- {
		if !opts[i].Disabled {
			return i
		}
	}
	return -1
}

// nearestEnabled settles an arbitrary requested index on an enabled
// option, preferring forward.
func nearestEnabled[T comparable](opts []option.Option[T], i int) int {
	if i < 0 || len(opts) == 0 {
		return -1
	}
	if i > len(opts)-1 {
		i = len(opts) - 1
	}
	if j := seekEnabled(opts, i, true); j >= 0 {
		return j
	}
	return seekEnabled(opts, i, false)
}
