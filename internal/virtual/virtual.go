// Package virtual computes which slice of a long option list actually
// needs rendering for a given scroll position. Calculate is pure;
// Measurer is a small mutable cache of per-item measurements that feeds
// the variable-height mode.
package virtual

// Config describes the scrollable list. When HeightFor is nil every item
// is ItemHeight tall and the window is computed in constant time;
// otherwise heights come from HeightFor and a linear scan is used.
type Config struct {
	ItemHeight      int
	HeightFor       func(index int) int
	ContainerHeight int
	TotalItems      int
	Overscan        int
}

// Window is the rendered slice: indices [Start, End), the pixel offset of
// the first rendered item, and the full scrollable height.
type Window struct {
	Start       int
	End         int
	OffsetTop   int
	TotalHeight int
}

// Calculate returns the overscanned window for the given scroll offset.
func Calculate(scrollOffset int, cfg Config) Window {
	if cfg.TotalItems <= 0 || cfg.ContainerHeight <= 0 {
		return Window{}
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if cfg.HeightFor != nil {
		return calculateVariable(scrollOffset, cfg)
	}
	return calculateFixed(scrollOffset, cfg)
}

func calculateFixed(scrollOffset int, cfg Config) Window {
	h := cfg.ItemHeight
	if h <= 0 {
		return Window{}
	}
	start := scrollOffset / h
	end := (scrollOffset + cfg.ContainerHeight + h - 1) / h

	start -= cfg.Overscan
	end += cfg.Overscan
	start = clamp(start, 0, cfg.TotalItems)
	end = clamp(end, 0, cfg.TotalItems)

	return Window{
		Start:       start,
		End:         end,
		OffsetTop:   start * h,
		TotalHeight: cfg.TotalItems * h,
	}
}

func calculateVariable(scrollOffset int, cfg Config) Window {
	start, end := -1, cfg.TotalItems
	top := 0
	viewBottom := scrollOffset + cfg.ContainerHeight

	for i := 0; i < cfg.TotalItems; i++ {
		h := cfg.HeightFor(i)
		if start < 0 && top+h > scrollOffset {
			start = i
		}
		if start >= 0 && top >= viewBottom {
			end = i
			break
		}
		top += h
	}
	total := top
	for i := end; i < cfg.TotalItems; i++ {
		total += cfg.HeightFor(i)
	}
	if start < 0 {
		// Scrolled past the end; pin to the last item.
		start = cfg.TotalItems - 1
		end = cfg.TotalItems
	}

	start = clamp(start-cfg.Overscan, 0, cfg.TotalItems)
	end = clamp(end+cfg.Overscan, 0, cfg.TotalItems)

	offsetTop := 0
	for i := 0; i < start; i++ {
		offsetTop += cfg.HeightFor(i)
	}

	return Window{Start: start, End: end, OffsetTop: offsetTop, TotalHeight: total}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
