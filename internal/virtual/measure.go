package virtual

// Measurer remembers measured per-item heights and the current scroll
// position so hosts can re-measure progressively as items render,
// without recomputing everything from scratch. Unmeasured items fall
// back to the default height.
type Measurer struct {
	defaultHeight int
	heights       map[int]int
	scrollOffset  int
}

// NewMeasurer returns a measurer whose unmeasured items report
// defaultHeight.
func NewMeasurer(defaultHeight int) *Measurer {
	return &Measurer{
		defaultHeight: defaultHeight,
		heights:       make(map[int]int),
	}
}

// SetHeight records the measured height of one item.
func (m *Measurer) SetHeight(index, height int) {
	m.heights[index] = height
}

// HeightFor returns the measured height for index, or the default. It
// satisfies Config.HeightFor.
func (m *Measurer) HeightFor(index int) int {
	if h, ok := m.heights[index]; ok {
		return h
	}
	return m.defaultHeight
}

// Invalidate forgets all measurements at or after index. Used when the
// option list changes under the menu.
func (m *Measurer) Invalidate(index int) {
	for i := range m.heights {
		if i >= index {
			delete(m.heights, i)
		}
	}
}

// Reset forgets every measurement and the scroll position.
func (m *Measurer) Reset() {
	m.heights = make(map[int]int)
	m.scrollOffset = 0
}

// SetScrollOffset records the host's scroll position.
func (m *Measurer) SetScrollOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	m.scrollOffset = offset
}

// ScrollOffset returns the last recorded scroll position.
func (m *Measurer) ScrollOffset() int {
	return m.scrollOffset
}

// Window computes the current window from the recorded scroll position
// and measurements.
func (m *Measurer) Window(containerHeight, totalItems, overscan int) Window {
	return Calculate(m.scrollOffset, Config{
		HeightFor:       m.HeightFor,
		ContainerHeight: containerHeight,
		TotalItems:      totalItems,
		Overscan:        overscan,
	})
}
