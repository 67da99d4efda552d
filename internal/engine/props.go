package engine

import (
	"strconv"

	"selectkit/internal/option"
)

// Props is an attribute bundle a host binding applies verbatim to one
// structural element. Attribute values are strings; handler values are
// closures the host wires to its input events. Getters are pure reads of
// the current state plus closure capture; they never mutate state.
type Props map[string]any

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// GetContainerProps decorates the widget's outermost element.
func (e *Engine[T]) GetContainerProps() Props {
	s := e.State()
	return Props{
		"id":              e.baseID,
		"data-open":       boolAttr(s.Open),
		"data-disabled":   boolAttr(s.Disabled),
		"data-focused":    boolAttr(s.Focused),
		"data-multiple":   boolAttr(e.cfg.multiple),
		"data-searchable": boolAttr(e.cfg.searchable),
		"data-loading":    boolAttr(s.Loading),
	}
}

// GetTriggerProps decorates the element that opens the menu.
func (e *Engine[T]) GetTriggerProps() Props {
	s := e.State()
	tabIndex := 0
	if s.Disabled {
		tabIndex = -1
	}
	return Props{
		"id":            triggerID(e.baseID),
		"role":          "combobox",
		"aria-haspopup": "listbox",
		"aria-expanded": boolAttr(s.Open),
		"aria-controls": menuID(e.baseID),
		"aria-disabled": boolAttr(s.Disabled),
		"aria-required": boolAttr(e.cfg.required),
		"tabIndex":      tabIndex,
		"onClick":       func() { e.ToggleOpen() },
		"onFocus":       func() { e.Focus() },
		"onBlur":        func() { e.Blur() },
	}
}

// GetInputProps decorates the search input.
func (e *Engine[T]) GetInputProps() Props {
	s := e.State()
	autocomplete := "list"
	if e.cfg.loadFn != nil {
		autocomplete = "both"
	}
	active := ""
	if s.HighlightedIndex >= 0 {
		active = optionID(e.baseID, s.HighlightedIndex)
	}
	return Props{
		"id":                    inputID(e.baseID),
		"role":                  "combobox",
		"aria-haspopup":         "listbox",
		"aria-expanded":         boolAttr(s.Open),
		"aria-controls":         menuID(e.baseID),
		"aria-autocomplete":     autocomplete,
		"aria-activedescendant": active,
		"value":                 s.Search,
		"onChange":              func(text string) { e.SetSearchValue(text) },
	}
}

// GetMenuProps decorates the listbox. aria-multiselectable is present
// only in multi mode.
func (e *Engine[T]) GetMenuProps() Props {
	p := Props{
		"id":   menuID(e.baseID),
		"role": "listbox",
	}
	if e.cfg.multiple {
		p["aria-multiselectable"] = "true"
	}
	return p
}

// GetOptionProps decorates the option at index i of the filtered list.
func (e *Engine[T]) GetOptionProps(i int) Props {
	s := e.State()
	if i < 0 || i >= len(s.Filtered) {
		return Props{}
	}
	opt := s.Filtered[i]
	selected := s.IsSelected(opt.Value)
	return Props{
		"id":               optionID(e.baseID, i),
		"role":             "option",
		"aria-selected":    boolAttr(selected),
		"aria-disabled":    boolAttr(opt.Disabled),
		"data-highlighted": boolAttr(i == s.HighlightedIndex),
		"data-selected":    boolAttr(selected),
		"data-index":       strconv.Itoa(i),
		"tabIndex":         -1,
		"onClick":          func() { e.SelectOption(opt) },
		"onMouseEnter":     func() { e.SetHighlightedIndex(i) },
	}
}

// GetGroupProps decorates the group container at index i of the grouped
// view.
func (e *Engine[T]) GetGroupProps(i int) Props {
	return Props{
		"id":              groupID(e.baseID, i),
		"role":            "group",
		"aria-labelledby": groupID(e.baseID, i) + "-label",
	}
}

// GetGroupLabelProps decorates a group's label element.
func (e *Engine[T]) GetGroupLabelProps(i int) Props {
	s := e.State()
	label := ""
	if i >= 0 && i < len(s.Grouped) {
		label = s.Grouped[i].Label
	}
	return Props{
		"id":          groupID(e.baseID, i) + "-label",
		"role":        "presentation",
		"data-label":  label,
		"aria-hidden": "true",
	}
}

// GetClearButtonProps decorates the clear-all button.
func (e *Engine[T]) GetClearButtonProps() Props {
	s := e.State()
	return Props{
		"aria-label":   "Clear selection",
		"tabIndex":     -1,
		"data-visible": boolAttr(e.cfg.clearable && s.HasValue()),
		"onClick":      func() { e.ClearValue() },
	}
}

// GetTagProps decorates the tag for the i-th selected option in multi
// mode.
func (e *Engine[T]) GetTagProps(i int) Props {
	s := e.State()
	if i < 0 || i >= len(s.SelectedOptions) {
		return Props{}
	}
	return Props{
		"data-index": strconv.Itoa(i),
		"data-label": s.SelectedOptions[i].Label,
	}
}

// GetTagRemoveProps decorates the remove button inside the i-th tag.
func (e *Engine[T]) GetTagRemoveProps(i int) Props {
	s := e.State()
	if i < 0 || i >= len(s.SelectedOptions) {
		return Props{}
	}
	opt := s.SelectedOptions[i]
	return Props{
		"aria-label": "Remove " + opt.Label,
		"tabIndex":   -1,
		"onClick":    func() { e.DeselectOption(opt) },
	}
}

// GetOption returns the option at index i of the filtered list, for
// hosts iterating with the virtual window.
func (e *Engine[T]) GetOption(i int) (option.Option[T], bool) {
	s := e.State()
	if i < 0 || i >= len(s.Filtered) {
		return option.Option[T]{}, false
	}
	return s.Filtered[i], true
}
