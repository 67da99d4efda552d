package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectkit/internal/option"
)

func TestGeneratedIDsAreSequential(t *testing.T) {
	ResetIDCounter()

	a := New(WithOptions(fruits()))
	defer a.Destroy()
	b := New(WithOptions(fruits()))
	defer b.Destroy()

	assert.Equal(t, "selectkit-1", a.BaseID())
	assert.Equal(t, "selectkit-2", b.BaseID())
}

func TestCustomIDAndGenerator(t *testing.T) {
	e := New(WithOptions(fruits()), WithID[string]("picker"))
	defer e.Destroy()
	assert.Equal(t, "picker", e.BaseID())

	gen := New(WithOptions(fruits()), WithIDGenerator[string](func() string { return "fixed" }))
	defer gen.Destroy()
	assert.Equal(t, "fixed", gen.BaseID())
}

func TestContainerProps(t *testing.T) {
	e := New(WithOptions(fruits()), WithID[string]("p"), WithMultiple[string](), WithSearchable[string]())
	defer e.Destroy()

	p := e.GetContainerProps()
	assert.Equal(t, "p", p["id"])
	assert.Equal(t, "false", p["data-open"])
	assert.Equal(t, "true", p["data-multiple"])
	assert.Equal(t, "true", p["data-searchable"])
	assert.Equal(t, "false", p["data-loading"])

	e.Open()
	assert.Equal(t, "true", e.GetContainerProps()["data-open"])
}

func TestTriggerProps(t *testing.T) {
	e := New(WithOptions(fruits()), WithID[string]("p"), WithRequired[string]())
	defer e.Destroy()

	p := e.GetTriggerProps()
	assert.Equal(t, "p-trigger", p["id"])
	assert.Equal(t, "combobox", p["role"])
	assert.Equal(t, "listbox", p["aria-haspopup"])
	assert.Equal(t, "false", p["aria-expanded"])
	assert.Equal(t, "p-menu", p["aria-controls"])
	assert.Equal(t, "true", p["aria-required"])
	assert.Equal(t, 0, p["tabIndex"])

	p["onClick"].(func())()
	assert.True(t, e.State().Open, "trigger click toggles the menu")
	assert.Equal(t, "true", e.GetTriggerProps()["aria-expanded"])

	e.SetDisabled(true)
	p = e.GetTriggerProps()
	assert.Equal(t, "true", p["aria-disabled"])
	assert.Equal(t, -1, p["tabIndex"])
}

func TestInputProps(t *testing.T) {
	e := New(WithOptions(fruits()), WithID[string]("p"), WithSearchable[string]())
	defer e.Destroy()

	e.Open()
	p := e.GetInputProps()
	assert.Equal(t, "p-input", p["id"])
	assert.Equal(t, "list", p["aria-autocomplete"])
	assert.Equal(t, "p-option-0", p["aria-activedescendant"])

	p["onChange"].(func(string))("che")
	assert.Equal(t, "che", e.State().Search)

	async := New(
		WithID[string]("q"),
		WithSearchable[string](),
		WithLoader[string](func(ctx context.Context, query string) ([]option.Option[string], error) {
			return nil, nil
		}),
	)
	defer async.Destroy()
	assert.Equal(t, "both", async.GetInputProps()["aria-autocomplete"])
}

func TestMenuProps(t *testing.T) {
	single := New(WithOptions(fruits()), WithID[string]("p"))
	defer single.Destroy()
	p := single.GetMenuProps()
	assert.Equal(t, "p-menu", p["id"])
	assert.Equal(t, "listbox", p["role"])
	_, present := p["aria-multiselectable"]
	assert.False(t, present, "aria-multiselectable only appears in multi mode")

	multi := New(WithOptions(fruits()), WithID[string]("m"), WithMultiple[string]())
	defer multi.Destroy()
	assert.Equal(t, "true", multi.GetMenuProps()["aria-multiselectable"])
}

func TestOptionProps(t *testing.T) {
	opts := fruits()
	opts[2].Disabled = true
	e := New(WithOptions(opts), WithID[string]("p"), WithValue("banana"))
	defer e.Destroy()

	e.Open()
	p := e.GetOptionProps(1)
	assert.Equal(t, "p-option-1", p["id"])
	assert.Equal(t, "option", p["role"])
	assert.Equal(t, "true", p["aria-selected"])
	assert.Equal(t, "true", p["data-selected"])
	assert.Equal(t, "true", p["data-highlighted"], "open seeds highlight on the selected option")
	assert.Equal(t, "1", p["data-index"])
	assert.Equal(t, -1, p["tabIndex"])

	assert.Equal(t, "true", e.GetOptionProps(2)["aria-disabled"])
	assert.Empty(t, e.GetOptionProps(99), "out-of-range index yields an empty bundle")

	p0 := e.GetOptionProps(0)
	p0["onClick"].(func())()
	v, _ := e.State().SelectedValue()
	assert.Equal(t, "apple", v)
}

func TestGroupProps(t *testing.T) {
	opts := []option.Option[string]{
		{Value: "a", Label: "a", Group: "fruit"},
		{Value: "b", Label: "b", Group: "veg"},
	}
	e := New(WithOptions(opts), WithID[string]("p"))
	defer e.Destroy()

	p := e.GetGroupProps(0)
	assert.Equal(t, "p-group-0", p["id"])
	assert.Equal(t, "group", p["role"])
	assert.Equal(t, "p-group-0-label", p["aria-labelledby"])

	lp := e.GetGroupLabelProps(1)
	assert.Equal(t, "p-group-1-label", lp["id"])
	assert.Equal(t, "veg", lp["data-label"])
}

func TestClearButtonAndTagProps(t *testing.T) {
	e := New(
		WithOptions(fruits()),
		WithID[string]("p"),
		WithMultiple[string](),
		WithClearable[string](),
		WithValue("apple", "banana"),
	)
	defer e.Destroy()

	cp := e.GetClearButtonProps()
	assert.Equal(t, "true", cp["data-visible"])

	tp := e.GetTagProps(1)
	assert.Equal(t, "1", tp["data-index"])
	assert.Equal(t, "Banana", tp["data-label"])

	rp := e.GetTagRemoveProps(0)
	assert.Equal(t, "Remove Apple", rp["aria-label"])
	rp["onClick"].(func())()
	assert.Equal(t, []string{"banana"}, e.State().Values)

	cp["onClick"].(func())()
	assert.Empty(t, e.State().Values)
	assert.Equal(t, "false", e.GetClearButtonProps()["data-visible"])

	require.Empty(t, e.GetTagProps(5))
	require.Empty(t, e.GetTagRemoveProps(5))
}
