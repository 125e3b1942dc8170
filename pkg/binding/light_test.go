package binding

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProp struct {
	Accessor[widget, string]
	writes int
}

func (c *countingProp) Set(w *widget, v string) {
	c.writes++
	c.Accessor.Set(w, v)
}

func TestCalcProperty_WritesImmediatelyAndOnChange(t *testing.T) {
	reg := NewRegistry[widget]()
	w := &widget{}
	prop := &countingProp{Accessor: textProp.(Accessor[widget, string])}
	value := "a"

	CalcProperty("w", w, Property[widget, string](prop), Calc(func() string { return value }), reg)
	assert.Equal(t, "a", w.text)
	assert.Equal(t, 1, prop.writes)

	assert.Zero(t, reg.Refresh("w"), "unchanged value must not be written")
	assert.Equal(t, 1, prop.writes)

	value = "b"
	assert.Equal(t, 1, reg.Refresh("w"))
	assert.Equal(t, "b", w.text)
	assert.Equal(t, 2, prop.writes)
}

func TestRegistry_GroupsPerHost(t *testing.T) {
	reg := NewRegistry[widget]()
	w := &widget{}
	n := 0
	CalcProperty("w", w, classProp, Calc(func() string { return "c" }), reg)
	CalcProperty("w", w, textProp, Calc(func() string { n++; return "t" }), reg)

	group, ok := reg.Get("w")
	require.True(t, ok)
	assert.Len(t, group.Bindings(), 2)
	assert.Equal(t, "class", group.Bindings()[0].Property())
	assert.Same(t, w, group.Host())
	assert.Equal(t, 1, reg.Len())

	reg.Refresh("w")
	assert.Equal(t, 2, n)

	reg.ClearForObject("w")
	assert.False(t, reg.Has("w"))
	assert.Zero(t, reg.Refresh("w"))
}

func TestCalcCustomProperty(t *testing.T) {
	reg := NewRegistry[widget]()
	external := "x"
	sets := 0
	prop := Custom[widget](
		"external",
		func() string { return external },
		func(v string) { sets++; external = v },
	)

	CalcCustomProperty("w", &widget{}, prop, Calc(func() string { return "x" }), reg)
	assert.Zero(t, sets, "custom property equal to calc is not written")

	CalcCustomProperty("w2", &widget{}, prop, Calc(func() string { return "y" }), reg)
	assert.Equal(t, 1, sets)
	assert.Equal(t, "y", external)
}

func TestCalcCustomProperty_UncomparableInterfaceValue(t *testing.T) {
	reg := NewRegistry[widget]()
	var stored any = []int{1}
	sets := 0
	w := &widget{}
	prop := Custom[widget, any](
		"data",
		func() any { return stored },
		func(v any) { sets++; stored = v },
	)

	require.NotPanics(t, func() {
		CalcCustomProperty("w", w, prop, Calc(func() any { return []int{2} }), reg)
	})
	assert.Equal(t, 1, sets)
	assert.Equal(t, []int{2}, stored)

	assert.Equal(t, 1, reg.Refresh("w"), "uncomparable values always count as changed")
	assert.Equal(t, 2, sets)
	runtime.KeepAlive(w)
}

func TestRegistry_CollectedHostIsInert(t *testing.T) {
	reg := NewRegistry[widget]()
	calls := 0
	func() {
		w := &widget{}
		CalcProperty("gone", w, textProp, Calc(func() string { calls++; return "v" }), reg)
	}()
	calls = 0

	for i := 0; i < 10; i++ {
		runtime.GC()
		if group, _ := reg.Get("gone"); group.Host() == nil {
			break
		}
	}
	group, _ := reg.Get("gone")
	if group.Host() != nil {
		t.Skip("host not collected in time")
	}
	assert.Zero(t, reg.Refresh("gone"))
	assert.Zero(t, calls)
}
