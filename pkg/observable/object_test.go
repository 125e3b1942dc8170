package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_ChangeOnlyNotification(t *testing.T) {
	obj := NewObject(map[string]any{"s": "my test", "count": 1, "changes": 10})
	var changes []int
	obj.Changes().Of("count").Subscribe(func() {
		v, _ := Get[int](obj, "count")
		changes = append(changes, v)
	})

	assert.Equal(t, 1, obj.Get("count"))
	assert.Equal(t, "my test", obj.Get("s"))
	obj.Set("count", 10)
	obj.Set("count", 15)
	obj.Set("count", 15)

	assert.Equal(t, 15, obj.Get("count"))
	assert.Equal(t, []int{10, 15}, changes)
}

func TestObject_WildcardObserver(t *testing.T) {
	obj := NewObject(map[string]any{"s": "my test", "count": 1})
	counter := 0
	obj.Changes().Any().Subscribe(func() { counter++ })

	obj.Set("count", 10)
	obj.Set("count", 15)
	obj.Set("count", 15)

	assert.Equal(t, 2, counter)
}

func TestObject_NamedBeforeWildcard(t *testing.T) {
	obj := NewObject(map[string]any{"count": 1})
	var calls []string
	obj.Subscribe(Wildcard, func() { calls = append(calls, "any") })
	obj.Subscribe("count", func() { calls = append(calls, "count") })

	c, _ := Get[int](obj, "count")
	obj.Set("count", c+1)

	assert.Equal(t, []string{"count", "any"}, calls)
}

func TestObject_LooseEqualityNoop(t *testing.T) {
	obj := NewObject(map[string]any{"n": 1})
	fired := 0
	obj.Subscribe(Wildcard, func() { fired++ })

	obj.Set("n", 1.0)
	obj.Set("n", int64(1))
	assert.Zero(t, fired)

	obj.Set("n", 2)
	assert.Equal(t, 1, fired)
}

func TestObject_LargeAndUncomparableWritesNotify(t *testing.T) {
	type wrap struct{ X any }
	obj := NewObject(map[string]any{
		"id": int64(1 << 53),
		"w":  wrap{X: []int{1}},
	})
	fired := 0
	obj.Subscribe(Wildcard, func() { fired++ })

	obj.Set("id", int64(1<<53+1))
	assert.Equal(t, int64(1<<53+1), obj.Get("id"))
	assert.Equal(t, 1, fired)

	require.NotPanics(t, func() { obj.Set("w", wrap{X: []int{2}}) })
	assert.Equal(t, wrap{X: []int{2}}, obj.Get("w"))
	assert.Equal(t, 2, fired)
}

func TestObject_UndeclaredProperty(t *testing.T) {
	obj := NewObject(nil)
	fired := 0
	obj.Subscribe("late", func() { fired++ })

	obj.Set("late", "hello")

	assert.True(t, obj.Has("late"))
	assert.Equal(t, 1, fired)
	assert.Equal(t, []string{"late"}, obj.Keys())
}

func TestObject_UpdateCommit(t *testing.T) {
	obj := NewObject(map[string]any{"a": 1, "b": 2, "c": 3})
	var calls []string
	for _, name := range []string{"a", "b", "c", Wildcard} {
		obj.Subscribe(name, func() { calls = append(calls, name) })
	}

	obj.Update(map[string]any{"a": 10, "b": 2, "c": 30})

	assert.Equal(t, []string{"a", "c", Wildcard}, calls)

	calls = nil
	obj.Update(map[string]any{"a": 10})
	assert.Empty(t, calls)
}

func TestGet_WrongType(t *testing.T) {
	obj := NewObject(map[string]any{"s": "text"})
	_, ok := Get[int](obj, "s")
	assert.False(t, ok)
	s, ok := Get[string](obj, "s")
	require.True(t, ok)
	assert.Equal(t, "text", s)
}

func TestLooseEqual(t *testing.T) {
	type wrap struct{ X any }
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil vs value", nil, 0, false},
		{"same string", "a", "a", true},
		{"int vs float", 3, 3.0, true},
		{"uint vs int", uint8(7), 7, true},
		{"different numbers", 3, 4, false},
		{"string vs number", "1", 1, false},
		{"slices never equal", []int{1}, []int{1}, false},
		{"same pointer", &struct{}{}, nil, false},
		{"large int64 differ", int64(1 << 53), int64(1<<53 + 1), false},
		{"large int64 same", int64(1<<53 + 1), int64(1<<53 + 1), true},
		{"large uint64 differ", uint64(1 << 63), uint64(1<<63 + 1), false},
		{"int64 vs uint64 exact", int64(1<<53 + 1), uint64(1 << 53), false},
		{"int vs uint equal", int64(42), uint32(42), true},
		{"negative int vs uint", -1, uint(1<<64 - 1), false},
		{"struct holding slices", wrap{X: []int{1}}, wrap{X: []int{2}}, false},
		{"struct holding ints", wrap{X: 1}, wrap{X: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooseEqual(tt.a, tt.b))
		})
	}

	p := &struct{ x int }{}
	assert.True(t, LooseEqual(p, p))
}
