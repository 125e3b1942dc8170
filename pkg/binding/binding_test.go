package binding

import (
	"fmt"
	"testing"

	"github.com/go-drift/xdom/pkg/observable"
	"github.com/stretchr/testify/assert"
)

type widget struct {
	class string
	text  string
}

var (
	classProp Property[widget, string] = Accessor[widget, string]{
		Key:    "class",
		Getter: func(w *widget) string { return w.class },
		Setter: func(w *widget, v string) { w.class = v },
	}
	textProp Property[widget, string] = Accessor[widget, string]{
		Key:    "text",
		Getter: func(w *widget) string { return w.text },
		Setter: func(w *widget, v string) { w.text = v },
	}
)

func text(obj *observable.Object) string {
	return fmt.Sprintf("%v.%v", obj.Get("s"), obj.Get("count"))
}

func increment(obj *observable.Object) {
	c, _ := observable.Get[int](obj, "count")
	obj.Set("count", c+1)
}

func TestBinding_DisposeStopsUpdates(t *testing.T) {
	obj := observable.NewObject(map[string]any{"s": "my test", "count": 1})
	b := New(func() string { return text(obj) }, obj.Changes().Of("s"), obj.Changes().Of("count"))

	var updates []string
	b.OnUpdate(func(v string) { updates = append(updates, v) })
	assert.Equal(t, []string{"my test.1"}, updates)

	increment(obj)
	increment(obj)
	increment(obj)
	b.Dispose()
	increment(obj)

	assert.Equal(t, []string{"my test.1", "my test.2", "my test.3", "my test.4"}, updates)
	assert.True(t, b.Disposed())
}

func TestBinding_EagerPush(t *testing.T) {
	computed := 0
	b := New(func() int { computed++; return 42 })
	assert.Zero(t, computed)

	var got int
	b.OnUpdate(func(v int) { got = v })
	assert.Equal(t, 1, computed)
	assert.Equal(t, 42, got)
}

func TestBinding_SubscriptionOrder(t *testing.T) {
	obj := observable.NewObject(map[string]any{"count": 1})
	var seen []string
	first := New(func() any { return obj.Get("count") }, obj.Changes().Of("count"))
	second := New(func() any { return obj.Get("count") }, obj.Changes().Of("count"))
	first.OnUpdate(func(v any) { seen = append(seen, fmt.Sprint("first:", v)) })
	second.OnUpdate(func(v any) { seen = append(seen, fmt.Sprint("second:", v)) })
	seen = nil

	obj.Set("count", 2)

	assert.Equal(t, []string{"first:2", "second:2"}, seen)
}

func TestBinding_NilObservablesSkipped(t *testing.T) {
	obj := observable.NewObject(map[string]any{"v": 1})
	b := New(func() any { return obj.Get("v") }, nil, obj.Changes().Of("v"), nil)
	calls := 0
	b.OnUpdate(func(any) { calls++ })
	obj.Set("v", 2)
	assert.Equal(t, 2, calls)
}

func TestBind_WidgetLike(t *testing.T) {
	item := observable.NewObject(map[string]any{"text": "hello", "icon": "info"})
	game := observable.NewObject(map[string]any{"lives": 5, "name": "Boti"})
	repo := NewRepository()

	w := &widget{}
	Bind("w1", w, classProp, Bound(New(func() string { return item.Get("icon").(string) }, item.Changes().Of("icon"))), repo)
	Bind("w1", w, textProp, Bound(New(func() string {
		return fmt.Sprintf("%v %v(%v)", item.Get("text"), game.Get("name"), game.Get("lives"))
	}, item.Changes().Of("text"), game.Changes().Any())), repo)

	assert.Equal(t, "info", w.class)
	assert.Equal(t, "hello Boti(5)", w.text)
	game.Set("lives", 1)
	assert.Equal(t, "hello Boti(1)", w.text)
	item.Set("text", "Bye")
	assert.Equal(t, "Bye Boti(1)", w.text)

	assert.True(t, repo.Has("w1"))
	repo.ClearBindings("w1")
	assert.False(t, repo.Has("w1"))
	item.Set("text", "Gone")
	assert.Equal(t, "Bye Boti(1)", w.text)
}

func TestBind_Constant(t *testing.T) {
	w := &widget{}
	repo := NewRepository()
	assert.Nil(t, Bind("w", w, classProp, Const("static"), repo))
	assert.Equal(t, "static", w.class)
	assert.Zero(t, repo.Len())
	assert.Equal(t, "static", Const("static").Get())
}
