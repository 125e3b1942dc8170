package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepository_NotifyOrder(t *testing.T) {
	var r Repository
	var calls []string
	r.Add(Wildcard, func() { calls = append(calls, "any") })
	r.Add("a", func() { calls = append(calls, "a1") })
	r.Add("b", func() { calls = append(calls, "b") })
	r.Add("a", func() { calls = append(calls, "a2") })

	r.NotifyFor("a", "b")

	assert.Equal(t, []string{"a1", "a2", "b", "any"}, calls)
}

func TestRepository_WildcardOncePerCall(t *testing.T) {
	var r Repository
	count := 0
	r.Add(Wildcard, func() { count++ })

	r.NotifyFor("a", "b", "c")
	assert.Equal(t, 1, count)

	r.NotifyFor()
	assert.Equal(t, 2, count)
}

func TestRepository_UnsubscribeRemovesExactlyOne(t *testing.T) {
	var r Repository
	var calls []int
	r.Add("x", func() { calls = append(calls, 1) })
	sub := r.Add("x", func() { calls = append(calls, 2) })
	r.Add("x", func() { calls = append(calls, 3) })

	sub.Unsubscribe()
	sub.Unsubscribe()
	sub.Dispose()

	r.NotifyFor("x")
	assert.Equal(t, []int{1, 3}, calls)
	assert.Equal(t, 2, r.Count("x"))
}

func TestRepository_UnsubscribeDuringNotify(t *testing.T) {
	var r Repository
	var calls []string
	var first Subscription
	first = r.Add("x", func() {
		calls = append(calls, "first")
		first.Unsubscribe()
	})
	r.Add("x", func() { calls = append(calls, "second") })

	r.NotifyFor("x")
	r.NotifyFor("x")

	assert.Equal(t, []string{"first", "second", "second"}, calls)
}

func TestChanges_Facade(t *testing.T) {
	r := NewRepository()
	fired := 0
	sub := r.Changes().Of("count").Subscribe(func() { fired++ })
	r.Changes().Any().Subscribe(func() { fired += 10 })

	r.NotifyFor("count")
	assert.Equal(t, 11, fired)

	sub.Dispose()
	r.NotifyFor("count")
	assert.Equal(t, 21, fired)
}
