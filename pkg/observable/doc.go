// Package observable provides the change-notification substrate of the xdom
// runtime: a named-event subscription Repository, property bags that notify
// on change (Object), coarse-grained observable sequences (List) and a
// bounded numeric model (Range).
//
// All types here are single-threaded. Notifications are delivered
// synchronously on the goroutine that performed the write, in subscription
// order.
//
//	obj := observable.NewObject(map[string]any{"count": 1})
//	sub := obj.Changes().Of("count").Subscribe(func() {
//	    fmt.Println("count is now", obj.Get("count"))
//	})
//	obj.Set("count", 2) // prints "count is now 2"
//	sub.Unsubscribe()
package observable
