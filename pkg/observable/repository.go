package observable

// Wildcard is the reserved event name whose subscribers are notified on
// every NotifyFor call, after the subscribers of the named events.
// Property names must not use it.
const Wildcard = "*"

// Subscription is returned by Repository.Add. Unsubscribe removes exactly
// the registration that produced it; calling it again is a no-op.
type Subscription interface {
	Disposable
	Unsubscribe()
}

// Observable is anything a Binding can watch.
type Observable interface {
	Subscribe(onChange func()) Subscription
}

type subscriber struct {
	onChange func()
}

// Repository maps event names to ordered subscriber lists.
//
// The zero value is ready to use. Storage is only allocated for names that
// actually have subscribers, so models with few observers stay small.
type Repository struct {
	subs map[string][]*subscriber
}

// NewRepository returns an empty Repository.
func NewRepository() *Repository {
	return &Repository{}
}

// Add registers onChange for name (which may be Wildcard) and returns the
// Subscription that removes it again.
func (r *Repository) Add(name string, onChange func()) Subscription {
	if r.subs == nil {
		r.subs = make(map[string][]*subscriber)
	}
	sub := &subscriber{onChange: onChange}
	r.subs[name] = append(r.subs[name], sub)
	return &registration{repo: r, name: name, sub: sub}
}

// NotifyFor invokes the subscribers of each name in turn, then the wildcard
// subscribers once for the whole call.
func (r *Repository) NotifyFor(names ...string) {
	for _, name := range names {
		if name == Wildcard {
			continue
		}
		r.notify(name)
	}
	r.notify(Wildcard)
}

// Count returns the number of live subscriptions for name.
func (r *Repository) Count(name string) int {
	return len(r.subs[name])
}

// Changes returns a facade that yields an Observable per event name.
func (r *Repository) Changes() Changes {
	return Changes{repo: r}
}

func (r *Repository) notify(name string) {
	subs := r.subs[name]
	if len(subs) == 0 {
		return
	}
	// Callbacks may unsubscribe while we iterate.
	snapshot := make([]*subscriber, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		if s.onChange != nil {
			s.onChange()
		}
	}
}

func (r *Repository) remove(name string, sub *subscriber) {
	subs := r.subs[name]
	for i, s := range subs {
		if s == sub {
			r.subs[name] = append(subs[:i:i], subs[i+1:]...)
			if len(r.subs[name]) == 0 {
				delete(r.subs, name)
			}
			return
		}
	}
}

type registration struct {
	repo *Repository
	name string
	sub  *subscriber
	done bool
}

func (s *registration) Unsubscribe() {
	if s.done {
		return
	}
	s.done = true
	s.repo.remove(s.name, s.sub)
}

func (s *registration) Dispose() { s.Unsubscribe() }

// Changes indexes a Repository by event name.
type Changes struct {
	repo *Repository
}

// Of returns the Observable for the named event.
func (c Changes) Of(name string) Observable {
	return channel{repo: c.repo, name: name}
}

// Any returns the Observable for the wildcard channel.
func (c Changes) Any() Observable {
	return channel{repo: c.repo, name: Wildcard}
}

type channel struct {
	repo *Repository
	name string
}

func (c channel) Subscribe(onChange func()) Subscription {
	return c.repo.Add(c.name, onChange)
}
