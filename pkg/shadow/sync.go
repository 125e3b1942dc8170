package shadow

import (
	"golang.org/x/net/html"

	"github.com/go-drift/xdom/pkg/dom"
)

// Synchronizer applies the mutation feed of a document to a Tree.
//
// Insertions are resolved upwards: the nearest mirrored ancestor of the
// inserted node becomes the anchor, and the inserted subtree is walked so
// that every mirrored descendant is linked, because a feed reports a subtree
// insertion once, not per descendant. Removals are resolved downwards: a
// removed plain node may still contain mirrored descendants that must be
// disconnected.
type Synchronizer struct {
	tree        *Tree
	unsubscribe func()
}

// NewSynchronizer creates a Synchronizer for tree.
func NewSynchronizer(tree *Tree) *Synchronizer {
	return &Synchronizer{tree: tree}
}

// Observe subscribes to doc's mutation feed. A previous subscription is
// dropped.
func (s *Synchronizer) Observe(doc *dom.Document) error {
	s.Stop()
	unsubscribe, err := doc.Subscribe(s.Apply)
	if err != nil {
		return err
	}
	s.unsubscribe = unsubscribe
	return nil
}

// Stop ends the current subscription, if any.
func (s *Synchronizer) Stop() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Apply processes one ordered batch. Text-only records are ignored.
func (s *Synchronizer) Apply(batch []dom.Mutation) {
	for _, m := range batch {
		if m.Node == nil || m.Node.Type != html.ElementNode {
			continue
		}
		switch m.Type {
		case dom.ChildAdded:
			s.added(m.Node)
		case dom.ChildRemoved:
			s.removed(m.Node)
		}
	}
}

func (s *Synchronizer) added(h *html.Node) {
	rootHost := s.tree.rootHost.Value()
	// Added and removed again within the same batch.
	if rootHost == nil || !dom.Contains(rootHost, h) {
		return
	}
	s.link(h, s.tree.nearest(h.Parent))
}

func (s *Synchronizer) link(h *html.Node, anchor *Node) {
	if n, ok := s.tree.Lookup(h); ok && !n.root {
		s.tree.Link(anchor, n)
		anchor = n
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			s.link(c, anchor)
		}
	}
}

func (s *Synchronizer) removed(h *html.Node) {
	if n, ok := s.tree.Lookup(h); ok {
		s.tree.Unlink(n)
		return
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			s.removed(c)
		}
	}
}
