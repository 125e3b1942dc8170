package shadow

import (
	"slices"
	"weak"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/go-drift/xdom/pkg/binding"
	"github.com/go-drift/xdom/pkg/dom"
	"github.com/go-drift/xdom/pkg/errors"
	"github.com/go-drift/xdom/pkg/observable"
)

// Tree is the shadow tree of one render surface.
//
// The node map and the binding registries are keyed without holding the
// host nodes strongly, so state for an unreachable host is never traversed
// again. DisposeTree remains the deterministic way to release it.
type Tree struct {
	root      *Node
	rootHost  weak.Pointer[html.Node]
	nodes     map[weak.Pointer[html.Node]]*Node
	lights    *binding.Registry[html.Node]
	bindings  *binding.Repository
	disposers map[string]observable.Disposable
}

// Stats is a snapshot of the tree's bookkeeping sizes.
type Stats struct {
	Nodes             int
	BoundObjects      int
	LightBoundObjects int
	Disposers         int
}

// NewTree creates a tree whose root mirrors rootHost, the realized surface.
func NewTree(rootHost *html.Node) *Tree {
	root := newNode(uuid.NewString(), rootHost)
	root.root = true
	root.connected = true
	t := &Tree{
		root:      root,
		rootHost:  root.host,
		nodes:     map[weak.Pointer[html.Node]]*Node{root.host: root},
		lights:    binding.NewRegistry[html.Node](),
		bindings:  binding.NewRepository(),
		disposers: make(map[string]observable.Disposable),
	}
	return t
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// LightBindings returns the per-frame light binding registry.
func (t *Tree) LightBindings() *binding.Registry[html.Node] { return t.lights }

// Bindings returns the push binding repository.
func (t *Tree) Bindings() *binding.Repository { return t.bindings }

// Lookup returns the node mirroring h.
func (t *Tree) Lookup(h *html.Node) (*Node, bool) {
	if h == nil {
		return nil, false
	}
	n, ok := t.nodes[weak.Make(h)]
	return n, ok
}

// Ensure returns the node mirroring h, creating it on first use. A node
// created for a host that is already part of the surface is linked at once,
// adopting mirrored descendants that were linked to its ancestor.
func (t *Tree) Ensure(h *html.Node) *Node {
	if n, ok := t.Lookup(h); ok {
		return n
	}
	n := newNode(uuid.NewString(), h)
	t.nodes[n.host] = n

	rootHost := t.rootHost.Value()
	if rootHost == nil || !dom.Contains(rootHost, h) {
		return n
	}
	anchor := t.nearest(h.Parent)
	var adopted []*Node
	for _, c := range anchor.children {
		if ch := c.Host(); ch != nil && dom.Contains(h, ch) {
			adopted = append(adopted, c)
		}
	}
	anchor.addChild(n)
	for _, c := range adopted {
		n.adopt(c)
	}
	return n
}

// nearest returns the closest mirrored node at or above h, or the root.
func (t *Tree) nearest(h *html.Node) *Node {
	for cur := h; cur != nil; cur = cur.Parent {
		if n, ok := t.Lookup(cur); ok {
			return n
		}
	}
	return t.root
}

// Attach registers l on the node of h and returns a function removing it.
func (t *Tree) Attach(h *html.Node, l Listener) func() {
	return t.Ensure(h).AddListener(l)
}

// SetVisibility installs the visibility rule of h. A nil rule means
// always visible. The new rule is applied immediately. The root is always
// visible: a rule on it is reported as misuse and ignored.
func (t *Tree) SetVisibility(h *html.Node, rule binding.Calculated[bool]) *Node {
	n := t.Ensure(h)
	if n.root {
		if rule != nil {
			errors.Misuse("shadow.SetVisibility", "visibility rule on the root <%s> ignored", h.Data)
		}
		return n
	}
	n.visibility = rule
	n.UpdateVisible()
	return n
}

// Link attaches child under parent. It is the structural attach used by the
// Synchronizer.
func (t *Tree) Link(parent, child *Node) {
	parent.addChild(child)
}

// Unlink disconnects child's subtree and detaches it from its parent. It
// reports false when child is not linked.
func (t *Tree) Unlink(child *Node) bool {
	if child.parent == nil {
		return false
	}
	return child.parent.removeChild(child)
}

// RegisterDisposer sets the disposer run by DisposeTree for h. Registering a
// second disposer for the same host is a misuse: it is reported and the old
// disposer is replaced.
func (t *Tree) RegisterDisposer(h *html.Node, d observable.Disposable) {
	n := t.Ensure(h)
	if _, ok := t.disposers[n.id]; ok {
		errors.Misuse("shadow.RegisterDisposer", "host <%s> (%s) already has a disposer, overwriting it", h.Data, n.id)
	}
	t.disposers[n.id] = d
}

// DisposeTree releases every resource attached to h and its descendants,
// children first: push bindings, light bindings, the disposer, and finally
// the shadow node itself.
func (t *Tree) DisposeTree(h *html.Node) {
	for c := h.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			t.DisposeTree(c)
		}
		c = next
	}
	n, ok := t.Lookup(h)
	if !ok || n.root {
		return
	}
	if n.parent != nil {
		n.parent.removeChild(n)
	} else {
		n.disconnectSubtree()
	}
	t.release(n)
}

func (t *Tree) release(n *Node) {
	t.bindings.ClearBindings(n.id)
	t.lights.ClearForObject(n.id)
	if d, ok := t.disposers[n.id]; ok {
		delete(t.disposers, n.id)
		errors.Guard("shadow.dispose", d.Dispose)
	}
	// Orphaned shadow children (hosts moved away meanwhile) stay mapped but
	// unlinked until the synchronizer sees them again.
	for _, c := range slices.Clone(n.children) {
		n.removeChild(c)
	}
	n.listeners = nil
	delete(t.nodes, n.host)
}

// Refresh walks the linked tree in pre-order. Each node re-evaluates its
// visibility; invisible nodes are skipped together with their subtree,
// visible ones get their light bindings refreshed. It returns the number of
// nodes refreshed.
func (t *Tree) Refresh() int {
	visited := 0
	var visit func(n *Node)
	visit = func(n *Node) {
		n.UpdateVisible()
		if !n.visible {
			return
		}
		visited++
		errors.Guard("shadow.refresh", func() { t.lights.Refresh(n.id) })
		for _, c := range slices.Clone(n.children) {
			if c.parent == n {
				visit(c)
			}
		}
	}
	visit(t.root)
	return visited
}

// Prune drops the nodes whose host has been collected and returns how many
// were removed.
func (t *Tree) Prune() int {
	pruned := 0
	for key, n := range t.nodes {
		if n.root || key.Value() != nil {
			continue
		}
		if n.parent != nil {
			n.parent.removeChild(n)
		}
		t.release(n)
		pruned++
	}
	return pruned
}

// Stats returns the current bookkeeping sizes.
func (t *Tree) Stats() Stats {
	return Stats{
		Nodes:             len(t.nodes),
		BoundObjects:      t.bindings.Len(),
		LightBoundObjects: t.lights.Len(),
		Disposers:         len(t.disposers),
	}
}

// CalcProperty writes calc() into prop of h and keeps it fresh on every
// frame while h is visible.
func CalcProperty[V comparable](t *Tree, h *html.Node, prop binding.Property[html.Node, V], calc binding.Calculated[V]) {
	n := t.Ensure(h)
	binding.CalcProperty(n.id, h, prop, calc, t.lights)
}

// Bind attaches a push binding to prop of h. The binding is disposed with
// h's subtree.
func Bind[V comparable](t *Tree, h *html.Node, prop binding.Property[html.Node, V], b *binding.Binding[V]) {
	n := t.Ensure(h)
	binding.Bind(n.id, h, prop, binding.Bound(b), t.bindings)
}
