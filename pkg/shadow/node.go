package shadow

import (
	"slices"
	"weak"

	"golang.org/x/net/html"

	"github.com/go-drift/xdom/pkg/binding"
	"github.com/go-drift/xdom/pkg/dom"
	"github.com/go-drift/xdom/pkg/errors"
)

// Listener is notified when a node joins or leaves the realized surface.
type Listener interface {
	OnConnected()
	OnDisconnected()
}

// ListenerFuncs adapts a pair of functions to Listener. Nil fields are
// skipped.
type ListenerFuncs struct {
	Connected    func()
	Disconnected func()
}

func (l ListenerFuncs) OnConnected() {
	if l.Connected != nil {
		l.Connected()
	}
}

func (l ListenerFuncs) OnDisconnected() {
	if l.Disconnected != nil {
		l.Disconnected()
	}
}

// Node is the shadow record of one host node.
type Node struct {
	id         string
	host       weak.Pointer[html.Node]
	root       bool
	parent     *Node
	children   []*Node
	visible    bool
	connected  bool
	visibility binding.Calculated[bool]
	listeners  []*listenerEntry
}

type listenerEntry struct {
	Listener
}

func newNode(id string, host *html.Node) *Node {
	return &Node{
		id:      id,
		host:    weak.Make(host),
		visible: true,
	}
}

// ID returns the stable identity used to key the node's bindings.
func (n *Node) ID() string { return n.id }

// Host returns the host node, or nil once it has been collected.
func (n *Node) Host() *html.Node { return n.host.Value() }

// Parent returns the parent node, or nil for the root and unlinked nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Visible reports the effective visibility.
func (n *Node) Visible() bool { return n.visible }

// Connected reports whether the node is part of the realized surface.
func (n *Node) Connected() bool { return n.connected }

// IsRoot reports whether n is the tree root.
func (n *Node) IsRoot() bool { return n.root }

// AddListener registers l and returns a function that unregisters it
// without notifying it. If the node is already connected, l receives
// OnConnected right away.
func (n *Node) AddListener(l Listener) func() {
	if l == nil {
		return func() {}
	}
	entry := &listenerEntry{Listener: l}
	n.listeners = append(n.listeners, entry)
	if n.connected {
		notify(l, true)
	}
	return func() {
		if i := slices.Index(n.listeners, entry); i >= 0 {
			n.listeners = slices.Delete(n.listeners, i, i+1)
		}
	}
}

// UpdateVisible re-evaluates the node's visibility and propagates a flip.
// The rule is not evaluated while an ancestor is invisible.
func (n *Node) UpdateVisible() {
	v := n.parentVisible() && n.evalRule()
	if v == n.visible {
		return
	}
	if v {
		n.show()
	} else {
		n.hide()
	}
}

func (n *Node) parentVisible() bool {
	return n.parent == nil || n.parent.visible
}

func (n *Node) parentConnected() bool {
	if n.root {
		return true
	}
	return n.parent != nil && n.parent.connected
}

func (n *Node) evalRule() bool {
	if n.visibility == nil {
		return true
	}
	v := n.visible
	errors.Guard("shadow.visibility", func() { v = n.visibility() })
	return v
}

// establish derives the node's state from its parent, evaluating its own
// rule only when the parent is visible.
func (n *Node) establish() {
	if n.parentVisible() && n.evalRule() {
		n.show()
	} else {
		n.hide()
	}
}

// show marks n visible, connects it when its parent is connected, then
// establishes every child.
func (n *Node) show() {
	n.visible = true
	n.setConnected(n.parentConnected())
	for _, c := range slices.Clone(n.children) {
		if c.parent == n {
			c.establish()
		}
	}
}

// hide forces n and its subtree invisible and disconnected, children first.
func (n *Node) hide() {
	for _, c := range slices.Clone(n.children) {
		if c.parent == n {
			c.hide()
		}
	}
	n.visible = false
	n.setConnected(false)
}

// disconnectSubtree disconnects the subtree children first, leaving the
// visibility flags alone.
func (n *Node) disconnectSubtree() {
	for _, c := range slices.Clone(n.children) {
		if c.parent == n {
			c.disconnectSubtree()
		}
	}
	n.setConnected(false)
}

func (n *Node) setConnected(connected bool) {
	if n.root || n.connected == connected {
		return
	}
	n.connected = connected
	for _, l := range slices.Clone(n.listeners) {
		// A listener flipped the state back; the nested call has notified.
		if n.connected != connected {
			return
		}
		notify(l.Listener, connected)
	}
}

func notify(l Listener, connected bool) {
	if connected {
		errors.Guard("shadow.OnConnected", l.OnConnected)
	} else {
		errors.Guard("shadow.OnDisconnected", l.OnDisconnected)
	}
}

// addChild links c under n at the position given by host document order and
// establishes its state. A child linked elsewhere is detached first.
func (n *Node) addChild(c *Node) {
	if c == n || c.root {
		return
	}
	if c.parent == n {
		return
	}
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	n.children = slices.Insert(n.children, n.insertIndex(c), c)
	c.parent = n
	c.establish()
}

// insertIndex returns the index of the first child whose host follows c's.
func (n *Node) insertIndex(c *Node) int {
	host := c.Host()
	if host == nil {
		return len(n.children)
	}
	for i, sibling := range n.children {
		if sh := sibling.Host(); sh != nil && dom.Precedes(host, sh) {
			return i
		}
	}
	return len(n.children)
}

// removeChild disconnects c's subtree, then unlinks it. It reports false
// when c is not a child of n.
func (n *Node) removeChild(c *Node) bool {
	i := slices.Index(n.children, c)
	if i < 0 {
		return false
	}
	c.disconnectSubtree()
	// Listeners may have relinked the tree meanwhile.
	if i = slices.Index(n.children, c); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	if c.parent == n {
		c.parent = nil
	}
	return true
}

// adopt moves c under n without passing through the disconnected state,
// then reconciles c with its new parent.
func (n *Node) adopt(c *Node) {
	if old := c.parent; old != nil {
		if i := slices.Index(old.children, c); i >= 0 {
			old.children = slices.Delete(old.children, i, i+1)
		}
	}
	n.children = slices.Insert(n.children, n.insertIndex(c), c)
	c.parent = n
	c.establish()
}
