package dom

import (
	"fmt"

	EventBus "github.com/asaskevich/EventBus"
	"golang.org/x/net/html"
)

// MutationTopic prefixes the bus topics on which a Document publishes its
// batches. Each subscription gets its own topic.
const MutationTopic = "dom:mutations"

// maxFlushRounds bounds how many times Flush re-publishes records produced by
// its own subscribers before leaving the rest for the next Flush.
const maxFlushRounds = 16

// MutationType identifies the kind of a structural change.
type MutationType int

const (
	// ChildAdded records Node being inserted under Target.
	ChildAdded MutationType = iota
	// ChildRemoved records Node being removed from Target.
	ChildRemoved
	// CharacterData records a text-only change of Node.
	CharacterData
)

func (t MutationType) String() string {
	switch t {
	case ChildAdded:
		return "added"
	case ChildRemoved:
		return "removed"
	case CharacterData:
		return "characterData"
	default:
		return fmt.Sprintf("MutationType(%d)", int(t))
	}
}

// Mutation is one record of the mutation feed.
type Mutation struct {
	Type   MutationType
	Node   *html.Node
	Target *html.Node
}

// MutationHandler receives one ordered batch of records.
type MutationHandler func(batch []Mutation)

// Document owns the realized render surface rooted at Root. Structural
// changes made through its methods are recorded when they touch the surface
// and delivered, in order, to subscribers on Flush.
//
// Document is not safe for concurrent use; it belongs to the goroutine that
// runs the frame loop.
type Document struct {
	root     *html.Node
	bus      EventBus.Bus
	topics   []string
	nextID   int
	pending  []Mutation
	flushing bool
}

// NewDocument creates a Document whose surface is a fresh <body> element.
func NewDocument() *Document {
	return NewDocumentAt(NewElement("body"))
}

// NewDocumentAt creates a Document over an existing root node.
func NewDocumentAt(root *html.Node) *Document {
	return &Document{
		root: root,
		bus:  EventBus.New(),
	}
}

// Root returns the surface root.
func (d *Document) Root() *html.Node {
	return d.root
}

// Contains reports whether n is part of the surface.
func (d *Document) Contains(n *html.Node) bool {
	return n != nil && Contains(d.root, n)
}

// Subscribe registers h for mutation batches. Subscribers receive each
// batch in subscription order. The returned function unsubscribes h.
func (d *Document) Subscribe(h MutationHandler) (func(), error) {
	d.nextID++
	topic := fmt.Sprintf("%s/%d", MutationTopic, d.nextID)
	fn := func(batch []Mutation) { h(batch) }
	if err := d.bus.Subscribe(topic, fn); err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}
	d.topics = append(d.topics, topic)
	return func() {
		for i, t := range d.topics {
			if t == topic {
				d.topics = append(d.topics[:i:i], d.topics[i+1:]...)
				_ = d.bus.Unsubscribe(topic, fn)
				return
			}
		}
	}, nil
}

// Pending returns the number of undelivered records.
func (d *Document) Pending() int {
	return len(d.pending)
}

// Flush delivers pending records to the subscribers and returns how many
// were delivered. Records produced by subscribers while handling a batch are
// delivered in a following round of the same Flush. A Flush issued from
// inside a subscriber returns immediately.
func (d *Document) Flush() int {
	if d.flushing {
		return 0
	}
	d.flushing = true
	defer func() { d.flushing = false }()

	delivered := 0
	for round := 0; round < maxFlushRounds && len(d.pending) > 0; round++ {
		batch := d.pending
		d.pending = nil
		for _, topic := range d.topics {
			d.bus.Publish(topic, batch)
		}
		delivered += len(batch)
	}
	return delivered
}

// AppendChild moves child to the end of parent's children.
func (d *Document) AppendChild(parent, child *html.Node) {
	d.detach(child)
	parent.AppendChild(child)
	d.record(ChildAdded, child, parent)
}

// InsertBefore moves child before ref under parent. A nil ref appends.
func (d *Document) InsertBefore(parent, child, ref *html.Node) {
	if ref == child {
		return
	}
	d.detach(child)
	parent.InsertBefore(child, ref)
	d.record(ChildAdded, child, parent)
}

// InsertAfter moves child right after ref, under ref's parent.
func (d *Document) InsertAfter(ref, child *html.Node) {
	if ref == child || ref.Parent == nil {
		return
	}
	parent, next := ref.Parent, ref.NextSibling
	if next == child {
		return
	}
	d.InsertBefore(parent, child, next)
}

// Append appends several children to parent in order.
func (d *Document) Append(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		d.AppendChild(parent, c)
	}
}

// Remove detaches n from its parent. Detached nodes are left alone.
func (d *Document) Remove(n *html.Node) {
	d.detach(n)
}

// ReplaceChildren removes every child of parent and appends children.
func (d *Document) ReplaceChildren(parent *html.Node, children ...*html.Node) {
	for c := parent.LastChild; c != nil; {
		prev := c.PrevSibling
		d.detach(c)
		c = prev
	}
	d.Append(parent, children...)
}

// SetText sets the text content of n and records the change. Element
// children of n are removed through the document first.
func (d *Document) SetText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			d.detach(c)
		}
		c = next
	}
	SetTextContent(n, text)
	d.record(CharacterData, n, n)
}

func (d *Document) detach(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	parent.RemoveChild(n)
	d.record(ChildRemoved, n, parent)
}

func (d *Document) record(t MutationType, n, target *html.Node) {
	if !d.Contains(target) {
		return
	}
	d.pending = append(d.pending, Mutation{Type: t, Node: n, Target: target})
}
