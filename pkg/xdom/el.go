package xdom

import (
	"maps"
	"slices"

	"golang.org/x/net/html"

	"github.com/go-drift/xdom/pkg/binding"
	"github.com/go-drift/xdom/pkg/dom"
	"github.com/go-drift/xdom/pkg/observable"
	"github.com/go-drift/xdom/pkg/shadow"
)

// Props describes a host node. Calculated fields are refreshed every frame
// while the node is visible; Binding fields are pushed when their upstream
// fires. A calculated or bound value takes precedence over the constant.
type Props struct {
	ID    string
	Class string
	Text  string
	Attrs map[string]string

	ClassCalc binding.Calculated[string]
	TextCalc  binding.Calculated[string]
	AttrCalcs map[string]binding.Calculated[string]

	ClassBinding *binding.Binding[string]
	TextBinding  *binding.Binding[string]

	// Visible is the visibility rule. Nil means always visible.
	Visible binding.Calculated[bool]

	OnClick        func()
	OnConnected    func()
	OnDisconnected func()

	// Dispose runs when the node's subtree is disposed.
	Dispose observable.Disposable
}

func (p Props) reactive() bool {
	return p.ClassCalc != nil || p.TextCalc != nil || len(p.AttrCalcs) > 0 ||
		p.ClassBinding != nil || p.TextBinding != nil || p.Visible != nil ||
		p.OnClick != nil || p.OnConnected != nil || p.OnDisconnected != nil || p.Dispose != nil
}

// El creates a host element with props and appends children. Nil children
// are skipped.
func (r *Runtime) El(tag string, props Props, children ...*html.Node) *html.Node {
	n := dom.NewElement(tag)
	if props.ID != "" {
		dom.SetAttr(n, "id", props.ID)
	}
	if props.Class != "" {
		dom.SetAttr(n, "class", props.Class)
	}
	for _, key := range slices.Sorted(maps.Keys(props.Attrs)) {
		dom.SetAttr(n, key, props.Attrs[key])
	}
	if props.Text != "" {
		dom.SetTextContent(n, props.Text)
	}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	if props.reactive() {
		r.wire(n, props)
	}
	return n
}

func (r *Runtime) wire(n *html.Node, props Props) {
	t := r.tree
	if props.Visible != nil {
		t.SetVisibility(n, props.Visible)
	}
	switch {
	case props.ClassBinding != nil:
		shadow.Bind(t, n, dom.Class(), props.ClassBinding)
	case props.ClassCalc != nil:
		shadow.CalcProperty(t, n, dom.Class(), props.ClassCalc)
	}
	switch {
	case props.TextBinding != nil:
		shadow.Bind(t, n, dom.Text(), props.TextBinding)
	case props.TextCalc != nil:
		shadow.CalcProperty(t, n, dom.Text(), props.TextCalc)
	}
	for _, key := range slices.Sorted(maps.Keys(props.AttrCalcs)) {
		shadow.CalcProperty(t, n, dom.Attr(key), props.AttrCalcs[key])
	}
	if props.OnConnected != nil || props.OnDisconnected != nil {
		t.Attach(n, shadow.ListenerFuncs{
			Connected:    props.OnConnected,
			Disconnected: props.OnDisconnected,
		})
	}

	node := t.Ensure(n)
	id := node.ID()
	if props.OnClick != nil {
		r.clicks[id] = props.OnClick
	}
	if props.OnClick != nil || props.Dispose != nil {
		t.RegisterDisposer(n, observable.DisposeFunc(func() {
			delete(r.clicks, id)
			if props.Dispose != nil {
				props.Dispose.Dispose()
			}
		}))
	}
}

// Div creates a <div>.
func (r *Runtime) Div(props Props, children ...*html.Node) *html.Node {
	return r.El("div", props, children...)
}

// Span creates a <span>.
func (r *Runtime) Span(props Props, children ...*html.Node) *html.Node {
	return r.El("span", props, children...)
}

// Text creates a text node.
func Text(s string) *html.Node {
	return dom.NewText(s)
}
