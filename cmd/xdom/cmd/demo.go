package cmd

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/go-drift/xdom/pkg/binding"
	"github.com/go-drift/xdom/pkg/dom"
	"github.com/go-drift/xdom/pkg/observable"
	"github.com/go-drift/xdom/pkg/xdom"
)

// demo is the sample application: a counter with a push-bound label, a
// collapsible panel, a growing list and a status line refreshed per frame.
type demo struct {
	rt    *xdom.Runtime
	model *observable.Object
	items *observable.List[string]
	root  *html.Node
}

func newDemo(rt *xdom.Runtime, appName string) *demo {
	d := &demo{
		rt: rt,
		model: observable.NewObject(map[string]any{
			"count":   0,
			"details": false,
		}),
		items: observable.Of("first"),
	}

	countLabel := binding.New(func() string {
		return fmt.Sprintf("count: %v", d.model.Get("count"))
	}, d.model.Changes().Of("count"))

	list := rt.El("ul", xdom.Props{ID: "items"})

	d.root = rt.Div(xdom.Props{Class: "app"},
		rt.El("h1", xdom.Props{Text: appName}),
		rt.El("p", xdom.Props{ID: "status", TextCalc: d.status}),
		rt.El("button", xdom.Props{ID: "inc", Text: "+1", OnClick: d.increment}),
		rt.Span(xdom.Props{ID: "count", TextBinding: countLabel}),
		rt.El("button", xdom.Props{ID: "toggle", Text: "details", OnClick: d.toggle}),
		rt.Div(xdom.Props{
			ID:        "details",
			Visible:   d.detailsVisible,
			ClassCalc: d.detailsClass,
		},
			rt.Span(xdom.Props{TextCalc: func() string {
				return fmt.Sprintf("%d recurring, %d light-bound", d.rt.Stats().RecurringUpdates, d.rt.Stats().LightBoundObjects)
			}}),
		),
		rt.El("button", xdom.Props{ID: "add", Text: "add", OnClick: d.add}),
		list,
	)
	rt.Mount(d.root)
	xdom.ListItems(rt, list, d.items, func(item string) *html.Node {
		return rt.El("li", xdom.Props{Text: item})
	})
	return d
}

func (d *demo) status() string {
	stats := d.rt.Stats()
	return "frame " + strconv.FormatUint(stats.Frames, 10) + " at " + strconv.Itoa(stats.FPS) + " fps"
}

func (d *demo) increment() {
	count, _ := observable.Get[int](d.model, "count")
	d.model.Set("count", count+1)
}

func (d *demo) toggle() {
	shown, _ := observable.Get[bool](d.model, "details")
	d.model.Set("details", !shown)
}

func (d *demo) detailsVisible() bool {
	shown, _ := observable.Get[bool](d.model, "details")
	return shown
}

func (d *demo) detailsClass() string {
	if count, _ := observable.Get[int](d.model, "count"); count%2 == 1 {
		return "details odd"
	}
	return "details even"
}

func (d *demo) add() {
	d.items.Push(fmt.Sprintf("item %d", d.items.Len()+1))
}

// click dispatches a click on the element with the given id.
func (d *demo) click(id string) error {
	n := dom.FindByID(d.rt.Root(), id)
	if n == nil {
		return fmt.Errorf("no element with id %q", id)
	}
	if !d.rt.Click(n) {
		return fmt.Errorf("element %q has no click handler", id)
	}
	return nil
}
