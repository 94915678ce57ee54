/*
	The `graph` package holds the document model: a `Graph` is the ordered
	list of items one calculator document shows, plus where it was saved.

	Graphs are built up with chained add calls:

		g := graph.FromMarkup("y=x").
			AddExpression("x^2", api.Options{Color: "#2d70b3"}).
			AddPoint("1", "1/2").
			AddNote("hello")
		if err := g.Save(ctx, client); err != nil {
			...
		}
		fmt.Println(g.Location())

	Every add appends exactly one item, with id one greater than the number
	of items already present.  Items without explicit options get a color
	from the default cycle (see `api.DefaultColor`).

	A Graph is not safe for concurrent use.  In particular, don't add items
	while a `Save` is in flight; the payload is encoded before the request
	goes out, so later additions may or may not be reflected.
*/
package graph

import (
	"time"

	"github.com/inconshreveable/log15"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/lib/asciimath"
)

type Graph struct {
	items    []api.Item
	location string
	receipt  api.SaveReceipt
	err      error // first texify failure; makes further adds no-ops.

	texify api.Texifier
	clock  func() time.Time
	log    log15.Logger
}

/*
	Config is the configuration-object form of graph construction.
	All fields are optional.
*/
type Config struct {
	Items  []api.Item       // initial items, taken verbatim (ids included).
	Texify api.Texifier     // defaults to `asciimath.Texify`.
	Clock  func() time.Time // defaults to `time.Now`; salts the graph hash.
	Log    log15.Logger     // defaults to discarding everything.
}

func New(cfg Config) *Graph {
	g := &Graph{
		items:  append([]api.Item(nil), cfg.Items...),
		texify: cfg.Texify,
		clock:  cfg.Clock,
		log:    cfg.Log,
	}
	if g.texify == nil {
		g.texify = asciimath.Texify
	}
	if g.clock == nil {
		g.clock = time.Now
	}
	if g.log == nil {
		g.log = log15.New()
		g.log.SetHandler(log15.DiscardHandler())
	}
	return g
}

// FromMarkup is sugar for a graph holding one expression, with the default color.
func FromMarkup(markup string) *Graph {
	return New(Config{}).AddMarkup(markup)
}

// Items returns a copy of the graph's items, in insertion order.
func (g *Graph) Items() []api.Item {
	return append([]api.Item(nil), g.items...)
}

func (g *Graph) Len() int {
	return len(g.items)
}

/*
	Err returns the first error any add operation ran into, or nil.

	Only texify failures can cause one.  The failing add leaves the graph
	untouched, and every add after it is ignored, so a chain of adds can
	be checked once at the end.  `State`, `Payload`, and `Save` return the
	same error.
*/
func (g *Graph) Err() error {
	return g.err
}

// Location is the public URL of the graph after a successful Save, or "".
func (g *Graph) Location() string {
	return g.location
}

// Receipt is what the service returned for the last successful Save.
func (g *Graph) Receipt() api.SaveReceipt {
	return g.receipt
}

func (g *Graph) nextID() int {
	return len(g.items) + 1
}
