package graph

import (
	"go.polydawn.net/calcgraph/api"
)

// colorFor resolves styling for the next item.  With no options, the
// default cycle applies; otherwise the last options given win outright.
func (g *Graph) colorFor(opts []api.Options) api.Color {
	if len(opts) == 0 {
		return api.DefaultColor(g.nextID())
	}
	return opts[len(opts)-1].Color
}

func (g *Graph) appendExpression(latex string, color api.Color) *Graph {
	g.items = append(g.items, api.Expression{
		ID:    g.nextID(),
		Latex: latex,
		Color: color,
	})
	return g
}

func (g *Graph) texifyAll(sources ...string) ([]string, bool) {
	out := make([]string, len(sources))
	for i, src := range sources {
		tex, err := g.texify(src)
		if err != nil {
			g.err = err
			g.log.Debug("texify failed", "source", src, "err", err)
			return nil, false
		}
		out[i] = tex
	}
	return out, true
}

// AddMarkup appends an expression whose markup is `markup`, verbatim.
func (g *Graph) AddMarkup(markup string, opts ...api.Options) *Graph {
	if g.err != nil {
		return g
	}
	return g.appendExpression(markup, g.colorFor(opts))
}

// AddExpression appends an expression converted from source notation.
func (g *Graph) AddExpression(source string, opts ...api.Options) *Graph {
	if g.err != nil {
		return g
	}
	color := g.colorFor(opts)
	tex, ok := g.texifyAll(source)
	if !ok {
		return g
	}
	return g.appendExpression(tex[0], color)
}

// AddPoint appends the point `(x, y)`, with both coordinates in source notation.
func (g *Graph) AddPoint(x, y string, opts ...api.Options) *Graph {
	if g.err != nil {
		return g
	}
	color := g.colorFor(opts)
	tex, ok := g.texifyAll(x, y)
	if !ok {
		return g
	}
	return g.appendExpression(pointMarkup(tex[0], tex[1]), color)
}

// AddLatexPoint appends the point `(x, y)`, with both coordinates already in markup.
func (g *Graph) AddLatexPoint(x, y string, opts ...api.Options) *Graph {
	if g.err != nil {
		return g
	}
	return g.appendExpression(pointMarkup(x, y), g.colorFor(opts))
}

// AddNote appends a text note.  Notes carry no color.
func (g *Graph) AddNote(text string) *Graph {
	if g.err != nil {
		return g
	}
	g.items = append(g.items, api.Note{
		ID:   g.nextID(),
		Text: text,
	})
	return g
}

func pointMarkup(x, y string) string {
	return `\left(` + x + `,` + y + `\right)`
}
