package api

/*
	This file is all the types that make up a graph document:
	the Items a calculator renders, and the styling options they carry.

	The wire shape of these lives in 'state.go'; the types here are what
	the rest of calcgraph holds and passes around.
*/

/*
	Item is one entry in a graph's expression list: either an `Expression`
	(something plotted) or a `Note` (a text annotation).

	The set of implementations is closed; switch on the concrete type.
*/
type Item interface {
	ItemID() int
	_item()
}

var (
	_ Item = Expression{}
	_ Item = Note{}
)

type (
	/*
		Expression is a plotted line of calculator markup (LaTeX, as the
		calculator understands it).  An empty Color means "no color field":
		the service picks one.
	*/
	Expression struct {
		ID    int
		Latex string
		Color Color
	}

	// Note is a plain text annotation.  Notes are never colored.
	Note struct {
		ID   int
		Text string
	}
)

func (x Expression) ItemID() int { return x.ID }
func (x Note) ItemID() int       { return x.ID }
func (Expression) _item()        {}
func (Note) _item()              {}

// Color is a "#RRGGBB" string.  No validation is applied; the service has the last word.
type Color string

/*
	Options carries per-item styling for the add operations.
	Passing an Options at all opts out of the default color cycle,
	so a zero Options means "no color".
*/
type Options struct {
	Color Color
}

// Palette is the cycle default colors are drawn from, in order.
var Palette = [...]Color{
	"#c74440",
	"#2d70b3",
	"#388c46",
	"#fa7e19",
	"#6042a6",
	"#000000",
}

/*
	DefaultColor returns the color the cycling policy assigns to the item
	that will receive id `nextID`.

	The index is `(nextID mod 6) - 1`, so ids 1 through 5 take the first five
	palette entries in order.  Ids divisible by six land on index -1, which
	wraps around to the last entry: the cycle reads as
	red, blue, green, orange, purple, black, red, ...
*/
func DefaultColor(nextID int) Color {
	n := len(Palette)
	idx := nextID%n - 1
	if idx < 0 {
		idx += n
	}
	return Palette[idx]
}

/*
	Texifier converts source notation (AsciiMath-ish, e.g. "x^2/3") into
	calculator markup.  Its errors are passed up untouched.

	See `lib/asciimath.Texify` for the default implementation.
*/
type Texifier func(source string) (string, error)
