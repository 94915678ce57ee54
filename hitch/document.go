/*
	The `hitch` package loads graph documents: yaml (or json) files that
	describe a graph as initial items plus a list of add operations.

		items:
		  - {type: expression, id: 0, latex: "y=x", color: "#c74440"}
		  - {type: text, id: 1, text: "hi"}
		add:
		  - markup: "y=x"
		  - expression: "x^2"
		    color: "#2d70b3"
		  - point: ["1", "1/2"]
		  - latexPoint: ["\\pi", "0"]
		  - note: "hello"

	Both sections are optional.  `items` are taken verbatim, ids and all.
	Each `add` entry names exactly one operation and is applied in order
	with the same rules as the `graph` methods of the same name; giving a
	`color` key (even an empty one) replaces the default color.
*/
package hitch

import (
	"fmt"
	"io"
	"os"
	"sort"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/graph"
	"go.polydawn.net/calcgraph/lib/errcat"
)

/*
	Loads a graph document from a file.

	May error with:

	  - `api.ErrIO` for any errors in reading the file.
	  - `api.ErrParsing` for unparsable or invalid content.
	  - `api.ErrTexify` if an add operation's source can't be converted.
*/
func LoadGraphFromFile(path string, cfg graph.Config) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errcat.Errorf(api.ErrIO, "cannot open graph document: %s", err)
	}
	defer f.Close()
	return DecodeGraph(f, cfg)
}

/*
	DecodeGraph reads a graph document from `r`.  Document items are
	appended after any `cfg.Items`; the rest of `cfg` is passed through to
	`graph.New`.
*/
func DecodeGraph(r io.Reader, cfg graph.Config) (*graph.Graph, error) {
	doc, err := decodeYaml(r)
	if err != nil {
		return nil, err
	}
	for k := range doc {
		if k != "items" && k != "add" {
			return nil, errcat.Errorf(api.ErrParsing, "unknown key %q in graph document", k)
		}
	}
	items, err := parseItems(doc["items"])
	if err != nil {
		return nil, err
	}
	cfg.Items = append(append([]api.Item(nil), cfg.Items...), items...)
	g := graph.New(cfg)
	if err := applyAdds(g, doc["add"]); err != nil {
		return nil, err
	}
	if err := g.Err(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseItems(raw interface{}) ([]api.Item, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, errcat.Errorf(api.ErrParsing, "items must be a list")
	}
	items := make([]api.Item, 0, len(list))
	for i, entry := range list {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return nil, errcat.Errorf(api.ErrParsing, "items[%d] must be a map", i)
		}
		id, ok := m["id"].(int)
		if !ok {
			return nil, errcat.Errorf(api.ErrParsing, "items[%d] needs an integer id", i)
		}
		switch typ, _ := m["type"].(string); typ {
		case "expression":
			if err := onlyKeys(m, "type", "id", "latex", "color"); err != nil {
				return nil, errcat.Errorf(api.ErrParsing, "items[%d]: %s", i, err)
			}
			latex, err := stringValue(m, "latex")
			if err != nil {
				return nil, errcat.Errorf(api.ErrParsing, "items[%d]: %s", i, err)
			}
			color, err := stringValue(m, "color")
			if err != nil {
				return nil, errcat.Errorf(api.ErrParsing, "items[%d]: %s", i, err)
			}
			items = append(items, api.Expression{ID: id, Latex: latex, Color: api.Color(color)})
		case "text":
			if err := onlyKeys(m, "type", "id", "text"); err != nil {
				return nil, errcat.Errorf(api.ErrParsing, "items[%d]: %s", i, err)
			}
			text, err := stringValue(m, "text")
			if err != nil {
				return nil, errcat.Errorf(api.ErrParsing, "items[%d]: %s", i, err)
			}
			items = append(items, api.Note{ID: id, Text: text})
		default:
			return nil, errcat.Errorf(api.ErrParsing, "items[%d] has unknown type %q", i, typ)
		}
	}
	return items, nil
}

var addOps = map[string]bool{
	"markup":     true,
	"expression": true,
	"point":      true,
	"latexPoint": true,
	"note":       true,
}

func applyAdds(g *graph.Graph, raw interface{}) error {
	if raw == nil {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return errcat.Errorf(api.ErrParsing, "add must be a list")
	}
	for i, entry := range list {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return errcat.Errorf(api.ErrParsing, "add[%d] must be a map", i)
		}
		var op string
		for k := range m {
			switch {
			case addOps[k] && op != "":
				return errcat.Errorf(api.ErrParsing, "add[%d] names more than one operation", i)
			case addOps[k]:
				op = k
			case k == "color":
			default:
				return errcat.Errorf(api.ErrParsing, "add[%d] has unknown key %q", i, k)
			}
		}
		if op == "" {
			return errcat.Errorf(api.ErrParsing, "add[%d] names no operation", i)
		}
		var opts []api.Options
		if c, ok := m["color"]; ok {
			if op == "note" {
				return errcat.Errorf(api.ErrParsing, "add[%d]: notes take no color", i)
			}
			color, err := scalar(c)
			if err != nil {
				return errcat.Errorf(api.ErrParsing, "add[%d] color: %s", i, err)
			}
			opts = append(opts, api.Options{Color: api.Color(color)})
		}
		switch op {
		case "markup", "expression", "note":
			arg, err := scalar(m[op])
			if err != nil {
				return errcat.Errorf(api.ErrParsing, "add[%d] %s: %s", i, op, err)
			}
			switch op {
			case "markup":
				g.AddMarkup(arg, opts...)
			case "expression":
				g.AddExpression(arg, opts...)
			case "note":
				g.AddNote(arg)
			}
		case "point", "latexPoint":
			x, y, err := pair(m[op])
			if err != nil {
				return errcat.Errorf(api.ErrParsing, "add[%d] %s: %s", i, op, err)
			}
			if op == "point" {
				g.AddPoint(x, y, opts...)
			} else {
				g.AddLatexPoint(x, y, opts...)
			}
		}
	}
	return nil
}

func onlyKeys(m map[string]interface{}, allowed ...string) error {
	var extra []string
	for k := range m {
		found := false
		for _, a := range allowed {
			if k == a {
				found = true
				break
			}
		}
		if !found {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("unknown keys %q", extra)
	}
	return nil
}

// stringValue returns m[k] as a string; absent is "".
func stringValue(m map[string]interface{}, k string) (string, error) {
	v, ok := m[k]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", k)
	}
	return s, nil
}

// scalar accepts strings and bare yaml scalars, since `expression: 2` is
// as reasonable as `expression: "2"`.
func scalar(v interface{}) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("must be a string, not %T", v)
	}
}

func pair(v interface{}) (string, string, error) {
	list, ok := v.([]interface{})
	if !ok || len(list) != 2 {
		return "", "", fmt.Errorf("must be a list of two coordinates")
	}
	x, err := scalar(list[0])
	if err != nil {
		return "", "", err
	}
	y, err := scalar(list[1])
	if err != nil {
		return "", "", err
	}
	return x, y, nil
}
