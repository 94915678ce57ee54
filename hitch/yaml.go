package hitch

import (
	"io"
	"io/ioutil"

	"github.com/go-yaml/yaml"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/lib/cereal"
	"go.polydawn.net/calcgraph/lib/errcat"
)

/*
	Decodes a yaml/json stream into generic maps and slices with string
	keys, ready for `buildGraph` to walk.

	May error with:

	  - `api.ErrIO` for any errors in consuming `input`.
	  - `api.ErrParsing` for any errors in parsing the raw input.
*/
func decodeYaml(input io.Reader) (map[string]interface{}, error) {
	byts, err := ioutil.ReadAll(input)
	if err != nil {
		return nil, errcat.Errorf(api.ErrIO, "cannot read graph document: %s", err)
	}

	// Turn tabs into spaces so that tabs are acceptable inputs.
	byts = cereal.Tab2space(byts)

	var raw interface{}
	if err := yaml.Unmarshal(byts, &raw); err != nil {
		return nil, errcat.Errorf(api.ErrParsing, "cannot parse graph document: %s", err)
	}
	switch doc := cereal.StringifyMapKeys(raw).(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return doc, nil
	default:
		return nil, errcat.Errorf(api.ErrParsing, "graph document must be a map, not %T", doc)
	}
}
