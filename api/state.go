package api

import (
	"fmt"

	"github.com/polydawn/refmt"
	"github.com/polydawn/refmt/json"
	"github.com/polydawn/refmt/obj/atlas"
)

/*
	This file is the calculator state schema: the "calc_state" document
	the save endpoint expects.  Key order in the emitted JSON is part of
	the contract with the service, so every struct here is mapped field by
	field in the atlas rather than autogenerated.
*/

const (
	StateVersion    = 10
	StateRandomSeed = "d38b7605c8b828d4d0d0428f3014c6dc"
)

// DefaultViewport is the fixed window every saved graph opens at.
var DefaultViewport = Viewport{
	Xmin: -10,
	Ymin: -13.23682387134957,
	Xmax: 10,
	Ymax: 13.23682387134957,
}

type (
	CalcState struct {
		Version     int
		RandomSeed  string
		Graph       GraphSettings
		Expressions ExpressionList
	}

	GraphSettings struct {
		Viewport Viewport
	}

	Viewport struct {
		Xmin, Ymin, Xmax, Ymax float64
	}

	ExpressionList struct {
		List []interface{} // contains wireExpression and wireNote values only.
	}

	wireExpression struct {
		Type  string
		ID    int
		Latex string
		Color Color
	}

	wireNote struct {
		Type string
		ID   int
		Text string
	}
)

const (
	wireTypeExpression = "expression"
	wireTypeNote       = "text"
)

var (
	CalcState_AtlasEntry = atlas.BuildEntry(CalcState{}).StructMap().
				AddField("Version", atlas.StructMapEntry{SerialName: "version"}).
				AddField("RandomSeed", atlas.StructMapEntry{SerialName: "randomSeed"}).
				AddField("Graph", atlas.StructMapEntry{SerialName: "graph"}).
				AddField("Expressions", atlas.StructMapEntry{SerialName: "expressions"}).
				Complete()
	GraphSettings_AtlasEntry = atlas.BuildEntry(GraphSettings{}).StructMap().
					AddField("Viewport", atlas.StructMapEntry{SerialName: "viewport"}).
					Complete()
	Viewport_AtlasEntry = atlas.BuildEntry(Viewport{}).StructMap().
				AddField("Xmin", atlas.StructMapEntry{SerialName: "xmin"}).
				AddField("Ymin", atlas.StructMapEntry{SerialName: "ymin"}).
				AddField("Xmax", atlas.StructMapEntry{SerialName: "xmax"}).
				AddField("Ymax", atlas.StructMapEntry{SerialName: "ymax"}).
				Complete()
	ExpressionList_AtlasEntry = atlas.BuildEntry(ExpressionList{}).StructMap().
					AddField("List", atlas.StructMapEntry{SerialName: "list"}).
					Complete()
	wireExpression_AtlasEntry = atlas.BuildEntry(wireExpression{}).StructMap().
					AddField("Type", atlas.StructMapEntry{SerialName: "type"}).
					AddField("ID", atlas.StructMapEntry{SerialName: "id"}).
					AddField("Latex", atlas.StructMapEntry{SerialName: "latex"}).
					AddField("Color", atlas.StructMapEntry{SerialName: "color", OmitEmpty: true}).
					Complete()
	wireNote_AtlasEntry = atlas.BuildEntry(wireNote{}).StructMap().
				AddField("Type", atlas.StructMapEntry{SerialName: "type"}).
				AddField("ID", atlas.StructMapEntry{SerialName: "id"}).
				AddField("Text", atlas.StructMapEntry{SerialName: "text"}).
				Complete()
)

/*
	NewCalcState wraps `items` in the fixed state envelope.

	Items are converted to their wire form here; the result does not alias
	the caller's slice.
*/
func NewCalcState(items []Item) CalcState {
	list := make([]interface{}, 0, len(items)) // never nil: an empty graph is `"list":[]`, not null.
	for _, it := range items {
		switch x := it.(type) {
		case Expression:
			list = append(list, wireExpression{wireTypeExpression, x.ID, x.Latex, x.Color})
		case Note:
			list = append(list, wireNote{wireTypeNote, x.ID, x.Text})
		default:
			panic(fmt.Errorf("unreachable: unknown item type %T", it))
		}
	}
	return CalcState{
		Version:     StateVersion,
		RandomSeed:  StateRandomSeed,
		Graph:       GraphSettings{Viewport: DefaultViewport},
		Expressions: ExpressionList{List: list},
	}
}

/*
	EncodeState returns the canonical "calc_state" JSON for `items`.

	It is a pure function: equal item lists produce byte-identical output.
	Nothing is cached; callers that need a fresh fingerprint should
	simply call it again.

	Errors are of category `ErrEncoding`.  With the fixed envelope there is
	no input that produces one.
*/
func EncodeState(items []Item) (string, error) {
	msg, err := refmt.MarshalAtlased(
		json.EncodeOptions{},
		NewCalcState(items),
		Atlas,
	)
	if err != nil {
		return "", errorf(ErrEncoding, "cannot encode calculator state: %s", err)
	}
	return string(msg), nil
}
