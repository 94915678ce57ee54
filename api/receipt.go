package api

import (
	"strings"

	"github.com/polydawn/refmt/obj/atlas"
)

/*
	SaveReceipt is what the calculator service hands back for a saved graph.

	Only Hash is required; it's the handle the public URL is built from.
	The rest is passed along for callers who want it.
*/
type SaveReceipt struct {
	Hash     string
	ThumbURL string
	StateURL string
	Access   string
	Created  string
}

var SaveReceipt_AtlasEntry = atlas.BuildEntry(SaveReceipt{}).StructMap().
	AddField("Hash", atlas.StructMapEntry{SerialName: "hash"}).
	AddField("ThumbURL", atlas.StructMapEntry{SerialName: "thumbUrl", OmitEmpty: true}).
	AddField("StateURL", atlas.StructMapEntry{SerialName: "stateUrl", OmitEmpty: true}).
	AddField("Access", atlas.StructMapEntry{SerialName: "access", OmitEmpty: true}).
	AddField("Created", atlas.StructMapEntry{SerialName: "created", OmitEmpty: true}).
	Complete()

// CalculatorURL joins the public calculator base and a saved graph's hash.
func CalculatorURL(base, hash string) string {
	return strings.TrimSuffix(base, "/") + "/" + hash
}
