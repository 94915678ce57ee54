package api

import (
	"github.com/polydawn/refmt/obj/atlas"
)

// Atlas maps every serializable calcgraph type onto its wire form.
var Atlas = atlas.MustBuild(
	CalcState_AtlasEntry,
	GraphSettings_AtlasEntry,
	Viewport_AtlasEntry,
	ExpressionList_AtlasEntry,
	wireExpression_AtlasEntry,
	wireNote_AtlasEntry,
	SaveReceipt_AtlasEntry,
)
