package api

import (
	"net/url"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"go.polydawn.net/calcgraph/lib/errcat"
)

func TestSavePayload(t *testing.T) {
	Convey("Save payloads", t, func() {
		Convey("carry the placeholder thumbnail as a png data url", func() {
			So(ThumbData, ShouldStartWith, "data:image/png;base64,iVBORw0KGgo")
		})
		Convey("list exactly the expected fields, in order", func() {
			body := SavePayload(`{"a":"\left(1,2\right)"} x&y`, "abc123")
			pairs := strings.Split(body, "&")
			So(pairs, ShouldHaveLength, 7)
			keys := make([]string, len(pairs))
			for i, p := range pairs {
				keys[i] = strings.SplitN(p, "=", 2)[0]
			}
			So(keys, ShouldResemble, []string{
				"thumb_data", "my_graphs", "is_update", "calc_state", "lang", "product", "graph_hash",
			})
			So(pairs[3], ShouldEqual, "calc_state=%7B%22a%22%3A%22%5Cleft%281%2C2%5Cright%29%22%7D+x%26y")
		})
		Convey("escape every reserved character, including ( ) ! ' *", func() {
			body := SavePayload(`f(x)!='*'`, "h")
			So(strings.Split(body, "&")[3], ShouldEqual, "calc_state=f%28x%29%21%3D%27%2A%27")
			vals, err := url.ParseQuery(body)
			So(err, ShouldBeNil)
			So(vals.Get("calc_state"), ShouldEqual, `f(x)!='*'`)
		})
		Convey("decode back to the fixed values", func() {
			body := SavePayload("{}", "abc123")
			vals, err := url.ParseQuery(body)
			So(err, ShouldBeNil)
			So(vals.Get("thumb_data"), ShouldEqual, ThumbData)
			So(vals.Get("my_graphs"), ShouldEqual, "false")
			So(vals.Get("is_update"), ShouldEqual, "false")
			So(vals.Get("calc_state"), ShouldEqual, "{}")
			So(vals.Get("lang"), ShouldEqual, "en")
			So(vals.Get("product"), ShouldEqual, "graphing")
			So(vals.Get("graph_hash"), ShouldEqual, "abc123")
		})
		Convey("built from items embed the state and its hash", func() {
			at := time.Unix(1700000000, 0)
			items := []Item{Expression{ID: 1, Latex: "y=x", Color: "#c74440"}}
			body, err := BuildSavePayload(items, at)
			So(err, ShouldBeNil)
			vals, err := url.ParseQuery(body)
			So(err, ShouldBeNil)
			state, _ := EncodeState(items)
			So(vals.Get("calc_state"), ShouldEqual, state)
			So(vals.Get("graph_hash"), ShouldEqual, GraphHash(state, at))
		})
	})
}

func TestExitCodes(t *testing.T) {
	Convey("Exit codes follow error categories", t, func() {
		So(ExitCodeForError(nil), ShouldEqual, ExitSuccess)
		So(ExitCodeForError(errcat.Errorf(ErrUsage, "x")), ShouldEqual, ExitUsage)
		So(ExitCodeForError(errcat.Errorf(ErrParsing, "x")), ShouldEqual, ExitInput)
		So(ExitCodeForError(errcat.Errorf(ErrSaveProtocol, "x")), ShouldEqual, ExitService)
		So(ExitCodeForError(errcat.Errorf("mystery", "x")), ShouldEqual, ExitInternal)
	})
	Convey("CalculatorURL joins without doubling slashes", t, func() {
		So(CalculatorURL("https://www.desmos.com/calculator", "abc"), ShouldEqual, "https://www.desmos.com/calculator/abc")
		So(CalculatorURL("https://www.desmos.com/calculator/", "abc"), ShouldEqual, "https://www.desmos.com/calculator/abc")
	})
}
