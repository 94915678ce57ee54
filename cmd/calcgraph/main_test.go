package main

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/config"
	"go.polydawn.net/calcgraph/lib/errcat"
	"go.polydawn.net/calcgraph/lib/testutil"
)

// Returns the behavior from an invocation of Main.
func determineBehavior(args ...string) behavior {
	stdin := &bytes.Buffer{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return Main(context.Background(), args, stdin, stdout, stderr)
}

type invocation struct {
	stdin          *bytes.Buffer
	stdout, stderr *bytes.Buffer
	err            error
}

func invoke(stdin string, args ...string) invocation {
	inv := invocation{bytes.NewBufferString(stdin), &bytes.Buffer{}, &bytes.Buffer{}, nil}
	inv.err = Main(context.Background(), args, inv.stdin, inv.stdout, inv.stderr).action()
	return inv
}

const exampleDoc = "add:\n  - markup: \"y=x\"\n  - note: hello\n"

const exampleList = `"list":[{"type":"expression","id":1,"latex":"y=x","color":"#c74440"},{"type":"text","id":2,"text":"hello"}]}}`

func TestCLIParse(t *testing.T) {
	Convey("Argument parsing", t, func() {
		Convey("unknown commands are usage errors", func() {
			bhv := determineBehavior("calcgraph", "wow")
			So(bhv.parsedArgs, ShouldImplement, (*error)(nil))
			So(bhv.action(), errcat.ShouldErrorWith, api.ErrUsage)
		})
		Convey("missing arguments are usage errors", func() {
			bhv := determineBehavior("calcgraph", "save")
			So(bhv.action(), errcat.ShouldErrorWith, api.ErrUsage)
		})
		Convey("bad formats are usage errors", func() {
			bhv := determineBehavior("calcgraph", "--format=xml", "tex", "x")
			So(bhv.action(), errcat.ShouldErrorWith, api.ErrUsage)
		})
		Convey("document commands capture their path", func() {
			for _, cmd := range []string{"state", "payload", "save"} {
				bhv := determineBehavior("calcgraph", cmd, "graph.yaml")
				So(bhv.parsedArgs, ShouldResemble, &struct{ DocPath string }{"graph.yaml"})
			}
		})
		Convey("a bare dash is a document path, not a flag", func() {
			for _, cmd := range []string{"state", "payload", "save"} {
				bhv := determineBehavior("calcgraph", cmd, "-")
				So(bhv.parsedArgs, ShouldResemble, &struct{ DocPath string }{"-"})
			}
			bhv := determineBehavior("calcgraph", "--format=json", "state", "--", "-")
			So(bhv.parsedArgs, ShouldResemble, &struct{ DocPath string }{"-"})
		})
		Convey("tex captures its source", func() {
			bhv := determineBehavior("calcgraph", "tex", "x^2")
			So(bhv.parsedArgs, ShouldResemble, &struct{ Source string }{"x^2"})
		})
	})
}

func TestCLICommands(t *testing.T) {
	Convey("Running commands", t, testutil.WithTmpdir(func() {
		for _, k := range []string{config.EnvEndpoint, config.EnvCalculatorBase, config.EnvTimeout, config.EnvLogLevel} {
			k := k
			v, had := os.LookupEnv(k)
			os.Unsetenv(k)
			Reset(func() {
				os.Unsetenv(k)
				if had {
					os.Setenv(k, v)
				}
			})
		}
		testutil.WriteFile("graph.yaml", exampleDoc)

		Convey("tex prints markup", func() {
			inv := invoke("", "calcgraph", "tex", "1/2")
			So(inv.err, ShouldBeNil)
			So(inv.stdout.String(), ShouldEqual, "\\frac{1}{2}\n")
		})
		Convey("tex reports bad source as input trouble", func() {
			inv := invoke("", "calcgraph", "tex", "(x")
			So(inv.err, errcat.ShouldErrorWith, api.ErrTexify)
			So(api.ExitCodeForError(inv.err), ShouldEqual, api.ExitInput)
		})
		Convey("state prints the calculator state", func() {
			inv := invoke("", "calcgraph", "state", "graph.yaml")
			So(inv.err, ShouldBeNil)
			So(inv.stdout.String(), ShouldEndWith, exampleList+"\n")
		})
		Convey("state reads stdin for '-'", func() {
			inv := invoke(exampleDoc, "calcgraph", "state", "-")
			So(inv.err, ShouldBeNil)
			So(inv.stdout.String(), ShouldEndWith, exampleList+"\n")
		})
		Convey("payload reads stdin for '-'", func() {
			inv := invoke(exampleDoc, "calcgraph", "payload", "-")
			So(inv.err, ShouldBeNil)
			vals, err := url.ParseQuery(strings.TrimSpace(inv.stdout.String()))
			So(err, ShouldBeNil)
			So(vals.Get("calc_state"), ShouldEndWith, exampleList)
		})
		Convey("state in json format wraps the state", func() {
			inv := invoke("", "calcgraph", "--format=json", "state", "graph.yaml")
			So(inv.err, ShouldBeNil)
			So(inv.stdout.String(), ShouldStartWith, `{"state":"{\"version\":10`)
		})
		Convey("state on a missing file is input trouble", func() {
			inv := invoke("", "calcgraph", "state", "nope.yaml")
			So(inv.err, errcat.ShouldErrorWith, api.ErrIO)
		})
		Convey("payload prints a form body carrying the state", func() {
			inv := invoke("", "calcgraph", "payload", "graph.yaml")
			So(inv.err, ShouldBeNil)
			vals, err := url.ParseQuery(strings.TrimSpace(inv.stdout.String()))
			So(err, ShouldBeNil)
			So(vals.Get("calc_state"), ShouldEndWith, exampleList)
			So(vals.Get("product"), ShouldEqual, "graphing")
		})
		Convey("a bad log level is a usage error", func() {
			os.Setenv(config.EnvLogLevel, "chatty")
			inv := invoke("", "calcgraph", "state", "graph.yaml")
			So(inv.err, errcat.ShouldErrorWith, api.ErrUsage)
		})
		Convey("save posts to the configured endpoint", func() {
			var mu sync.Mutex
			var gotBody string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				r.ParseForm()
				mu.Lock()
				gotBody = r.PostForm.Get("calc_state")
				mu.Unlock()
				w.Write([]byte(`{"hash":"abcdefghij","access":"link"}`))
			}))
			defer srv.Close()
			os.Setenv(config.EnvEndpoint, srv.URL)
			os.Setenv(config.EnvCalculatorBase, "https://calc.example/calculator")

			Convey("and prints the public url", func() {
				inv := invoke("", "calcgraph", "save", "graph.yaml")
				So(inv.err, ShouldBeNil)
				So(inv.stdout.String(), ShouldEqual, "https://calc.example/calculator/abcdefghij\n")
				So(inv.stderr.String(), ShouldContainSubstring, "abcdefghij")
				mu.Lock()
				defer mu.Unlock()
				So(gotBody, ShouldEndWith, exampleList)
			})
			Convey("and in json format prints the receipt", func() {
				inv := invoke("", "calcgraph", "--format=json", "save", "graph.yaml")
				So(inv.err, ShouldBeNil)
				So(inv.stdout.String(), ShouldEqual, `{"location":"https://calc.example/calculator/abcdefghij","receipt":{"hash":"abcdefghij","access":"link"}}`+"\n")
			})
		})
		Convey("save against a failing service is a service error", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(503)
			}))
			defer srv.Close()
			os.Setenv(config.EnvEndpoint, srv.URL)
			inv := invoke("", "calcgraph", "save", "graph.yaml")
			So(inv.err, errcat.ShouldErrorWith, api.ErrSaveProtocol)
			So(api.ExitCodeForError(inv.err), ShouldEqual, api.ExitService)
			So(inv.stdout.String(), ShouldEqual, "")
		})
		Convey("version prints something", func() {
			inv := invoke("", "calcgraph", "version")
			So(inv.err, ShouldBeNil)
			So(inv.stdout.String(), ShouldStartWith, "calcgraph commit ")
		})
	}))
}

func TestBugReport(t *testing.T) {
	Convey("Uncategorized errors get a bug report", t, func() {
		var stderr bytes.Buffer
		reportBug(&stderr, errcat.ErrorDetailed("mystery", map[string]string{"where": "here"}, "it broke"))
		So(stderr.String(), ShouldContainSubstring, "Please file an issue")
		So(stderr.String(), ShouldContainSubstring, "it broke")

		path, err := saveErrorReport(errcat.ErrorDetailed("mystery", map[string]string{"where": "here"}, "it broke"), time.Unix(0, 0))
		So(err, ShouldBeNil)
		defer os.Remove(path)
		body, err := ioutil.ReadFile(path)
		So(err, ShouldBeNil)
		So(string(body), ShouldContainSubstring, "it broke")
		So(string(body), ShouldContainSubstring, "where: here")
		So(api.ExitCodeForError(errcat.Errorf("mystery", "x")), ShouldEqual, api.ExitInternal)
	})
}
