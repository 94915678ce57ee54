package testutil

import (
	"io"

	"github.com/inconshreveable/log15"
	"github.com/smartystreets/goconvey/convey"
)

/*
	TestLogger returns a log15 logger whose lines land in the goconvey
	report for the current scope, so a failing test shows what the code
	under test was saying at the time.
*/
func TestLogger(c convey.C) log15.Logger {
	log := log15.New()
	log.SetHandler(log15.StreamHandler(Writer{c}, log15.LogfmtFormat()))
	return log
}

var _ io.Writer = Writer{}

// Writer wraps a goconvey context as an `io.Writer`.
type Writer struct {
	Convey convey.C
}

func (lw Writer) Write(msg []byte) (int, error) {
	return lw.Convey.Print(string(msg))
}
