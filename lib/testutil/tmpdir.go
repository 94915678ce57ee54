package testutil

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/smartystreets/goconvey/convey"
)

/*
	WithTmpdir decorates a goconvey test: the body runs with a fresh,
	empty working directory, which is removed again afterwards.

	See also https://github.com/smartystreets/goconvey/wiki/Decorating-tests-to-provide-common-logic
*/
func WithTmpdir(fn interface{}) func(c convey.C) {
	return func(c convey.C) {
		retreat, err := os.Getwd()
		if err != nil {
			panic(err)
		}
		convey.Reset(func() {
			os.Chdir(retreat)
		})

		tmpdir, err := ioutil.TempDir("", "calcgraph-test-")
		if err != nil {
			panic(err)
		}
		tmpdir, err = filepath.Abs(tmpdir)
		if err != nil {
			panic(err)
		}
		convey.Reset(func() {
			os.RemoveAll(tmpdir)
		})
		if err := os.Chdir(tmpdir); err != nil {
			panic(err)
		}

		switch fn := fn.(type) {
		case func():
			fn()
		case func(c convey.C):
			fn(c)
		}
	}
}

// WriteFile writes `body` to `name` under the current directory, panicking on failure.
func WriteFile(name, body string) string {
	if err := ioutil.WriteFile(name, []byte(body), 0644); err != nil {
		panic(err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		panic(err)
	}
	return abs
}
