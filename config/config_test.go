package config

import (
	"os"
	"testing"
	"time"

	"github.com/inconshreveable/log15"
	. "github.com/smartystreets/goconvey/convey"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/lib/errcat"
	"go.polydawn.net/calcgraph/lib/testutil"
	"go.polydawn.net/calcgraph/save"
)

// withEnv runs each leaf with the calcgraph variables cleared and restored after.
func withEnv(fn func(c C)) func(c C) {
	return func(c C) {
		saved := map[string]string{}
		for _, k := range []string{EnvEndpoint, EnvCalculatorBase, EnvTimeout, EnvLogLevel} {
			if v, ok := os.LookupEnv(k); ok {
				saved[k] = v
			}
			os.Unsetenv(k)
		}
		Reset(func() {
			for _, k := range []string{EnvEndpoint, EnvCalculatorBase, EnvTimeout, EnvLogLevel} {
				os.Unsetenv(k)
				if v, ok := saved[k]; ok {
					os.Setenv(k, v)
				}
			}
		})
		fn(c)
	}
}

func TestConfig(t *testing.T) {
	Convey("Reading configuration from the environment", t, withEnv(func(c C) {
		Convey("an empty environment gives the defaults", func() {
			So(GetEndpoint(), ShouldEqual, save.DefaultEndpoint)
			So(GetCalculatorBase(), ShouldEqual, save.DefaultCalculatorBase)
			d, err := GetTimeout()
			So(err, ShouldBeNil)
			So(d, ShouldEqual, DefaultTimeout)
			lvl, err := GetLogLevel()
			So(err, ShouldBeNil)
			So(lvl, ShouldEqual, log15.LvlInfo)
		})
		Convey("set variables override the defaults", func() {
			os.Setenv(EnvEndpoint, "http://localhost:9/save")
			os.Setenv(EnvCalculatorBase, "http://localhost:9/calculator")
			os.Setenv(EnvTimeout, "1m30s")
			os.Setenv(EnvLogLevel, "DEBUG")
			So(GetEndpoint(), ShouldEqual, "http://localhost:9/save")
			So(GetCalculatorBase(), ShouldEqual, "http://localhost:9/calculator")
			d, err := GetTimeout()
			So(err, ShouldBeNil)
			So(d, ShouldEqual, 90*time.Second)
			lvl, err := GetLogLevel()
			So(err, ShouldBeNil)
			So(lvl, ShouldEqual, log15.LvlDebug)
		})
		Convey("bad values are usage errors", func() {
			os.Setenv(EnvTimeout, "soon")
			_, err := GetTimeout()
			So(err, errcat.ShouldErrorWith, api.ErrUsage)

			os.Setenv(EnvTimeout, "-1s")
			_, err = GetTimeout()
			So(err, errcat.ShouldErrorWith, api.ErrUsage)

			os.Setenv(EnvLogLevel, "chatty")
			_, err = GetLogLevel()
			So(err, errcat.ShouldErrorWith, api.ErrUsage)
		})
	}))
}

func TestLoadDotenv(t *testing.T) {
	Convey("Loading .env files", t, withEnv(testutil.WithTmpdir(func() {
		Convey("a missing file is fine", func() {
			So(LoadDotenv(), ShouldBeNil)
			So(GetEndpoint(), ShouldEqual, save.DefaultEndpoint)
		})
		Convey("variables come in from the file", func() {
			testutil.WriteFile(".env", "CALCGRAPH_ENDPOINT=http://dotenv.example/save\n")
			So(LoadDotenv(), ShouldBeNil)
			So(GetEndpoint(), ShouldEqual, "http://dotenv.example/save")
		})
		Convey("the real environment wins over the file", func() {
			os.Setenv(EnvEndpoint, "http://real.example/save")
			path := testutil.WriteFile("other.env", "CALCGRAPH_ENDPOINT=http://dotenv.example/save\n")
			So(LoadDotenv(path), ShouldBeNil)
			So(GetEndpoint(), ShouldEqual, "http://real.example/save")
		})
	})))
}
