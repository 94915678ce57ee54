package asciimath

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/lib/errcat"
)

func TestTexify(t *testing.T) {
	Convey("Texify converts source notation to calculator markup", t, func() {
		for _, tr := range []struct {
			src, tex string
		}{
			{"", ""},
			{"y=x", "y=x"},
			{"x^2", "x^{2}"},
			{"3x^2+2x-1", "3x^{2}+2x-1"},
			{"x_1^2", "x_{1}^{2}"},
			{"x^-1", "x^{-1}"},
			{"e^(-x^2)", "e^{-x^{2}}"},
			{"1/2", `\frac{1}{2}`},
			{"1/2/3", `\frac{\frac{1}{2}}{3}`},
			{"(x+1)/(x-1)", `\frac{x+1}{x-1}`},
			{"pi/2", `\frac{\pi}{2}`},
			{"2pi r", `2\pi r`},
			{"a*b", `a\cdot b`},
			{"x<=3", `x\le3`},
			{"y != 0", `y\ne0`},
			{"sqrt(x)", `\sqrt{x}`},
			{"sqrt x^2", `\sqrt{x^{2}}`},
			{"abs(x-2)", `\left|x-2\right|`},
			{"sin(x)", `\sin\left(x\right)`},
			{"sin x", `\sin\left(x\right)`},
			{"floor(x)", `\operatorname{floor}\left(x\right)`},
			{"[1,2]", `\left[1,2\right]`},
			{"theta", `\theta`},
			{"oo", `\infty`},
			{`\pi x`, `\pi x`},
			{"0.5x", "0.5x"},
		} {
			Convey("for "+tr.src, func() {
				tex, err := Texify(tr.src)
				So(err, ShouldBeNil)
				So(tex, ShouldEqual, tr.tex)
			})
		}
	})
	Convey("Texify rejects malformed input", t, func() {
		for _, src := range []string{
			"(x",
			"x)",
			"x^",
			"2/",
			"sqrt",
			"x @ y",
		} {
			Convey("for "+src, func() {
				_, err := Texify(src)
				So(err, errcat.ShouldErrorWith, api.ErrTexify)
			})
		}
	})
}
