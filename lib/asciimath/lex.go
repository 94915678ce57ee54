package asciimath

import (
	"sort"
	"unicode/utf8"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/lib/errcat"
)

type tokenKind uint8

const (
	tokNumber tokenKind = iota
	tokSymbol           // variables, greek letters, constants.
	tokOp               // operators and relations.
	tokFunc             // named functions; argument gets bracketed.
	tokUnary            // sqrt, abs: argument gets substituted into the template.
	tokOpen
	tokClose
	tokSlash
	tokSub
	tokSup
)

type token struct {
	kind   tokenKind
	text   string // as written.
	tex    string // as emitted.
	offset int
}

type word struct {
	kind tokenKind
	tex  string
}

var words = map[string]word{
	"alpha": {tokSymbol, `\alpha`}, "beta": {tokSymbol, `\beta`}, "gamma": {tokSymbol, `\gamma`},
	"delta": {tokSymbol, `\delta`}, "epsilon": {tokSymbol, `\epsilon`}, "zeta": {tokSymbol, `\zeta`},
	"eta": {tokSymbol, `\eta`}, "theta": {tokSymbol, `\theta`}, "iota": {tokSymbol, `\iota`},
	"kappa": {tokSymbol, `\kappa`}, "lambda": {tokSymbol, `\lambda`}, "mu": {tokSymbol, `\mu`},
	"nu": {tokSymbol, `\nu`}, "xi": {tokSymbol, `\xi`}, "pi": {tokSymbol, `\pi`},
	"rho": {tokSymbol, `\rho`}, "sigma": {tokSymbol, `\sigma`}, "tau": {tokSymbol, `\tau`},
	"upsilon": {tokSymbol, `\upsilon`}, "phi": {tokSymbol, `\phi`}, "chi": {tokSymbol, `\chi`},
	"psi": {tokSymbol, `\psi`}, "omega": {tokSymbol, `\omega`},
	"Gamma": {tokSymbol, `\Gamma`}, "Delta": {tokSymbol, `\Delta`}, "Theta": {tokSymbol, `\Theta`},
	"Lambda": {tokSymbol, `\Lambda`}, "Xi": {tokSymbol, `\Xi`}, "Pi": {tokSymbol, `\Pi`},
	"Sigma": {tokSymbol, `\Sigma`}, "Phi": {tokSymbol, `\Phi`}, "Psi": {tokSymbol, `\Psi`},
	"Omega": {tokSymbol, `\Omega`},
	"oo": {tokSymbol, `\infty`},
	"xx": {tokOp, `\times`},

	"sin": {tokFunc, `\sin`}, "cos": {tokFunc, `\cos`}, "tan": {tokFunc, `\tan`},
	"sec": {tokFunc, `\sec`}, "csc": {tokFunc, `\csc`}, "cot": {tokFunc, `\cot`},
	"sinh": {tokFunc, `\sinh`}, "cosh": {tokFunc, `\cosh`}, "tanh": {tokFunc, `\tanh`},
	"arcsin": {tokFunc, `\arcsin`}, "arccos": {tokFunc, `\arccos`}, "arctan": {tokFunc, `\arctan`},
	"ln": {tokFunc, `\ln`}, "log": {tokFunc, `\log`}, "exp": {tokFunc, `\exp`},
	"min": {tokFunc, `\min`}, "max": {tokFunc, `\max`},
	"floor": {tokFunc, `\operatorname{floor}`}, "ceil": {tokFunc, `\operatorname{ceil}`},

	"sqrt": {tokUnary, `\sqrt{%s}`},
	"abs":  {tokUnary, `\left|%s\right|`},
}

// wordsByLength lists the keys of `words`, longest first, so lexing is greedy.
var wordsByLength = func() []string {
	ks := make([]string, 0, len(words))
	for k := range words {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool {
		if len(ks[i]) != len(ks[j]) {
			return len(ks[i]) > len(ks[j])
		}
		return ks[i] < ks[j]
	})
	return ks
}()

// Multi-character operators, checked before single characters.
var ops2 = map[string]string{
	"<=": `\le`,
	">=": `\ge`,
	"!=": `\ne`,
	"->": `\to`,
}

var ops1 = map[byte]string{
	'+': "+", '-': "-", '*': `\cdot`, '=': "=", '<': "<", '>': ">",
	',': ",", '!': "!", '|': "|", ':': ":", '\'': "'",
}

var brackets = map[byte]token{
	'(': {kind: tokOpen, tex: "("},
	'[': {kind: tokOpen, tex: "["},
	'{': {kind: tokOpen, tex: `\{`},
	')': {kind: tokClose, tex: ")"},
	']': {kind: tokClose, tex: "]"},
	'}': {kind: tokClose, tex: `\}`},
}

func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			j := i
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			if j < len(src) && src[j] == '.' {
				j++
				for j < len(src) && isDigit(src[j]) {
					j++
				}
			}
			toks = append(toks, token{tokNumber, src[i:j], src[i:j], i})
			i = j
		case isLetter(c):
			toks = append(toks, lexWord(src, i))
			i += len(toks[len(toks)-1].text)
		case c == '\\' && i+1 < len(src) && isLetter(src[i+1]):
			// Already markup; pass control words through.
			j := i + 1
			for j < len(src) && isLetter(src[j]) {
				j++
			}
			toks = append(toks, token{tokSymbol, src[i:j], src[i:j], i})
			i = j
		case c >= utf8.RuneSelf:
			_, size := utf8.DecodeRuneInString(src[i:])
			toks = append(toks, token{tokSymbol, src[i : i+size], src[i : i+size], i})
			i += size
		case c == '/':
			toks = append(toks, token{tokSlash, "/", "/", i})
			i++
		case c == '_':
			toks = append(toks, token{tokSub, "_", "_", i})
			i++
		case c == '^':
			toks = append(toks, token{tokSup, "^", "^", i})
			i++
		default:
			if i+1 < len(src) {
				if tex, ok := ops2[src[i:i+2]]; ok {
					toks = append(toks, token{tokOp, src[i : i+2], tex, i})
					i += 2
					continue
				}
			}
			if tex, ok := ops1[c]; ok {
				toks = append(toks, token{tokOp, string(c), tex, i})
				i++
				continue
			}
			if br, ok := brackets[c]; ok {
				br.text = string(c)
				br.offset = i
				toks = append(toks, br)
				i++
				continue
			}
			return nil, errcat.Errorf(api.ErrTexify, "asciimath: unsupported character %q at offset %d", c, i)
		}
	}
	return toks, nil
}

// lexWord takes the longest known word starting at i, or else a single letter.
func lexWord(src string, i int) token {
	rest := src[i:]
	for _, k := range wordsByLength {
		if len(k) <= len(rest) && rest[:len(k)] == k {
			w := words[k]
			return token{w.kind, k, w.tex, i}
		}
	}
	return token{tokSymbol, rest[:1], rest[:1], i}
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
