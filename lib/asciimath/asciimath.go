/*
	asciimath converts the casual calculator notation people type
	("x^2 + 1/2", "sqrt(x)", "sin(2pi t)") into the LaTeX flavor the
	graphing calculator reads ("x^{2}+\frac{1}{2}", "\sqrt{x}",
	"\sin\left(2\pi t\right)").

	It covers the useful core of AsciiMath: numbers, single-letter
	variables with implicit products, greek letters, the usual functions,
	`+ - * /`, `^` and `_` scripts, relations, and grouping brackets.
	Like AsciiMath, brackets around the operands of a fraction or a script
	are dropped in the output, since the braces already group them.

	Unbalanced brackets and dangling operators are reported as errors of
	category `api.ErrTexify`; anything else is passed through and left for
	the calculator to judge.
*/
package asciimath

import (
	"strings"

	"go.polydawn.net/calcgraph/api"
	"go.polydawn.net/calcgraph/lib/errcat"
)

var _ api.Texifier = Texify

func Texify(src string) (string, error) {
	toks, err := lex(src)
	if err != nil {
		return "", err
	}
	p := &parser{toks: toks}
	out, err := p.parseSeq(false)
	if err != nil {
		return "", err
	}
	return out, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	p.pos++
	return tok
}

// An element is one parsed operand.  Groups remember their contents
// so fraction and script operands can shed the brackets.
type element struct {
	tex   string
	inner string
	group bool
}

func (e element) stripped() string {
	if e.group {
		return e.inner
	}
	return e.tex
}

// parseSeq reads elements until the input ends, or, inside a group,
// until the closing bracket (which is left for the caller).
func (p *parser) parseSeq(inGroup bool) (string, error) {
	var b texBuilder
	for {
		tok, ok := p.peek()
		if !ok {
			if inGroup {
				return "", errcat.Errorf(api.ErrTexify, "asciimath: unclosed bracket in expression")
			}
			return b.String(), nil
		}
		if tok.kind == tokClose {
			if !inGroup {
				return "", errcat.Errorf(api.ErrTexify, "asciimath: unmatched closing %q at offset %d", tok.text, tok.offset)
			}
			return b.String(), nil
		}
		frag, err := p.parseFrac()
		if err != nil {
			return "", err
		}
		b.add(frag)
	}
}

func (p *parser) parseFrac() (string, error) {
	num, err := p.parseScripted()
	if err != nil {
		return "", err
	}
	tok, ok := p.peek()
	if !ok || tok.kind != tokSlash {
		return num.tex, nil
	}
	for ok && tok.kind == tokSlash {
		p.next()
		den, err := p.parseScripted()
		if err != nil {
			return "", err
		}
		num = element{tex: `\frac{` + num.stripped() + `}{` + den.stripped() + `}`}
		tok, ok = p.peek()
	}
	return num.tex, nil
}

func (p *parser) parseScripted() (element, error) {
	base, err := p.parseSimple()
	if err != nil {
		return element{}, err
	}
	out := base
	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != tokSub && tok.kind != tokSup) {
			break
		}
		p.next()
		script, err := p.parseSimple()
		if err != nil {
			return element{}, err
		}
		out = element{tex: out.tex + tok.text + "{" + script.stripped() + "}"}
	}
	return out, nil
}

func (p *parser) parseSimple() (element, error) {
	tok, ok := p.peek()
	if !ok {
		return element{}, errcat.Errorf(api.ErrTexify, "asciimath: expression ends where an operand was expected")
	}
	switch tok.kind {
	case tokClose, tokSlash, tokSub, tokSup:
		return element{}, errcat.Errorf(api.ErrTexify, "asciimath: unexpected %q at offset %d", tok.text, tok.offset)
	case tokOpen:
		p.next()
		inner, err := p.parseSeq(true)
		if err != nil {
			return element{}, err
		}
		closer := p.next()
		return element{
			tex:   `\left` + tok.tex + inner + `\right` + closer.tex,
			inner: inner,
			group: true,
		}, nil
	case tokFunc:
		p.next()
		arg, err := p.parseOperand(tok)
		if err != nil {
			return element{}, err
		}
		if arg.group {
			return element{tex: tok.tex + arg.tex}, nil
		}
		return element{tex: tok.tex + `\left(` + arg.tex + `\right)`}, nil
	case tokUnary:
		p.next()
		arg, err := p.parseOperand(tok)
		if err != nil {
			return element{}, err
		}
		return element{tex: strings.Replace(tok.tex, "%s", arg.stripped(), 1)}, nil
	case tokOp:
		p.next()
		// A minus directly before a number is a negative literal, so that "x^-1" scripts the whole "-1".
		if tok.text == "-" {
			if nxt, ok := p.peek(); ok && nxt.kind == tokNumber {
				p.next()
				return element{tex: "-" + nxt.tex}, nil
			}
		}
		return element{tex: tok.tex}, nil
	default:
		p.next()
		return element{tex: tok.tex}, nil
	}
}

func (p *parser) parseOperand(fn token) (element, error) {
	if _, ok := p.peek(); !ok {
		return element{}, errcat.Errorf(api.ErrTexify, "asciimath: %q at offset %d needs an argument", fn.text, fn.offset)
	}
	return p.parseScripted()
}

/*
	texBuilder concatenates fragments, adding a space only where LaTeX
	needs one: after a control word like `\pi` when the next fragment
	starts with a letter.
*/
type texBuilder struct {
	strings.Builder
}

func (b *texBuilder) add(frag string) {
	if frag == "" {
		return
	}
	if endsWithControlWord(b.String()) && isLetter(frag[0]) {
		b.WriteByte(' ')
	}
	b.WriteString(frag)
}

func endsWithControlWord(s string) bool {
	i := len(s)
	for i > 0 && isLetter(s[i-1]) {
		i--
	}
	return i < len(s) && i > 0 && s[i-1] == '\\'
}
