// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expr

import (
	"fmt"
	"strings"
)

func (e num) LaTeX() string {
	re, im := real(e.v), imag(e.v)
	if im == 0 {
		return formatFloat(re)
	}
	imPart := ""
	switch im {
	case 1:
		imPart = "i"
	case -1:
		imPart = "-i"
	default:
		imPart = formatFloat(im) + " i"
	}
	if re == 0 {
		return imPart
	}
	if im < 0 {
		return formatFloat(re) + " - " + strings.TrimPrefix(imPart, "-")
	}
	return formatFloat(re) + " + " + imPart
}

func (e konst) LaTeX() string { return e.tex }
func (e sym) LaTeX() string   { return e.name }

func (e add) LaTeX() string {
	var b strings.Builder
	for i, t := range e.terms {
		s, negated := stripNeg(t)
		if i == 0 {
			if negated {
				b.WriteString("-")
			}
		} else if negated {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}
		b.WriteString(texParenIf(s, precedence(s) < precAdd || isAdd(s)))
	}
	return b.String()
}

func (e mul) LaTeX() string {
	var b strings.Builder
	for i, f := range e.factors {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(texParenIf(f, precedence(f) < precMul))
	}
	return b.String()
}

func (e div) LaTeX() string {
	return `\frac{` + e.a.LaTeX() + `}{` + e.b.LaTeX() + `}`
}

func (e neg) LaTeX() string {
	return "-" + texParenIf(e.x, precedence(e.x) < precNeg)
}

func (e pow) LaTeX() string {
	return texParenIf(e.b, precedence(e.b) <= precPow) + "^{" + e.e.LaTeX() + "}"
}

func (e cal) LaTeX() string {
	x := e.args[0].LaTeX()
	switch e.fn {
	case fnSqrt:
		return `\sqrt{` + x + `}`
	case fnAbs:
		return `\left|` + x + `\right|`
	case fnExp:
		return `e^{` + x + `}`
	case fnConj:
		return `\overline{` + x + `}`
	case fnFloor:
		return `\lfloor ` + x + ` \rfloor`
	case fnCeil:
		return `\lceil ` + x + ` \rceil`
	case fnRe:
		return `\Re\left(` + x + `\right)`
	case fnIm:
		return `\Im\left(` + x + `\right)`
	case fnArg:
		return `\arg\left(` + x + `\right)`
	case fnAtan2:
		return `\operatorname{atan_{2}}\left(` + x + `, ` + e.args[1].LaTeX() + `\right)`
	case fnAsin:
		return `\arcsin\left(` + x + `\right)`
	case fnAcos:
		return `\arccos\left(` + x + `\right)`
	case fnAtan:
		return `\arctan\left(` + x + `\right)`
	case fnFrac, fnSign:
		return `\operatorname{` + fnNames[e.fn] + `}\left(` + x + `\right)`
	}
	return `\` + fnNames[e.fn] + `\left(` + x + `\right)`
}

func (e sum) LaTeX() string {
	return fmt.Sprintf(`\sum_{%s=%s}^{%s} %s`, e.v, e.lo.LaTeX(), e.hi.LaTeX(),
		texParenIf(e.body, precedence(e.body) < precMul))
}

func (e rel) LaTeX() string {
	return e.a.LaTeX() + " " + relLaTeX[e.op] + " " + e.b.LaTeX()
}

func (e logic) LaTeX() string {
	sep := ` \wedge `
	if e.op == OpOr {
		sep = ` \vee `
	}
	parts := make([]string, len(e.xs))
	for i, x := range e.xs {
		parts[i] = x.LaTeX()
	}
	return strings.Join(parts, sep)
}

func (e opaque) LaTeX() string { return "" }

func texParenIf(e Expr, need bool) string {
	if need {
		return `\left(` + e.LaTeX() + `\right)`
	}
	return e.LaTeX()
}
