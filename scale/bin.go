package scale

import (
	"fmt"
	"strings"

	"github.com/cubeidx/cubeindexer/sqlquery"
)

// BinMode is the rounding function used to snap a scaled value to an
// integer pixel bin.
type BinMode string

const (
	Floor BinMode = "floor"
	Ceil  BinMode = "ceil"
	Round BinMode = "round"
)

// sqlFunc maps a (possibly case-mangled, possibly unrecognized) bin mode
// to its SQL rounding function, defaulting to FLOOR per spec §4.5 step 2
// and the boundary behavior named in spec §8.
func sqlFunc(mode BinMode) string {
	switch BinMode(strings.ToLower(string(mode))) {
	case Ceil:
		return "CEIL"
	case Round:
		return "ROUND"
	default:
		return "FLOOR"
	}
}

// BinFn discretizes a value expression into an integer pixel-bin SQL
// expression, for a fixed scale/pixelSize/binMode (spec §4.5 step 5).
type BinFn func(value sqlquery.Expr) sqlquery.Expr

// Synthesize builds the bin function for (descriptor, pixelSize, mode). It
// returns ok=false when the scale is unsupported, per spec §4.5 step 1 —
// the caller (the active-clause analyzer) treats that as "clause not
// indexable."
func Synthesize(d Descriptor, pixelSize int, mode BinMode) (BinFn, bool) {
	t, ok := resolve(d)
	if !ok {
		return nil, false
	}
	if pixelSize <= 0 {
		pixelSize = 1
	}

	lo := domainLo(t)
	hi := domainHi(t)

	factor := 1.0
	if t.Type != Identity {
		denom := hi - lo
		if denom != 0 {
			factor = absRange(t) / denom
		}
	}
	factor = factor / float64(pixelSize)

	fn := sqlFunc(mode)

	return func(value sqlquery.Expr) sqlquery.Expr {
		inner := "(" + t.SQLApply(value.SQL()) + ")"
		if lo != 0 {
			inner = fmt.Sprintf("%s - %s::DOUBLE", inner, trimFloat(lo))
		}
		if factor != 1 {
			if lo != 0 {
				inner = "(" + inner + ")"
			}
			inner = fmt.Sprintf("%s::DOUBLE * %s", trimFloat(factor), inner)
		}
		text := fmt.Sprintf("%s(%s)::INTEGER", fn, inner)
		cols := append([]string(nil), value.Columns()...)
		return sqlquery.Raw{Text: text, Cols: cols}
	}, true
}

func domainLo(t Transform) float64 {
	return t.Apply(minOf(t.Domain))
}

func domainHi(t Transform) float64 {
	return t.Apply(maxOf(t.Domain))
}

func absRange(t Transform) float64 {
	if len(t.Range) < 2 {
		return 1
	}
	d := t.Range[1] - t.Range[0]
	if d < 0 {
		d = -d
	}
	return d
}

func minOf(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// ParseBinMode interprets a user-supplied, case-insensitive bin mode
// string, defaulting to Floor for anything unrecognized.
func ParseBinMode(s string) BinMode {
	switch strings.ToLower(s) {
	case "ceil":
		return Ceil
	case "round":
		return Round
	case "floor":
		return Floor
	default:
		return Floor
	}
}
