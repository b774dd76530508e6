// Package scale implements visual-scale transforms and the bin-function
// synthesizer (spec §4.5, component A): turning a scale + pixel size +
// rounding mode into a SQL expression that discretizes a domain value into
// an integer pixel-bin.
package scale

import (
	"math"
	"strconv"
	"strings"
)

// Type is the supported family of visual scale transform.
type Type string

const (
	Identity Type = "identity"
	Linear   Type = "linear"
	Log      Type = "log"
	Symlog   Type = "symlog"
	Sqrt     Type = "sqrt"
	Pow      Type = "pow"
	Time     Type = "time"
	UTC      Type = "utc"
)

// Descriptor is visual scale metadata, per spec §3. Domain/Range hold the
// extent of the scale; unsupported Types yield no transform.
type Descriptor struct {
	Type   Type
	Domain []float64
	Range  []float64
	// Exponent is only meaningful for Type == Pow.
	Exponent float64
}

// Transform is the resolved numeric + SQL view of a scale, mirroring the
// client-side `scaleTransform` referenced in spec §4.5 step 1.
type Transform struct {
	Type     Type
	Domain   []float64
	Range    []float64
	apply    func(v float64) float64
	sqlApply func(expr string) string
}

// Apply runs the scale's numeric transform.
func (t Transform) Apply(v float64) float64 { return t.apply(v) }

// SQLApply renders the scale's in-SQL equivalent over a value expression.
func (t Transform) SQLApply(expr string) string { return t.sqlApply(expr) }

// Supported reports whether this descriptor resolves to a usable
// transform. Unsupported scale types deliberately have no Apply/SQLApply.
func (d Descriptor) Supported() bool {
	_, ok := resolve(d)
	return ok
}

// resolve builds the Transform for a descriptor, or ok=false for an
// unsupported scale type.
func resolve(d Descriptor) (Transform, bool) {
	switch d.Type {
	case Identity, "":
		return Transform{
			Type: Identity, Domain: d.Domain, Range: d.Range,
			apply:    func(v float64) float64 { return v },
			sqlApply: func(expr string) string { return expr },
		}, true
	case Linear:
		return Transform{
			Type: Linear, Domain: d.Domain, Range: d.Range,
			apply:    func(v float64) float64 { return v },
			sqlApply: func(expr string) string { return expr },
		}, true
	case Sqrt:
		return Transform{
			Type: Sqrt, Domain: d.Domain, Range: d.Range,
			apply:    func(v float64) float64 { return math.Sqrt(v) },
			sqlApply: func(expr string) string { return "SQRT(" + expr + ")" },
		}, true
	case Pow:
		exp := d.Exponent
		if exp == 0 {
			exp = 1
		}
		return Transform{
			Type: Pow, Domain: d.Domain, Range: d.Range,
			apply:    func(v float64) float64 { return math.Pow(v, exp) },
			sqlApply: func(expr string) string { return "POWER(" + expr + ", " + trimFloat(exp) + ")" },
		}, true
	case Log:
		return Transform{
			Type: Log, Domain: d.Domain, Range: d.Range,
			apply:    func(v float64) float64 { return math.Log(v) },
			sqlApply: func(expr string) string { return "LN(" + expr + ")" },
		}, true
	case Symlog:
		return Transform{
			Type: Symlog, Domain: d.Domain, Range: d.Range,
			apply: func(v float64) float64 {
				sign := 1.0
				if v < 0 {
					sign = -1.0
				}
				return sign * math.Log1p(math.Abs(v))
			},
			sqlApply: func(expr string) string {
				return "SIGN(" + expr + ") * LN(1 + ABS(" + expr + "))"
			},
		}, true
	case Time, UTC:
		return Transform{
			Type: d.Type, Domain: d.Domain, Range: d.Range,
			apply:    func(v float64) float64 { return v },
			sqlApply: func(expr string) string { return "EPOCH(" + expr + ")" },
		}, true
	default:
		return Transform{}, false
	}
}

func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
