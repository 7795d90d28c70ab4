package mathutil

import (
	"errors"
	"math"
)

var (
	// ErrZeroLength is returned when an operation needs a direction but the
	// vector has zero magnitude.
	ErrZeroLength = errors.New("mathutil: zero-length vector")

	// ErrDivideByZero is returned by Div and DivAssign for a zero divisor.
	ErrDivideByZero = errors.New("mathutil: division by zero")

	// ErrNotFinite is returned when an operand holds NaN or ±Inf.
	ErrNotFinite = errors.New("mathutil: non-finite vector")
)

// Vec3 is a 3-component vector (value type, stack-allocated).
// The zero value is the origin.
type Vec3 [3]float64

// V3 builds a vector from its components.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

func (v Vec3) X() float64 { return v[0] }
func (v Vec3) Y() float64 { return v[1] }
func (v Vec3) Z() float64 { return v[2] }

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Div divides every component by s.
func (v Vec3) Div(s float64) (Vec3, error) {
	if s == 0 {
		return v, ErrDivideByZero
	}
	return Vec3{v[0] / s, v[1] / s, v[2] / s}, nil
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// AddAssign adds b to v in place.
func (v *Vec3) AddAssign(b Vec3) {
	v[0] += b[0]
	v[1] += b[1]
	v[2] += b[2]
}

// SubAssign subtracts b from v in place.
func (v *Vec3) SubAssign(b Vec3) {
	v[0] -= b[0]
	v[1] -= b[1]
	v[2] -= b[2]
}

// ScaleAssign multiplies v by s in place.
func (v *Vec3) ScaleAssign(s float64) {
	v[0] *= s
	v[1] *= s
	v[2] *= s
}

// DivAssign divides v by s in place. v is left untouched when s is zero.
func (v *Vec3) DivAssign(s float64) error {
	if s == 0 {
		return ErrDivideByZero
	}
	v[0] /= s
	v[1] /= s
	v[2] /= s
	return nil
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (v Vec3) LenSq() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Len returns the magnitude of v. Components too large or too small to square
// are rescaled first, so the result stays finite whenever the magnitude is.
func (v Vec3) Len() float64 {
	l := math.Sqrt(v.LenSq())
	if l != 0 && !math.IsInf(l, 0) {
		return l
	}
	m := v.maxAbs()
	if m == 0 || math.IsInf(m, 0) || math.IsNaN(m) {
		return l
	}
	return m * math.Sqrt(v.Scale(1/m).LenSq())
}

// IsFinite reports whether no component is NaN or ±Inf.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vec3) maxAbs() float64 {
	return math.Max(math.Abs(v[0]), math.Max(math.Abs(v[1]), math.Abs(v[2])))
}

// Distance returns |a - b|.
func (a Vec3) Distance(b Vec3) float64 {
	return a.Sub(b).Len()
}

// Normalize returns the unit vector pointing along v.
func (v Vec3) Normalize() (Vec3, error) {
	if !v.IsFinite() {
		return Vec3{}, ErrNotFinite
	}
	m := v.maxAbs()
	if m == 0 {
		return Vec3{}, ErrZeroLength
	}
	l := math.Sqrt(v.LenSq())
	if l == 0 || math.IsInf(l, 0) {
		v = v.Scale(1 / m)
		l = math.Sqrt(v.LenSq())
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}, nil
}

// Equal reports exact component-wise equality. Float equality is brittle for
// computed values; use ApproxEqual there.
func (a Vec3) Equal(b Vec3) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2]
}

// ApproxEqual reports whether every component of a and b differs by at most eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// Less and friends order vectors by magnitude only.
func (a Vec3) Less(b Vec3) bool      { return a.Len() < b.Len() }
func (a Vec3) Greater(b Vec3) bool   { return b.Less(a) }
func (a Vec3) LessEq(b Vec3) bool    { return !a.Greater(b) }
func (a Vec3) GreaterEq(b Vec3) bool { return !a.Less(b) }

// Compare orders a and b by magnitude, for slices.SortFunc.
func Compare(a, b Vec3) int {
	switch la, lb := a.Len(), b.Len(); {
	case la < lb:
		return -1
	case la > lb:
		return 1
	}
	return 0
}

// Dot is the free-function form of a.Dot(b).
func Dot(a, b Vec3) float64 {
	return a.Dot(b)
}

// DotXY is the planar dot product, ignoring z. Only meaningful for vectors that
// live in the screen plane.
func DotXY(a, b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// Angle returns the angle between a and b in radians, in [0, π].
// It works on the unit vectors, so any finite operands give a finite angle.
func Angle(a, b Vec3) (float64, error) {
	ua, err := a.Normalize()
	if err != nil {
		return 0, err
	}
	ub, err := b.Normalize()
	if err != nil {
		return 0, err
	}
	c := ua.Dot(ub)
	if math.IsNaN(c) {
		return 0, ErrNotFinite
	}
	// Rounding can push parallel vectors just past ±1.
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c), nil
}
