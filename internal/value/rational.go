package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Rat is an exact rational number used as the time base for keyframe
// timelines. Times on the evaluation path are never negative, which lets a
// negative Rat serve as the "no cached value" sentinel.
type Rat struct {
	Num int64
	Den int64
}

// NewRat returns the rational num/den reduced to lowest terms with a
// positive denominator. A zero denominator is normalized to 0/1.
func NewRat(num, den int64) Rat {
	if den == 0 {
		return Rat{0, 1}
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs64(num), den)
	if g > 1 {
		num /= g
		den /= g
	}
	return Rat{num, den}
}

// RatFromFloat approximates f as a rational over a millisecond-granularity
// denominator. Composition files may give times as plain numbers.
func RatFromFloat(f float64) Rat {
	return NewRat(int64(f*1000+copysignHalf(f)), 1000)
}

func copysignHalf(f float64) float64 {
	if f < 0 {
		return -0.5
	}
	return 0.5
}

// ParseRat parses either "num/den" or a decimal literal.
func ParseRat(s string) (Rat, error) {
	s = strings.TrimSpace(s)
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		if err != nil {
			return Rat{}, fmt.Errorf("invalid rational %q: %w", s, err)
		}
		d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if err != nil {
			return Rat{}, fmt.Errorf("invalid rational %q: %w", s, err)
		}
		if d == 0 {
			return Rat{}, fmt.Errorf("invalid rational %q: zero denominator", s)
		}
		return NewRat(n, d), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Rat{}, fmt.Errorf("invalid rational %q: %w", s, err)
	}
	return RatFromFloat(f), nil
}

// Float64 returns the rational as a float, used for interpolation fractions.
func (r Rat) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Cmp compares r against other, returning -1, 0 or +1.
func (r Rat) Cmp(other Rat) int {
	// Denominators are kept positive by NewRat, so cross-multiplication
	// preserves ordering.
	a := r.Num * other.Den
	b := other.Num * r.Den
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether two rationals denote the same point in time.
func (r Rat) Equal(other Rat) bool {
	return r.Cmp(other) == 0
}

// Negative reports whether the rational is below zero.
func (r Rat) Negative() bool {
	return r.Num < 0
}

func (r Rat) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs64(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}
