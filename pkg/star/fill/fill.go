package fill

import (
	"math"
	"strings"

	"github.com/matzehuels/starbar/pkg/errors"
)

// Mode controls how finely a single star's fill fraction is discretized.
type Mode int

const (
	// Full draws whole stars only.
	Full Mode = iota
	// Half draws whole and half stars.
	Half
	// Precise draws the exact fraction, adjusted by the fill correction.
	Precise
)

// MaxCorrection is the upper bound of the fill correction range.
const MaxCorrection = 100.0

var modeNames = [...]string{Full: "full", Half: "half", Precise: "precise"}

func (m Mode) String() string {
	if m < Full || m > Precise {
		return "unknown"
	}
	return modeNames[m]
}

// ParseMode converts a mode name ("full", "half", "precise") into a Mode.
// Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return Full, errors.New(errors.ErrCodeInvalidFillMode, "invalid fill mode %q (must be one of: full, half, precise)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m < Full || m > Precise {
		return nil, errors.New(errors.ErrCodeInvalidFillMode, "invalid fill mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Levels returns one fill fraction per star for the given rating.
//
// The rating is clamped to [0, totalStars] first, so ratings above the
// maximum saturate to full credit and negative ratings to zero. A
// non-positive totalStars yields an empty slice.
func Levels(rating float64, totalStars int, mode Mode, correction float64) []float64 {
	if totalStars <= 0 {
		return []float64{}
	}

	rating = clamp(rating, 0, float64(totalStars))
	levels := make([]float64, totalStars)
	for i := range levels {
		levels[i] = Level(rating-float64(i), mode, correction)
	}
	return levels
}

// Level computes the fill fraction for one star given the rating remainder
// at that star's position (rating minus the star's zero-based index).
func Level(remainder float64, mode Mode, correction float64) float64 {
	raw := clamp(remainder, 0, 1)
	switch mode {
	case Half:
		return math.RoundToEven(raw*2) / 2
	case Precise:
		return CorrectPrecise(raw, correction)
	default:
		return math.RoundToEven(raw)
	}
}

// CorrectPrecise remaps a fill fraction so that 0 maps to c/200 and 1 maps
// to 1-c/200, where c is the correction in [0, 100].
func CorrectPrecise(fraction, correction float64) float64 {
	fraction = clamp(fraction, 0, 1)
	ratio := clamp(correction, 0, MaxCorrection) / 200
	multiplier := 1 - 2*ratio
	return multiplier*fraction + ratio
}

// clamp bounds v to [lo, hi]. NaN becomes lo.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
