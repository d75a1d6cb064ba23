package entity

import (
	"math"
	"strconv"
	"strings"
)

// Progress is a completion ratio in [0.00, 1.00] held as hundredths.
type Progress int64

const (
	ProgressNone     Progress = 0
	ProgressComplete Progress = 100
)

// ParseProgress reads a decimal string and rounds it to two places, half
// away from zero (0.755 becomes 0.76, 0.745 becomes 0.75). Values outside
// [0, 1] are rejected before rounding.
func ParseProgress(s string) (Progress, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Invalid("progress is required")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, Invalid("progress must be a number")
	}
	if f < 0 || f > 1 {
		return 0, Invalid("progress must be between 0.00 and 1.00")
	}

	mantissa := s
	if i := strings.IndexAny(mantissa, "eE"); i >= 0 {
		// exponent form: fall back to the shortest decimal text of the value
		mantissa = strconv.FormatFloat(f, 'f', -1, 64)
	}
	mantissa = strings.TrimPrefix(mantissa, "+")
	mantissa = strings.TrimPrefix(mantissa, "-")

	intPart, frac, _ := strings.Cut(mantissa, ".")
	for len(frac) < 3 {
		frac += "0"
	}

	whole, err := strconv.ParseInt(intPart+frac[:2], 10, 64)
	if err != nil {
		return 0, Invalid("progress must be a number")
	}
	if frac[2] >= '5' {
		whole++
	}
	if whole > int64(ProgressComplete) {
		whole = int64(ProgressComplete)
	}
	return Progress(whole), nil
}

// ProgressFromFloat rounds a stored value to hundredths.
func ProgressFromFloat(f float64) Progress {
	return Progress(math.Round(f * 100))
}

func (p Progress) Float64() float64 {
	return float64(p) / 100
}

func (p Progress) String() string {
	return strconv.FormatInt(int64(p)/100, 10) + "." + twoDigits(int64(p)%100)
}

func (p Progress) Complete() bool {
	return p >= ProgressComplete
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

func (p Progress) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Progress) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseProgress(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
