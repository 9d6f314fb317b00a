package similarity

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

const (
	defaultLow  = 3
	defaultHigh = 10
)

// ErrInvalidThresholds reports a threshold pair that cannot order the verdict bands.
var ErrInvalidThresholds = errors.New("invalid similarity thresholds")

// Verdict is the outcome of comparing two hashes.
type Verdict int

const (
	Exact Verdict = iota
	Duplicate
	Similar
	Different
)

// String returns the lowercase verdict name.
func (v Verdict) String() string {
	switch v {
	case Exact:
		return "exact"
	case Duplicate:
		return "duplicate"
	case Similar:
		return "similar"
	case Different:
		return "different"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	if v < Exact || v > Different {
		return nil, fmt.Errorf("marshal verdict: unknown value %d", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Verdict) UnmarshalText(text []byte) error {
	parsed, err := ParseVerdict(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVerdict converts a verdict name back into a Verdict.
func ParseVerdict(value string) (Verdict, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "exact":
		return Exact, nil
	case "duplicate":
		return Duplicate, nil
	case "similar":
		return Similar, nil
	case "different":
		return Different, nil
	default:
		return Different, fmt.Errorf("unknown verdict %q", value)
	}
}

// Thresholds bounds the Duplicate and Similar bands by Hamming distance.
type Thresholds struct {
	Low  int `toml:"low" json:"low"`
	High int `toml:"high" json:"high"`
}

// DefaultThresholds returns Low=3, High=10.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: defaultLow, High: defaultHigh}
}

// Validate rejects negative thresholds and Low > High. Low == High is allowed
// and leaves the Similar band empty.
func (t Thresholds) Validate() error {
	if t.Low < 0 || t.High < 0 {
		return fmt.Errorf("%w: thresholds must be non-negative (low=%d high=%d)", ErrInvalidThresholds, t.Low, t.High)
	}
	if t.Low > t.High {
		return fmt.Errorf("%w: low (%d) exceeds high (%d)", ErrInvalidThresholds, t.Low, t.High)
	}
	return nil
}

// Distance returns the Hamming distance between a and b.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Compare classifies the distance between a and b against th.
//
// The bands are checked in order Exact, Duplicate, Similar, so Compare stays
// total even for thresholds that Validate would reject.
func Compare(a, b uint64, th Thresholds) Verdict {
	return ClassifyDistance(Distance(a, b), th)
}

// Classify compares a and b using DefaultThresholds.
func Classify(a, b uint64) Verdict {
	return Compare(a, b, DefaultThresholds())
}

// ClassifyDistance maps an already computed Hamming distance to a verdict.
func ClassifyDistance(distance int, th Thresholds) Verdict {
	switch {
	case distance <= 0:
		return Exact
	case distance <= th.Low:
		return Duplicate
	case distance <= th.High:
		return Similar
	default:
		return Different
	}
}
