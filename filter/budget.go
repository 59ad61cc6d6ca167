package filter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Budgets are the price buckets offered in the budget filter.
var Budgets = []string{
	"0-500K",
	"500K-1M",
	"1M-2M",
	"2M-3M",
	"3M-5M",
	"5M-10M",
	"Above 10M",
}

var ErrMalformedAmount = errors.New("malformed amount")

// Range is a half-open price range [Min, Max). When Unbounded is set Max is ignored.
type Range struct {
	Min       int64
	Max       int64
	Unbounded bool
}

// Contains reports whether price falls inside the range.
func (r Range) Contains(price int64) bool {
	if price < r.Min {
		return false
	}
	return r.Unbounded || price < r.Max
}

// ParseAmount parses a price token such as "500K", "1M", "1.5m" or "10,000".
func ParseAmount(token string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(token))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrMalformedAmount)
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(s, "K"):
		multiplier = 1_000
		s = strings.TrimSpace(strings.TrimSuffix(s, "K"))
	case strings.HasSuffix(s, "M"):
		multiplier = 1_000_000
		s = strings.TrimSpace(strings.TrimSuffix(s, "M"))
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, token)
	}
	v := math.Round(f * multiplier)
	if v >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q is out of range", ErrMalformedAmount, token)
	}
	return int64(v), nil
}

// ParseBudget turns a bucket label into a Range. "A-B" yields [A, B) and
// "Above X" yields [X, unbounded).
func ParseBudget(bucket string) (Range, error) {
	s := strings.TrimSpace(bucket)
	if s == "" {
		return Range{}, fmt.Errorf("%w: empty budget", ErrMalformedAmount)
	}

	if len(s) > 5 && strings.EqualFold(s[:5], "above") {
		min, err := ParseAmount(s[5:])
		if err != nil {
			return Range{}, err
		}
		return Range{Min: min, Unbounded: true}, nil
	}

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return Range{}, fmt.Errorf("%w: budget %q has no range", ErrMalformedAmount, bucket)
	}
	min, err := ParseAmount(lo)
	if err != nil {
		return Range{}, err
	}
	max, err := ParseAmount(hi)
	if err != nil {
		return Range{}, err
	}
	if max <= min {
		return Range{}, fmt.Errorf("%w: budget %q is empty", ErrMalformedAmount, bucket)
	}
	return Range{Min: min, Max: max}, nil
}
