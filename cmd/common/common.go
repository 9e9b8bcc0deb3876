package common

import (
	"math"
	"strconv"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
)

func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

// ParseLevel parses a level in the range [0, 1]. Unparsable input yields
// fallback, out-of-range input is clamped.
func ParseLevel(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return ClampLevel(fallback)
	}
	return ClampLevel(v)
}

// ClampLevel clamps v to [0, 1].
func ClampLevel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
