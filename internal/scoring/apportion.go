package scoring

import (
	"math"
	"sort"
)

// MaxDistributeTotal is the largest total Distribute accepts. Above 2^53 float64 no longer
// holds every integer, so the floor of a share stops being meaningful.
const MaxDistributeTotal = 1 << 53

// Distribute splits total across categories weighted by percentages using the largest
// remainder method. The result sums to round(total) and each entry is the floor of its exact
// share or one more. Ties on the fractional remainder go to the lower index.
//
// Percentages need not sum exactly to 1, but each should be in [0,1]. A negative or
// non-finite total, a total above MaxDistributeTotal, or a share that is not representable
// as an exact integer yields a zero-filled slice.
func Distribute(total float64, percentages []float64) []int {
	out := make([]int, len(percentages))
	if len(percentages) == 0 || total < 0 || math.IsNaN(total) || total > MaxDistributeTotal {
		return out
	}
	for _, p := range percentages {
		if exact := total * p; math.IsNaN(exact) || math.Abs(exact) > MaxDistributeTotal {
			return out
		}
	}

	type remainder struct {
		frac  float64
		index int
	}
	rems := make([]remainder, len(percentages))

	floorSum := 0
	for i, p := range percentages {
		exact := total * p
		floor := math.Floor(exact)
		out[i] = int(floor)
		floorSum += out[i]
		rems[i] = remainder{frac: exact - floor, index: i}
	}

	missing := int(roundHalfUp(total - float64(floorSum)))
	if missing <= 0 {
		return out
	}
	if missing > len(rems) {
		missing = len(rems)
	}

	sort.SliceStable(rems, func(a, b int) bool {
		return rems[a].frac > rems[b].frac
	})
	for _, r := range rems[:missing] {
		out[r.index]++
	}
	return out
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
