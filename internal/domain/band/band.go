package band

import (
	"math"
	"strings"
)

// Band is an ordinal competency tier derived from the average skill rating.
type Band string

const (
	BandA  Band = "A"
	BandB  Band = "B"
	BandC  Band = "C"
	BandL1 Band = "L1"
	BandL2 Band = "L2"
)

var bandOrder = map[Band]int{
	BandA:  1,
	BandB:  2,
	BandC:  3,
	BandL1: 4,
	BandL2: 5,
}

func (b Band) IsValid() bool {
	_, ok := bandOrder[b]
	return ok
}

func ParseBand(s string) (Band, bool) {
	b := Band(strings.ToUpper(strings.TrimSpace(s)))
	if !b.IsValid() {
		return "", false
	}
	return b, true
}

// Threshold maps a half-open average-rating interval [Min, Max) to a band.
type Threshold struct {
	Band Band
	Min  float64
	Max  float64
}

// Scale classifies average ratings into bands. The thresholds are scanned in
// order so the intervals can never gap or overlap; values below the first
// interval clamp to the lowest band and values at or above the last upper
// bound clamp to the highest band, which makes the final interval closed.
type Scale struct {
	thresholds []Threshold
}

func NewScale(thresholds []Threshold) Scale {
	ths := make([]Threshold, len(thresholds))
	copy(ths, thresholds)
	return Scale{thresholds: ths}
}

// DefaultScale is the production threshold table:
// [1.0,1.5) A, [1.5,2.5) B, [2.5,3.5) C, [3.5,4.5) L1, [4.5,5.0] L2.
func DefaultScale() Scale {
	return NewScale([]Threshold{
		{Band: BandA, Min: 1.0, Max: 1.5},
		{Band: BandB, Min: 1.5, Max: 2.5},
		{Band: BandC, Min: 2.5, Max: 3.5},
		{Band: BandL1, Min: 3.5, Max: 4.5},
		{Band: BandL2, Min: 4.5, Max: 5.0},
	})
}

func (s Scale) Classify(average float64) Band {
	if len(s.thresholds) == 0 {
		return BandA
	}
	for _, th := range s.thresholds {
		if th.Min <= average && average < th.Max {
			return th.Band
		}
	}
	if average < s.thresholds[0].Min {
		return s.thresholds[0].Band
	}
	return s.thresholds[len(s.thresholds)-1].Band
}

// ClassifyRatings computes the average rank of the given ratings and maps it
// to a band. An empty or all-absent set is not an error: it classifies as the
// lowest band with average 1.0.
func (s Scale) ClassifyRatings(ratings []Rating) (Band, float64) {
	total := 0
	count := 0
	for _, r := range ratings {
		lvl := r.Level()
		if lvl == LevelAbsent {
			continue
		}
		total += lvl
		count++
	}
	if count == 0 {
		return s.lowest(), 1.0
	}

	average := float64(total) / float64(count)
	return s.Classify(average), average
}

func (s Scale) lowest() Band {
	if len(s.thresholds) == 0 {
		return BandA
	}
	return s.thresholds[0].Band
}

// Round2 truncates an average to two decimals for reporting.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
