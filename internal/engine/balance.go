package engine

import (
	"math"

	"github.com/tartampluch/go-saju/internal/config"
)

// ElementStatus classifies an element's share of the chart.
type ElementStatus string

const (
	StatusExcess    ElementStatus = "excess"
	StatusDeficient ElementStatus = "deficient"
	StatusNormal    ElementStatus = "normal"
)

// ElementShare is one element's tally.
type ElementShare struct {
	Count      int           `json:"count"`
	Percentage int           `json:"percentage"`
	Status     ElementStatus `json:"status"`
	Hanja      string        `json:"hanja"`
}

// ElementDistribution always holds all five elements. Iterate with Elements
// when order matters; map order is random.
type ElementDistribution map[Element]ElementShare

// ClassifyPercentage applies the excess/deficient thresholds.
func ClassifyPercentage(pct int) ElementStatus {
	switch {
	case pct >= config.ExcessThreshold:
		return StatusExcess
	case pct <= config.DeficientThreshold:
		return StatusDeficient
	default:
		return StatusNormal
	}
}

// AnalyzeElements tallies stem and branch elements of every known pillar.
// An unknown hour pillar contributes nothing, so the total is 6 or 8.
func AnalyzeElements(p Pillars) ElementDistribution {
	var counts [len(Elements)]int
	total := 0
	for _, pillar := range p.all() {
		if !pillar.Known {
			continue
		}
		counts[pillar.Stem.Element()]++
		counts[pillar.Branch.Element()]++
		total += 2
	}
	if total == 0 {
		total = 1
	}

	dist := make(ElementDistribution, len(Elements))
	for _, e := range Elements {
		pct := percentOf(counts[e], total)
		dist[e] = ElementShare{
			Count:      counts[e],
			Percentage: pct,
			Status:     ClassifyPercentage(pct),
			Hanja:      e.Hanja(),
		}
	}
	return dist
}

// percentOf rounds half away from zero. Changing the rounding mode changes
// observable output.
func percentOf(count, total int) int {
	return int(math.Round(float64(count) / float64(total) * 100))
}

// TotalPercentage sums the five percentages. Rounding keeps it within 100±2.
func (d ElementDistribution) TotalPercentage() int {
	sum := 0
	for _, e := range Elements {
		sum += d[e].Percentage
	}
	return sum
}

// TotalCount sums the five counts.
func (d ElementDistribution) TotalCount() int {
	sum := 0
	for _, e := range Elements {
		sum += d[e].Count
	}
	return sum
}
