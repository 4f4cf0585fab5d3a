package outline

import "math"

// Font sizes outside (bodyMinSize, bodyMaxSize) are footnote or display
// type and do not enter the document baselines.
const (
	bodyMinSize = 7.0
	bodyMaxSize = 30.0
)

// Statistics are the document-wide typographic baselines
type Statistics struct {
	MeanSize   float64
	StdDevSize float64 // never below 1
	BodySize   float64 // most frequent font size
	MeanSpace  float64
}

// DefaultStatistics is used when no line has a plausible body font size
func DefaultStatistics() Statistics {
	return Statistics{MeanSize: 10, StdDevSize: 1, BodySize: 10, MeanSpace: 3}
}

// ComputeStatistics derives the baselines from lines whose font size lies
// strictly between 7 and 30. MeanSpace only averages gaps in (0, maxSpace),
// which leaves out the page-start sentinel and broken layouts.
func ComputeStatistics(lines []LogicalLine, maxSpace float64) Statistics {
	var sizes, spaces []float64
	for _, l := range lines {
		if l.FontSize <= bodyMinSize || l.FontSize >= bodyMaxSize {
			continue
		}
		sizes = append(sizes, l.FontSize)
		if l.SpaceBefore > 0 && l.SpaceBefore < maxSpace {
			spaces = append(spaces, l.SpaceBefore)
		}
	}
	if len(sizes) == 0 {
		return DefaultStatistics()
	}

	mean, std := meanStd(sizes)
	if len(sizes) == 1 {
		std = 1
	}

	stats := Statistics{
		MeanSize:   mean,
		StdDevSize: math.Max(std, 1),
		BodySize:   mode(sizes),
		MeanSpace:  3,
	}
	if len(spaces) > 0 {
		stats.MeanSpace, _ = meanStd(spaces)
	}
	return stats
}

// meanStd returns the mean and population standard deviation of xs
func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(sq / float64(len(xs)))
}

// mode returns the most frequent value; ties go to the earliest seen
func mode(xs []float64) float64 {
	counts := make(map[float64]int, len(xs))
	var order []float64
	for _, x := range xs {
		if counts[x] == 0 {
			order = append(order, x)
		}
		counts[x]++
	}

	best, bestCount := 0.0, 0
	for _, x := range order {
		if counts[x] > bestCount {
			best, bestCount = x, counts[x]
		}
	}
	return best
}
