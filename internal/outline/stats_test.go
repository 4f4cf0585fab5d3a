package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sized(size, space float64) LogicalLine {
	return LogicalLine{Text: "x", FontSize: size, SpaceBefore: space, WordCount: 1, Role: RoleContent}
}

func TestComputeStatisticsDefaults(t *testing.T) {
	assert.Equal(t, DefaultStatistics(), ComputeStatistics(nil, 20))

	// only footnote and display sizes
	lines := []LogicalLine{sized(6, 4), sized(7, 4), sized(30, 4), sized(48, 4)}
	assert.Equal(t, DefaultStatistics(), ComputeStatistics(lines, 20))
}

func TestComputeStatistics(t *testing.T) {
	lines := []LogicalLine{
		sized(10, 20), // page start sentinel, no spacing sample
		sized(10, 4),
		sized(12, 6),
		sized(12, -3),
		sized(10, 0),
		sized(40, 5), // display size, ignored entirely
	}
	stats := ComputeStatistics(lines, 20)

	assert.InDelta(t, 10.8, stats.MeanSize, 1e-9)
	// population std is 0.98, floored to 1
	assert.Equal(t, 1.0, stats.StdDevSize)
	assert.Equal(t, 10.0, stats.BodySize)
	assert.InDelta(t, 5.0, stats.MeanSpace, 1e-9)
}

func TestComputeStatisticsWideSpread(t *testing.T) {
	lines := []LogicalLine{sized(8, 5), sized(12, 5), sized(8, 5), sized(12, 5)}
	stats := ComputeStatistics(lines, 20)

	assert.InDelta(t, 10.0, stats.MeanSize, 1e-9)
	assert.InDelta(t, 2.0, stats.StdDevSize, 1e-9)
	// equal counts, the earlier size wins
	assert.Equal(t, 8.0, stats.BodySize)
}

func TestComputeStatisticsSingleLine(t *testing.T) {
	stats := ComputeStatistics([]LogicalLine{sized(14, 20)}, 20)

	assert.Equal(t, 14.0, stats.MeanSize)
	assert.Equal(t, 1.0, stats.StdDevSize)
	assert.Equal(t, 14.0, stats.BodySize)
	assert.Equal(t, 3.0, stats.MeanSpace)
}

func TestComputeStatisticsStdDevNeverBelowOne(t *testing.T) {
	for _, sizes := range [][]float64{{10, 10, 10}, {10, 10.5}, {9, 9.1, 9.2, 9.3}} {
		var lines []LogicalLine
		for _, s := range sizes {
			lines = append(lines, sized(s, 4))
		}
		assert.GreaterOrEqual(t, ComputeStatistics(lines, 20).StdDevSize, 1.0)
	}
}
