package transport

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// Range is the outermost contiguous span of samples whose concentration
// strictly exceeds a threshold. Only the leftmost and rightmost crossings
// are characterized; disjoint lobes inside the span are not separated.
type Range struct {
	StartIndex int
	EndIndex   int
	Start      float64 // coordinate of the first exceeding sample
	End        float64 // coordinate of the last exceeding sample
}

// Summary holds the derived statistics of one spatial concentration profile.
type Summary struct {
	Max         float64
	MaxPosition float64
	Exceedance  *Range // nil when the standard limit is never exceeded
	Influence   *Range // nil when the detection limit is never exceeded
}

// Crossing marks the first sample at which a threshold is crossed. Reached
// is false when the threshold is never crossed within the sampled horizon;
// the remaining fields are meaningless in that case.
type Crossing struct {
	Reached       bool
	Index         int
	Time          float64
	Concentration float64
}

// BreakthroughSummary holds the derived statistics of one breakthrough curve.
type BreakthroughSummary struct {
	FirstDetection  Crossing
	FirstExceedance Crossing
	PeakTime        float64
	Peak            float64
}

// ExceedanceRange scans parallel position/concentration samples and returns
// the outermost range where concentration > limit, or nil when no sample
// exceeds it.
func ExceedanceRange(positions, concentrations []float64, limit float64) (*Range, error) {
	if len(positions) != len(concentrations) {
		return nil, fmt.Errorf("positions and concentrations differ in length: %d vs %d",
			len(positions), len(concentrations))
	}
	first, last := -1, -1
	for i, c := range concentrations {
		if c > limit {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil, nil
	}
	return &Range{
		StartIndex: first,
		EndIndex:   last,
		Start:      positions[first],
		End:        positions[last],
	}, nil
}

// Summarize computes the profile statistics: the global maximum and its
// position (first occurrence on ties), the exceedance range against the
// standard limit and the influence range against the detection limit.
func Summarize(positions, concentrations []float64, standardLimit, detectionLimit float64) (*Summary, error) {
	if len(positions) != len(concentrations) {
		return nil, fmt.Errorf("positions and concentrations differ in length: %d vs %d",
			len(positions), len(concentrations))
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("empty sample")
	}

	exceed, err := ExceedanceRange(positions, concentrations, standardLimit)
	if err != nil {
		return nil, err
	}
	influence, err := ExceedanceRange(positions, concentrations, detectionLimit)
	if err != nil {
		return nil, err
	}

	maxIdx := floats.MaxIdx(concentrations)
	return &Summary{
		Max:         concentrations[maxIdx],
		MaxPosition: positions[maxIdx],
		Exceedance:  exceed,
		Influence:   influence,
	}, nil
}

// BreakthroughStats derives the monitoring statistics of a breakthrough
// curve: first detection, first exceedance and the concentration peak. The
// two crossings may be absent and are reported through Crossing.Reached
// rather than a sentinel time, since t=0 is a legitimate sampling instant.
func BreakthroughStats(times, concentrations []float64, standardLimit, detectionLimit float64) (*BreakthroughSummary, error) {
	if len(times) != len(concentrations) {
		return nil, fmt.Errorf("times and concentrations differ in length: %d vs %d",
			len(times), len(concentrations))
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("empty sample")
	}

	peakIdx := floats.MaxIdx(concentrations)
	return &BreakthroughSummary{
		FirstDetection:  firstCrossing(times, concentrations, detectionLimit),
		FirstExceedance: firstCrossing(times, concentrations, standardLimit),
		PeakTime:        times[peakIdx],
		Peak:            concentrations[peakIdx],
	}, nil
}

func firstCrossing(times, concentrations []float64, limit float64) Crossing {
	for i, c := range concentrations {
		if c > limit {
			return Crossing{Reached: true, Index: i, Time: times[i], Concentration: c}
		}
	}
	return Crossing{}
}

// MassRecovered integrates a concentration profile over its positions and
// scales by the pore cross-section, recovering the dissolved mass (g) inside
// the sampled window. With zero decay and a window wide enough to hold the
// whole plume it approaches the released mass as the grid refines.
func (m *Model) MassRecovered(positions, concentrations []float64) (float64, error) {
	if len(positions) != len(concentrations) {
		return 0, fmt.Errorf("positions and concentrations differ in length: %d vs %d",
			len(positions), len(concentrations))
	}
	if len(positions) < 2 {
		return 0, fmt.Errorf("need at least 2 samples to integrate, got %d", len(positions))
	}
	return integrate.Trapezoidal(positions, concentrations) * m.params.Porosity * m.params.Area, nil
}
