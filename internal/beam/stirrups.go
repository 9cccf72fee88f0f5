package beam

import (
	"math"
	"slices"

	"github.com/mogiel/konec/internal/domain"
)

const (
	maxSecondarySpacing = 400.0
	spacingStep         = 5

	// Largest gap left between the supports and the outermost stirrups.
	maxEndClearance = 60.0
)

type stirrupLayout struct {
	spacing         int
	clearance       float64
	positions       []float64
	secondRow       int
	dimensionPoints []float64
}

// SecondarySpacing caps the requested mid-span stirrup spacing at 0.675h, 0.75h and 400 mm,
// rounded down to 5 mm.
func SecondarySpacing(requested int, height float64) int {
	s := floorToStep(math.Min(0.75*height*0.9, float64(requested)))
	return floorToStep(min(float64(s), maxSecondarySpacing, math.Trunc(height*0.75)))
}

func floorToStep(v float64) int {
	return int(math.Floor(v/spacingStep)) * spacingStep
}

func zoneExtent(z domain.StirrupZone) float64 {
	if !z.Enabled() {
		return 0
	}
	return math.Ceil(float64(z.Range)/float64(z.Spacing)) * float64(z.Spacing)
}

// EndClearance is the part of the span left over after both first-row zones and a whole number
// of secondary spacings.
func EndClearance(in domain.BeamInput, spacing int) float64 {
	zones := zoneExtent(in.FirstRowLeft) + zoneExtent(in.FirstRowRight)
	s := float64(spacing)
	return in.Span - (zones + math.Floor((in.Span-zones)/s)*s)
}

// layoutStirrups tightens the secondary spacing in 5 mm steps until the end clearance is at most
// 60 mm, then places the first-row zones from each support and the secondary row between them.
// Positions are measured from the face of the left support.
func layoutStirrups(in domain.BeamInput) stirrupLayout {
	spacing := SecondarySpacing(in.SecondarySpacing, in.Height)
	clearance := EndClearance(in, spacing)
	for clearance > maxEndClearance {
		spacing -= spacingStep
		clearance = EndClearance(in, spacing)
	}
	s := float64(spacing)

	var positions []float64
	dims := []float64{0, in.Span}
	lastLeft, lastRight := 0.0, in.Span

	if z := in.FirstRowLeft; z.Enabled() {
		n := int(math.Ceil(float64(z.Range)/float64(z.Spacing))) + 1
		for i := range n {
			positions = append(positions, clearance/2+float64(i*z.Spacing))
		}
		lastLeft = positions[len(positions)-1]
		dims = append(dims, lastLeft)
	}

	if z := in.FirstRowRight; z.Enabled() {
		n := int(math.Ceil(float64(z.Range)/float64(z.Spacing))) + 1
		for i := range n {
			positions = append(positions, in.Span-clearance/2-float64(i*z.Spacing))
		}
		lastRight = positions[len(positions)-1]
		dims = append(dims, lastRight)
	}

	dims = append(dims, clearance/2, in.Span-clearance/2)

	start := clearance / 2
	if lastLeft > 0 {
		start = lastLeft
	}
	rightTail := 0.0
	if lastRight > 0 {
		rightTail = in.Span - lastRight
	}
	n := int((in.Span-lastLeft-rightTail)/s) + 1
	for i := range n {
		positions = append(positions, start+float64(i)*s)
	}

	return stirrupLayout{
		spacing:         spacing,
		clearance:       clearance,
		positions:       sortedUnique(positions),
		secondRow:       int(math.Ceil((lastRight - lastLeft) / s)),
		dimensionPoints: sortedUnique(dims),
	}
}

// sortedUnique rounds to 0.1 mm so positions reached from both supports collapse into one.
func sortedUnique(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = roundTo(v, 1)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
