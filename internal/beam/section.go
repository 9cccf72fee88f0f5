package beam

import "github.com/mogiel/konec/internal/domain"

// rowLimits returns the outermost bar axes of the first row. Bars sit in the stirrup bends
// when the bend is large enough to hold them, otherwise against the stirrup legs.
func rowLimits(in domain.BeamInput, diameter int) (left, right float64) {
	d := float64(diameter)
	ds := float64(in.StirrupDiameter)
	bend := BendingRadius(ds)

	if bend-ds/2 >= d/2 {
		return float64(in.Cover.Left) + ds/2 + bend, in.Width - float64(in.Cover.Right) - ds/2 - bend
	}
	return float64(in.Cover.Left) + ds + d/2, in.Width - float64(in.Cover.Right) - ds - d/2
}

// secondRowLimits places the second row against the stirrup legs.
func secondRowLimits(in domain.BeamInput, diameter int) (left, right float64) {
	d := float64(diameter)
	ds := float64(in.StirrupDiameter)
	return float64(in.Cover.Left) + ds + d/2, in.Width - float64(in.Cover.Right) - ds - d/2
}

// layoutBars moves bars to a second row until the first row keeps the minimum pitch.
func layoutBars(in domain.BeamInput, set domain.BarSet) domain.BarLayout {
	left, right := rowLimits(in, set.Diameter)
	width := right - left
	pitch := BarPitch(set.Diameter, defaultAggregate)

	second := 0
	for {
		gaps := set.Quantity - second - 1
		if gaps <= 0 || width/float64(gaps) >= pitch {
			break
		}
		second++
	}

	layout := domain.BarLayout{FirstRow: set.Quantity - second, SecondRow: second, Fits: true}
	if second >= 2 {
		l, r := secondRowLimits(in, set.Diameter)
		layout.Fits = (r-l)/float64(second-1) >= pitch
	}
	return layout
}
