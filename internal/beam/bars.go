package beam

import (
	"math"

	"github.com/mogiel/konec/internal/domain"
)

const (
	steelDensity = 7850.0 // kg/m³

	// Largest aggregate size assumed when spacing longitudinal bars.
	defaultAggregate = 16

	// Straight tail past each closing hook of a stirrup.
	stirrupAnchorage = 80.0
)

// BendingRadius is the bend radius of a bar: 2.5Ø up to Ø16 and 4Ø above.
func BendingRadius(diameter float64) float64 {
	if diameter <= 16 {
		return diameter * 2.5
	}
	return diameter * 4.0
}

// MassPerMeter returns the mass of one metre of bar in kg, rounded to grams.
func MassPerMeter(diameter int) float64 {
	r := float64(diameter) / 2 / 1000
	return roundTo(steelDensity*math.Pi*r*r, 3)
}

// BarPitch is the minimum centre-to-centre distance of parallel bars: the bar diameter plus
// the largest of the diameter, 20 mm and the aggregate size plus 5 mm.
func BarPitch(diameter, aggregate int) float64 {
	gap := max(float64(diameter), 20, float64(aggregate+5))
	return math.Ceil(gap) + float64(diameter)
}

// TopBarLength is the cut length of a top bar bent down at both ends to the bottom cover.
func TopBarLength(in domain.BeamInput) int {
	d := float64(in.Top.Diameter)
	r := BendingRadius(d)

	axis := in.Height - float64(in.Cover.Top) - float64(in.StirrupDiameter) - d/2
	leg := axis - r - float64(in.Cover.Bottom)
	run := in.TotalLength() - float64(in.Cover.ViewLeft) - float64(in.Cover.ViewRight) - d - 2*r

	return roundMM(2*leg + run + 2*quarterArc(r))
}

// BottomBarLength is the cut length of a straight bottom bar.
func BottomBarLength(in domain.BeamInput) int {
	return roundMM(in.TotalLength() - float64(in.Cover.ViewLeft) - float64(in.Cover.ViewRight))
}

// StirrupLength is the cut length of a closed stirrup with two anchored hooks, measured on the
// bar axis.
func StirrupLength(in domain.BeamInput) int {
	d := float64(in.StirrupDiameter)
	r := BendingRadius(d)

	horizontal := in.Width - float64(in.Cover.Left) - float64(in.Cover.Right) - d - 2*r
	vertical := in.Height - float64(in.Cover.Top) - float64(in.Cover.Bottom) - d - 2*r

	return roundMM(2*stirrupAnchorage + 2*horizontal + 2*vertical + 5*quarterArc(r))
}

func quarterArc(radius float64) float64 {
	return math.Pi * radius / 2
}

func roundMM(v float64) int {
	return int(math.RoundToEven(v))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
