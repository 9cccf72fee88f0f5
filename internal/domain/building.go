package domain

// HeightGroup classifies a building by height and storey count.
type HeightGroup string

const (
	HeightGroupLow        HeightGroup = "N"
	HeightGroupMediumHigh HeightGroup = "SW"
	HeightGroupHigh       HeightGroup = "W"
	HeightGroupHighRise   HeightGroup = "WW"
)

// Label is the human-readable name used in calculator output.
func (g HeightGroup) Label() string {
	switch g {
	case HeightGroupLow:
		return "Niski (N)"
	case HeightGroupMediumHigh:
		return "Średniowysokie (SW)"
	case HeightGroupHigh:
		return "Wysokie (W)"
	case HeightGroupHighRise:
		return "Wysokościowe (WW)"
	default:
		return string(g)
	}
}

// FireResistanceClass is a building fire resistance class, "A" being the strictest.
type FireResistanceClass string

// NoReduction marks that the class cannot be lowered.
const NoReduction FireResistanceClass = "-"

// BuildingInput describes a building with a human-occupancy hazard category (ZL I–V).
type BuildingInput struct {
	UsageClass        int     `json:"usageClass" form:"usageClass"`
	HeightMeters      float64 `json:"height" form:"height"`
	Storeys           int     `json:"storeys" form:"storeys"`
	FirstStoreyHeight float64 `json:"firstStoreyHeight" form:"firstStoreyHeight"`
}

// BuildingCategory is the classification outcome.
type BuildingCategory struct {
	HeightGroup      HeightGroup         `json:"heightGroup"`
	HeightGroupLabel string              `json:"heightGroupLabel"`
	TableClass       FireResistanceClass `json:"tableClass"`
	ReducedClass     FireResistanceClass `json:"reducedClass"`
	Category         FireResistanceClass `json:"category"`
}

// Reducible reports whether the table class may be lowered.
func (b BuildingCategory) Reducible() bool {
	return b.ReducedClass != NoReduction
}
