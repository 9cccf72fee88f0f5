package domain

// BarSet is a group of identical longitudinal bars.
type BarSet struct {
	Diameter   int    `json:"diameter"`
	Quantity   int    `json:"quantity"`
	SteelGrade string `json:"steelGrade"`
}

// StirrupZone is a densified stirrup row next to a support. A zero range or spacing disables it.
type StirrupZone struct {
	Range   int `json:"range"`
	Spacing int `json:"spacing"`
}

// Enabled reports whether the zone places any stirrups.
func (z StirrupZone) Enabled() bool {
	return z.Range != 0 && z.Spacing != 0
}

// BeamCover holds concrete covers in millimetres. ViewLeft and ViewRight apply to the bar
// ends in elevation, Left and Right to the section sides.
type BeamCover struct {
	Top       int `json:"top"`
	Bottom    int `json:"bottom"`
	Left      int `json:"left"`
	Right     int `json:"right"`
	ViewLeft  int `json:"viewLeft"`
	ViewRight int `json:"viewRight"`
}

// BeamInput describes a simply supported rectangular beam. Lengths are in millimetres.
type BeamInput struct {
	Name             string
	Span             float64
	Height           float64
	Width            float64
	SupportLeft      int
	SupportRight     int
	Top              BarSet
	Bottom           BarSet
	StirrupDiameter  int
	StirrupGrade     string
	Cover            BeamCover
	FirstRowLeft     StirrupZone
	FirstRowRight    StirrupZone
	SecondarySpacing int
	Elements         int
	Language         string
}

// TotalLength is the beam length including both supports.
func (b BeamInput) TotalLength() float64 {
	return float64(b.SupportLeft) + b.Span + float64(b.SupportRight)
}

// BarRole names the position of a bar mark in the beam.
type BarRole string

const (
	BarRoleTop     BarRole = "top"
	BarRoleBottom  BarRole = "bottom"
	BarRoleStirrup BarRole = "stirrup"
)

// BarMark is one row of the steel bill.
type BarMark struct {
	Number             int     `json:"number"`
	Element            string  `json:"element"`
	Role               BarRole `json:"role"`
	Diameter           int     `json:"diameter"`
	SteelGrade         string  `json:"steelGrade"`
	LengthMM           int     `json:"lengthMm"`
	QuantityPerElement int     `json:"quantityPerElement"`
	QuantityTotal      int     `json:"quantityTotal"`
	TotalLengthM       float64 `json:"totalLengthM"`
}

// ScheduleColumn sums one steel grade and diameter over the bill.
type ScheduleColumn struct {
	SteelGrade     string  `json:"steelGrade"`
	Diameter       int     `json:"diameter"`
	TotalLengthM   float64 `json:"totalLengthM"`
	MassPerMeterKg float64 `json:"massPerMeterKg"`
	MassKg         float64 `json:"massKg"`
}

// SteelBill is the bending schedule for all elements.
type SteelBill struct {
	Elements    int              `json:"elements"`
	Bars        []BarMark        `json:"bars"`
	Columns     []ScheduleColumn `json:"columns"`
	TotalMassKg float64          `json:"totalMassKg"`
}

// BarLayout is how a bar set is arranged across the section width.
type BarLayout struct {
	FirstRow  int  `json:"firstRow"`
	SecondRow int  `json:"secondRow"`
	Fits      bool `json:"fits"`
}

// BeamReinforcement is the computed stirrup arrangement and steel bill.
type BeamReinforcement struct {
	Name                    string    `json:"name"`
	SecondaryStirrupSpacing int       `json:"secondaryStirrupSpacing"`
	EndClearance            float64   `json:"endClearance"`
	StirrupPositions        []float64 `json:"stirrupPositions"`
	SecondRowStirrups       int       `json:"secondRowStirrups"`
	DimensionPoints         []float64 `json:"dimensionPoints"`
	TopLayout               BarLayout `json:"topLayout"`
	BottomLayout            BarLayout `json:"bottomLayout"`
	Bill                    SteelBill `json:"steelBill"`
	Warnings                []string  `json:"warnings"`
}
