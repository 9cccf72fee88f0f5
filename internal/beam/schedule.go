package beam

import (
	"slices"

	"github.com/mogiel/konec/internal/domain"
)

func newMark(number int, in domain.BeamInput, role domain.BarRole, diameter int, grade string, length, quantity int) domain.BarMark {
	total := quantity * in.Elements
	return domain.BarMark{
		Number:             number,
		Element:            in.Name,
		Role:               role,
		Diameter:           diameter,
		SteelGrade:         grade,
		LengthMM:           length,
		QuantityPerElement: quantity,
		QuantityTotal:      total,
		TotalLengthM:       roundTo(float64(length)/1000*float64(total), 2),
	}
}

// buildBill lists the top bars, bottom bars and stirrups, then sums length and mass per steel
// grade and diameter in order of first appearance.
func buildBill(in domain.BeamInput, stirrups int) domain.SteelBill {
	marks := []domain.BarMark{
		newMark(1, in, domain.BarRoleTop, in.Top.Diameter, in.Top.SteelGrade, TopBarLength(in), in.Top.Quantity),
		newMark(2, in, domain.BarRoleBottom, in.Bottom.Diameter, in.Bottom.SteelGrade, BottomBarLength(in), in.Bottom.Quantity),
		newMark(3, in, domain.BarRoleStirrup, in.StirrupDiameter, in.StirrupGrade, StirrupLength(in), stirrups),
	}

	var grades []string
	for _, m := range marks {
		if !slices.Contains(grades, m.SteelGrade) {
			grades = append(grades, m.SteelGrade)
		}
	}

	var columns []domain.ScheduleColumn
	for _, grade := range grades {
		var diameters []int
		for _, m := range marks {
			if m.SteelGrade == grade && !slices.Contains(diameters, m.Diameter) {
				diameters = append(diameters, m.Diameter)
			}
		}
		for _, d := range diameters {
			columns = append(columns, column(marks, grade, d))
		}
	}

	var total float64
	for _, c := range columns {
		total += c.MassKg
	}

	return domain.SteelBill{
		Elements:    in.Elements,
		Bars:        marks,
		Columns:     columns,
		TotalMassKg: roundTo(total, 1),
	}
}

func column(marks []domain.BarMark, grade string, diameter int) domain.ScheduleColumn {
	var length float64
	for _, m := range marks {
		if m.SteelGrade == grade && m.Diameter == diameter {
			length += m.TotalLengthM
		}
	}
	length = roundTo(length, 2)
	perMeter := MassPerMeter(diameter)

	return domain.ScheduleColumn{
		SteelGrade:     grade,
		Diameter:       diameter,
		TotalLengthM:   length,
		MassPerMeterKg: perMeter,
		MassKg:         roundTo(length*perMeter, 1),
	}
}
