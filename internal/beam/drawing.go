package beam

import (
	"fmt"
	"os"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/mogiel/konec/internal/domain"
)

const (
	layerOutline  = "KONEC-Obrys"
	layerBars     = "KONEC-Prety"
	layerStirrups = "KONEC-Strzemiona"
	layerText     = "KONEC-Wymiary"

	supportDepth = 200.0
	textHeight   = 100.0
	rowHeight    = 150.0
)

type labels struct {
	section, schedule, mark, diameter, length, quantity, total, totalMass, make string
}

var drawingLabels = map[string]labels{
	"pl": {"A-A", "Zestawienie stali", "Nr", "Śr.", "Dł. [mm]", "Szt.", "Razem [m]", "Masa całkowita [kg]", "Wykonać %d szt."},
	"en": {"A-A", "Steel schedule", "No.", "Dia.", "L [mm]", "Qty", "Total [m]", "Total mass [kg]", "Make %d pcs"},
	"de": {"A-A", "Stahlliste", "Nr.", "Dm.", "L [mm]", "Stk.", "Gesamt [m]", "Gesamtmasse [kg]", "%d Stk. herstellen"},
}

// Render draws the elevation with bars and stirrups, the cross section and the steel bill, and
// returns the DXF file contents. r must come from Design(in).
func Render(in domain.BeamInput, r domain.BeamReinforcement) ([]byte, error) {
	in = withDefaults(in)
	lbl, ok := drawingLabels[in.Language]
	if !ok {
		lbl = drawingLabels[DefaultLanguage]
	}

	d := dxf.NewDrawing()
	for _, l := range []struct {
		name string
		cl   color.ColorNumber
	}{
		{layerOutline, color.Green},
		{layerBars, color.Red},
		{layerStirrups, color.Magenta},
		{layerText, color.Cyan},
	} {
		if _, err := d.AddLayer(l.name, l.cl, dxf.DefaultLineType, false); err != nil {
			return nil, fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	var err error
	use := func(layer string) {
		if err == nil {
			err = d.ChangeLayer(layer)
		}
	}
	line := func(x1, y1, x2, y2 float64) {
		if err == nil {
			_, err = d.Line(x1, y1, 0, x2, y2, 0)
		}
	}
	polyline := func(pts ...[2]float64) {
		for i := 1; i < len(pts); i++ {
			line(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1])
		}
	}
	rect := func(x, y, w, h float64) {
		polyline([2]float64{x, y}, [2]float64{x + w, y}, [2]float64{x + w, y + h}, [2]float64{x, y + h}, [2]float64{x, y})
	}
	circle := func(x, y, radius float64) {
		if err == nil {
			_, err = d.Circle(x, y, 0, radius)
		}
	}
	text := func(s string, x, y float64) {
		if err == nil {
			_, err = d.Text(s, x, y, 0, textHeight)
		}
	}

	total := in.TotalLength()
	cover := in.Cover

	// Elevation with supports.
	use(layerOutline)
	rect(0, 0, total, in.Height)
	rect(0, -supportDepth, float64(in.SupportLeft), supportDepth)
	rect(float64(in.SupportLeft)+in.Span, -supportDepth, float64(in.SupportRight), supportDepth)
	text(in.Name, 0, in.Height+2*textHeight)

	use(layerBars)
	dt := float64(in.Top.Diameter)
	topAxis := in.Height - float64(cover.Top) - float64(in.StirrupDiameter) - dt/2
	topLeft := float64(cover.ViewLeft) + dt/2
	topRight := total - float64(cover.ViewRight) - dt/2
	polyline(
		[2]float64{topLeft, float64(cover.Bottom)},
		[2]float64{topLeft, topAxis},
		[2]float64{topRight, topAxis},
		[2]float64{topRight, float64(cover.Bottom)},
	)
	bottomAxis := float64(cover.Bottom) + float64(in.StirrupDiameter) + float64(in.Bottom.Diameter)/2
	line(float64(cover.ViewLeft), bottomAxis, total-float64(cover.ViewRight), bottomAxis)

	use(layerStirrups)
	for _, p := range r.StirrupPositions {
		x := float64(in.SupportLeft) + p
		line(x, float64(cover.Bottom), x, in.Height-float64(cover.Top))
	}

	// Cross section.
	sx := total + 500
	use(layerOutline)
	rect(sx, 0, in.Width, in.Height)
	text(lbl.section, sx, in.Height+2*textHeight)

	use(layerStirrups)
	ds := float64(in.StirrupDiameter)
	rect(sx+float64(cover.Left)+ds/2, float64(cover.Bottom)+ds/2,
		in.Width-float64(cover.Left)-float64(cover.Right)-ds,
		in.Height-float64(cover.Top)-float64(cover.Bottom)-ds)

	use(layerBars)
	for _, b := range sectionBars(in, in.Top, r.TopLayout, true) {
		circle(sx+b[0], b[1], dt/2)
	}
	for _, b := range sectionBars(in, in.Bottom, r.BottomLayout, false) {
		circle(sx+b[0], b[1], float64(in.Bottom.Diameter)/2)
	}

	// Steel bill below the elevation.
	use(layerText)
	y := -supportDepth - 3*rowHeight
	text(lbl.schedule+" - "+in.Name+" - "+fmt.Sprintf(lbl.make, r.Bill.Elements), 0, y)
	y -= rowHeight
	text(fmt.Sprintf("%s | %s | %s | %s | %s", lbl.mark, lbl.diameter, lbl.length, lbl.quantity, lbl.total), 0, y)
	for _, m := range r.Bill.Bars {
		y -= rowHeight
		text(fmt.Sprintf("%d | %d %s | %d | %d | %.2f", m.Number, m.Diameter, m.SteelGrade,
			m.LengthMM, m.QuantityTotal, m.TotalLengthM), 0, y)
	}
	for _, c := range r.Bill.Columns {
		y -= rowHeight
		text(fmt.Sprintf("%s %d: %.2f m x %.3f kg/m = %.1f kg", c.SteelGrade, c.Diameter,
			c.TotalLengthM, c.MassPerMeterKg, c.MassKg), 0, y)
	}
	y -= rowHeight
	text(fmt.Sprintf("%s: %.1f", lbl.totalMass, r.Bill.TotalMassKg), 0, y)

	if err != nil {
		return nil, fmt.Errorf("failed to draw beam: %w", err)
	}
	return save(d.SaveAs)
}

// save runs the library's file writer against a temporary file and returns its contents.
func save(saveAs func(path string) error) ([]byte, error) {
	f, err := os.CreateTemp("", "beam-*.dxf")
	if err != nil {
		return nil, fmt.Errorf("failed to create drawing file: %w", err)
	}
	path := f.Name()
	_ = f.Close()
	defer os.Remove(path)

	if err := saveAs(path); err != nil {
		return nil, fmt.Errorf("failed to write drawing: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read drawing: %w", err)
	}
	return data, nil
}

// sectionBars returns bar centres relative to the bottom-left corner of the section. The first
// row is spread between the row limits and the second row sits one pitch further inside.
func sectionBars(in domain.BeamInput, set domain.BarSet, layout domain.BarLayout, top bool) [][2]float64 {
	d := float64(set.Diameter)
	ds := float64(in.StirrupDiameter)
	pitch := BarPitch(set.Diameter, defaultAggregate)

	offset := float64(in.Cover.Bottom) + ds + d/2
	if top {
		offset = float64(in.Cover.Top) + ds + d/2
	}
	level := func(depth float64) float64 {
		if top {
			return in.Height - depth
		}
		return depth
	}

	var bars [][2]float64
	left, right := rowLimits(in, set.Diameter)
	bars = append(bars, spread(left, right, layout.FirstRow, level(offset))...)
	if layout.SecondRow > 0 {
		l, r := secondRowLimits(in, set.Diameter)
		if layout.SecondRow == 1 {
			r = l
		}
		bars = append(bars, spread(l, r, layout.SecondRow, level(offset+pitch))...)
	}
	return bars
}

func spread(left, right float64, n int, y float64) [][2]float64 {
	if n == 1 {
		return [][2]float64{{left, y}}
	}
	out := make([][2]float64, n)
	for i := range n {
		out[i] = [2]float64{left + (right-left)/float64(n-1)*float64(i), y}
	}
	return out
}
