package beam

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mogiel/konec/internal/domain"
)

const (
	DefaultName     = "Belka"
	DefaultLanguage = "pl"

	maxNameLength = 20
	// Characters a file name may not contain on common systems.
	forbiddenNameChars = `/\:*?"<>|`
)

var languages = map[string]string{
	"pl":  "pl",
	"en":  "en",
	"eng": "en",
	"de":  "de",
}

// Design validates the beam and computes its stirrups, section bar rows and steel bill.
func Design(in domain.BeamInput) (domain.BeamReinforcement, error) {
	in = withDefaults(in)
	if err := Validate(in); err != nil {
		return domain.BeamReinforcement{}, err
	}

	stirrups := layoutStirrups(in)
	top := layoutBars(in, in.Top)
	bottom := layoutBars(in, in.Bottom)

	warnings := []string{}
	if stirrups.spacing != in.SecondarySpacing {
		warnings = append(warnings, fmt.Sprintf("secondary stirrup spacing reduced from %d mm to %d mm",
			in.SecondarySpacing, stirrups.spacing))
	}
	if !top.Fits {
		warnings = append(warnings, "top bars do not fit in two rows, enlarge the section or change the bars")
	}
	if !bottom.Fits {
		warnings = append(warnings, "bottom bars do not fit in two rows, enlarge the section or change the bars")
	}

	return domain.BeamReinforcement{
		Name:                    in.Name,
		SecondaryStirrupSpacing: stirrups.spacing,
		EndClearance:            roundTo(stirrups.clearance, 1),
		StirrupPositions:        stirrups.positions,
		SecondRowStirrups:       stirrups.secondRow,
		DimensionPoints:         stirrups.dimensionPoints,
		TopLayout:               top,
		BottomLayout:            bottom,
		Bill:                    buildBill(in, len(stirrups.positions)),
		Warnings:                warnings,
	}, nil
}

func withDefaults(in domain.BeamInput) domain.BeamInput {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		in.Name = DefaultName
	}
	if in.Elements == 0 {
		in.Elements = 1
	}
	lang := strings.ToLower(strings.TrimSpace(in.Language))
	if lang == "" {
		lang = DefaultLanguage
	}
	if canonical, ok := languages[lang]; ok {
		lang = canonical
	}
	in.Language = lang
	return in
}

type bound struct {
	field    string
	value    float64
	min, max float64
}

// Validate checks the ranges the drawing supports. Field names match the request fields.
func Validate(in domain.BeamInput) error {
	bounds := []bound{
		{"first_row_stirrup_spacing_left", float64(in.FirstRowLeft.Spacing), 0, 400},
		{"first_row_stirrup_spacing_right", float64(in.FirstRowRight.Spacing), 0, 400},
		{"first_row_stirrup_range_left", float64(in.FirstRowLeft.Range), 0, 15000},
		{"first_row_stirrup_range_right", float64(in.FirstRowRight.Range), 0, 15000},
		{"number_of_elements", float64(in.Elements), 1, 1000},
		{"cover_left", float64(in.Cover.Left), 5, 100},
		{"cover_right", float64(in.Cover.Right), 5, 100},
		{"cover_top", float64(in.Cover.Top), 5, 100},
		{"cover_bottom", float64(in.Cover.Bottom), 5, 100},
		{"cover_view_left", float64(in.Cover.ViewLeft), 5, 100},
		{"cover_view_right", float64(in.Cover.ViewRight), 5, 100},
		{"beam_width", in.Width, 100, 1000},
		{"beam_height", in.Height, 100, 1500},
		{"diameter_main_top", float64(in.Top.Diameter), 1, 100},
		{"diameter_main_bottom", float64(in.Bottom.Diameter), 1, 100},
		{"diameter_stirrup", float64(in.StirrupDiameter), 1, 100},
		{"quantity_main_top", float64(in.Top.Quantity), 1, 40},
		{"quantity_main_bottom", float64(in.Bottom.Quantity), 1, 40},
		{"width_support_left", float64(in.SupportLeft), 50, 1000},
		{"width_support_right", float64(in.SupportRight), 50, 1000},
		{"secondary_stirrup_spacing", float64(in.SecondarySpacing), 0, 400},
	}
	for _, b := range bounds {
		if b.value < b.min || b.value > b.max {
			return fmt.Errorf("%w: %s must be between %g and %g, got %g",
				domain.ErrInvalidBeamInput, b.field, b.min, b.max, b.value)
		}
	}

	if in.Span <= 300 || in.Span > 15000 {
		return fmt.Errorf("%w: beam_span must be above 300 and at most 15000, got %g",
			domain.ErrInvalidBeamInput, in.Span)
	}
	if in.Span-float64(in.FirstRowLeft.Range)-float64(in.FirstRowRight.Range) < 0 {
		return fmt.Errorf("%w: first-row stirrup ranges exceed the beam span", domain.ErrInvalidBeamInput)
	}
	if SecondarySpacing(in.SecondarySpacing, in.Height) < spacingStep {
		return fmt.Errorf("%w: secondary_stirrup_spacing must be at least %d mm",
			domain.ErrInvalidBeamInput, spacingStep)
	}

	labels := []struct{ field, value string }{
		{"name", in.Name},
		{"steel_grade_main_top", in.Top.SteelGrade},
		{"steel_grade_main_bottom", in.Bottom.SteelGrade},
		{"steel_grade_stirrup", in.StirrupGrade},
	}
	for _, l := range labels {
		if err := validateLabel(l.field, l.value); err != nil {
			return err
		}
	}

	if _, ok := languages[in.Language]; !ok {
		return fmt.Errorf("%w: language must be one of pl, en, de, got %q", domain.ErrInvalidBeamInput, in.Language)
	}
	return nil
}

// validateLabel accepts text that can become part of a file name.
func validateLabel(field, v string) error {
	switch {
	case v == "":
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidBeamInput, field)
	case utf8.RuneCountInString(v) > maxNameLength:
		return fmt.Errorf("%w: %s must be at most %d characters", domain.ErrInvalidBeamInput, field, maxNameLength)
	case strings.ContainsAny(v, forbiddenNameChars):
		return fmt.Errorf("%w: %s must not contain any of %s", domain.ErrInvalidBeamInput, field, forbiddenNameChars)
	}
	return nil
}
