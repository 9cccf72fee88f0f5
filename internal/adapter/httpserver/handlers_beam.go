package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mogiel/konec/internal/beam"
	"github.com/mogiel/konec/internal/domain"
	apperrors "github.com/mogiel/konec/internal/platform/errors"
)

// beamRequest uses the calculator form's field names for both JSON and form posts.
type beamRequest struct {
	Name         string      `json:"name" form:"name"`
	Span         json.Number `json:"beam_span" form:"beam_span"`
	Height       json.Number `json:"beam_height" form:"beam_height"`
	Width        json.Number `json:"beam_width" form:"beam_width"`
	SupportLeft  json.Number `json:"width_support_left" form:"width_support_left"`
	SupportRight json.Number `json:"width_support_right" form:"width_support_right"`

	TopDiameter    json.Number `json:"diameter_main_top" form:"diameter_main_top"`
	TopQuantity    json.Number `json:"quantity_main_top" form:"quantity_main_top"`
	TopGrade       string      `json:"steel_grade_main_top" form:"steel_grade_main_top"`
	BottomDiameter json.Number `json:"diameter_main_bottom" form:"diameter_main_bottom"`
	BottomQuantity json.Number `json:"quantity_main_bottom" form:"quantity_main_bottom"`
	BottomGrade    string      `json:"steel_grade_main_bottom" form:"steel_grade_main_bottom"`
	StirrupDia     json.Number `json:"diameter_stirrup" form:"diameter_stirrup"`
	StirrupGrade   string      `json:"steel_grade_stirrup" form:"steel_grade_stirrup"`

	CoverTop       json.Number `json:"cover_top" form:"cover_top"`
	CoverBottom    json.Number `json:"cover_bottom" form:"cover_bottom"`
	CoverLeft      json.Number `json:"cover_left" form:"cover_left"`
	CoverRight     json.Number `json:"cover_right" form:"cover_right"`
	CoverViewLeft  json.Number `json:"cover_view_left" form:"cover_view_left"`
	CoverViewRight json.Number `json:"cover_view_right" form:"cover_view_right"`

	RangeLeft        json.Number `json:"first_row_stirrup_range_left" form:"first_row_stirrup_range_left"`
	RangeRight       json.Number `json:"first_row_stirrup_range_right" form:"first_row_stirrup_range_right"`
	SpacingLeft      json.Number `json:"first_row_stirrup_spacing_left" form:"first_row_stirrup_spacing_left"`
	SpacingRight     json.Number `json:"first_row_stirrup_spacing_right" form:"first_row_stirrup_spacing_right"`
	SecondarySpacing json.Number `json:"secondary_stirrup_spacing" form:"secondary_stirrup_spacing"`
	Elements         json.Number `json:"number_of_elements" form:"number_of_elements"`
	Language         string      `json:"language" form:"language"`
}

func (s *Server) handleBeam(c echo.Context) error {
	_, result, err := designBeam(c)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, result); err != nil {
		return fmt.Errorf("failed to write beam response: %w", err)
	}
	return nil
}

func (s *Server) handleBeamDXF(c echo.Context) error {
	in, result, err := designBeam(c)
	if err != nil {
		return err
	}

	data, err := beam.Render(in, result)
	if err != nil {
		return apperrors.InternalError("failed to render beam drawing", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.dxf"`, result.Name))
	if err := c.Blob(http.StatusOK, "application/dxf", data); err != nil {
		return fmt.Errorf("failed to write beam drawing: %w", err)
	}
	return nil
}

func designBeam(c echo.Context) (domain.BeamInput, domain.BeamReinforcement, error) {
	var req beamRequest
	if err := c.Bind(&req); err != nil {
		return domain.BeamInput{}, domain.BeamReinforcement{}, apperrors.ValidationError("invalid request body")
	}

	in, err := req.toInput()
	if err != nil {
		return domain.BeamInput{}, domain.BeamReinforcement{}, err
	}

	result, err := beam.Design(in)
	if errors.Is(err, domain.ErrInvalidBeamInput) {
		return in, domain.BeamReinforcement{}, apperrors.ValidationError(err.Error())
	}
	if err != nil {
		return in, domain.BeamReinforcement{}, apperrors.InternalError("failed to design beam", err)
	}
	return in, result, nil
}

func (r beamRequest) toInput() (domain.BeamInput, error) {
	var firstErr error
	float := func(field string, raw json.Number) float64 {
		if firstErr != nil {
			return 0
		}
		v, err := requiredFloat(field, raw, "")
		firstErr = err
		return v
	}
	integer := func(field string, raw json.Number) int {
		if firstErr != nil {
			return 0
		}
		v, err := requiredInt(field, raw, "")
		firstErr = err
		return v
	}
	// Zones and the element count may be left out of the form.
	optional := func(field string, raw json.Number) int {
		if strings.TrimSpace(raw.String()) == "" {
			return 0
		}
		return integer(field, raw)
	}

	in := domain.BeamInput{
		Name:         r.Name,
		Span:         float("beam_span", r.Span),
		Height:       float("beam_height", r.Height),
		Width:        float("beam_width", r.Width),
		SupportLeft:  integer("width_support_left", r.SupportLeft),
		SupportRight: integer("width_support_right", r.SupportRight),
		Top: domain.BarSet{
			Diameter:   integer("diameter_main_top", r.TopDiameter),
			Quantity:   integer("quantity_main_top", r.TopQuantity),
			SteelGrade: strings.TrimSpace(r.TopGrade),
		},
		Bottom: domain.BarSet{
			Diameter:   integer("diameter_main_bottom", r.BottomDiameter),
			Quantity:   integer("quantity_main_bottom", r.BottomQuantity),
			SteelGrade: strings.TrimSpace(r.BottomGrade),
		},
		StirrupDiameter: integer("diameter_stirrup", r.StirrupDia),
		StirrupGrade:    strings.TrimSpace(r.StirrupGrade),
		Cover: domain.BeamCover{
			Top:       integer("cover_top", r.CoverTop),
			Bottom:    integer("cover_bottom", r.CoverBottom),
			Left:      integer("cover_left", r.CoverLeft),
			Right:     integer("cover_right", r.CoverRight),
			ViewLeft:  integer("cover_view_left", r.CoverViewLeft),
			ViewRight: integer("cover_view_right", r.CoverViewRight),
		},
		FirstRowLeft: domain.StirrupZone{
			Range:   optional("first_row_stirrup_range_left", r.RangeLeft),
			Spacing: optional("first_row_stirrup_spacing_left", r.SpacingLeft),
		},
		FirstRowRight: domain.StirrupZone{
			Range:   optional("first_row_stirrup_range_right", r.RangeRight),
			Spacing: optional("first_row_stirrup_spacing_right", r.SpacingRight),
		},
		SecondarySpacing: integer("secondary_stirrup_spacing", r.SecondarySpacing),
		Elements:         optional("number_of_elements", r.Elements),
		Language:         r.Language,
	}
	if firstErr != nil {
		return domain.BeamInput{}, firstErr
	}
	return in, nil
}
