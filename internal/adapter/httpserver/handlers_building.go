package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mogiel/konec/internal/building"
	"github.com/mogiel/konec/internal/domain"
	apperrors "github.com/mogiel/konec/internal/platform/errors"
)

// buildingCategoryRequest accepts the current field names and the calculator form's legacy ones.
type buildingCategoryRequest struct {
	UsageClass        json.Number `json:"usageClass" form:"usageClass"`
	Height            json.Number `json:"height" form:"height"`
	Storeys           json.Number `json:"storeys" form:"storeys"`
	FirstStoreyHeight json.Number `json:"firstStoreyHeight" form:"firstStoreyHeight"`

	ValueZL    json.Number `json:"valueZL" form:"valueZL"`
	ValueH     json.Number `json:"valueH" form:"valueH"`
	ValueCount json.Number `json:"valueCount" form:"valueCount"`
	ValueFirst json.Number `json:"valueFirst" form:"valueFirst"`
}

type buildingCategoryResponse struct {
	domain.BuildingCategory
	IsReducible bool   `json:"reducible"`
	Summary     string `json:"summary"`
}

func (s *Server) handleBuildingCategory(c echo.Context) error {
	var req buildingCategoryRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	in, err := req.toInput()
	if err != nil {
		return err
	}

	category, err := building.Classify(in)
	if errors.Is(err, domain.ErrInvalidBuildingInput) {
		return apperrors.ValidationError(err.Error())
	}
	if err != nil {
		return apperrors.InternalError("failed to classify building", err)
	}

	resp := buildingCategoryResponse{
		BuildingCategory: category,
		IsReducible:      category.Reducible(),
		Summary:          building.Summary(category),
	}
	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to write building category response: %w", err)
	}
	return nil
}

func (r buildingCategoryRequest) toInput() (domain.BuildingInput, error) {
	usage, err := requiredInt("usageClass", r.UsageClass, r.ValueZL)
	if err != nil {
		return domain.BuildingInput{}, err
	}
	height, err := requiredFloat("height", r.Height, r.ValueH)
	if err != nil {
		return domain.BuildingInput{}, err
	}
	storeys, err := requiredInt("storeys", r.Storeys, r.ValueCount)
	if err != nil {
		return domain.BuildingInput{}, err
	}
	first, err := requiredFloat("firstStoreyHeight", r.FirstStoreyHeight, r.ValueFirst)
	if err != nil {
		return domain.BuildingInput{}, err
	}

	return domain.BuildingInput{
		UsageClass:        usage,
		HeightMeters:      height,
		Storeys:           storeys,
		FirstStoreyHeight: first,
	}, nil
}

// requiredFloat reads the current field, falling back to its legacy alias.
func requiredFloat(field string, current, legacy json.Number) (float64, error) {
	raw := current
	if raw == "" {
		raw = legacy
	}
	if raw == "" {
		return 0, apperrors.ValidationError(field + " is required")
	}
	v, err := strconv.ParseFloat(raw.String(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.ValidationError(field + " must be a number").WithContext("value", raw.String())
	}
	return v, nil
}

func requiredInt(field string, current, legacy json.Number) (int, error) {
	v, err := requiredFloat(field, current, legacy)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, apperrors.ValidationError(field + " must be a whole number")
	}
	return int(v), nil
}
