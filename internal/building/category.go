package building

import (
	"fmt"

	"github.com/mogiel/konec/internal/domain"
)

const (
	minUsageClass = 1
	maxUsageClass = 5

	// Single- and two-storey buildings below this height may use a lower class.
	reductionMaxHeight = 12.0
	// The ground storey of a reducible building may be at most this tall.
	reductionMaxFirstStorey = 9.0
)

// classTable is indexed by height group row and usage class ZL-1.
var classTable = map[domain.HeightGroup][maxUsageClass]domain.FireResistanceClass{
	domain.HeightGroupLow:        {"B", "B", "C", "D", "C"},
	domain.HeightGroupMediumHigh: {"B", "B", "B", "C", "B"},
	domain.HeightGroupHigh:       {"B", "B", "B", "B", "B"},
	domain.HeightGroupHighRise:   {"A", "A", "A", "B", "A"},
}

// Classify computes the height group, the table class and the permitted reduction.
func Classify(in domain.BuildingInput) (domain.BuildingCategory, error) {
	if err := validate(in); err != nil {
		return domain.BuildingCategory{}, err
	}

	group := HeightGroupOf(in.HeightMeters, in.Storeys)
	tableClass := classTable[group][in.UsageClass-1]
	reduced := reducedClass(in)

	category := tableClass
	if reduced != domain.NoReduction {
		category = reduced
	}

	return domain.BuildingCategory{
		HeightGroup:      group,
		HeightGroupLabel: group.Label(),
		TableClass:       tableClass,
		ReducedClass:     reduced,
		Category:         category,
	}, nil
}

// HeightGroupOf returns the first group whose height and storey limits both hold.
func HeightGroupOf(heightMeters float64, storeys int) domain.HeightGroup {
	switch {
	case heightMeters <= 12 && storeys <= 4:
		return domain.HeightGroupLow
	case heightMeters <= 25 && storeys <= 9:
		return domain.HeightGroupMediumHigh
	case heightMeters <= 55 && storeys <= 18:
		return domain.HeightGroupHigh
	default:
		return domain.HeightGroupHighRise
	}
}

func reducedClass(in domain.BuildingInput) domain.FireResistanceClass {
	if in.Storeys > 2 || in.HeightMeters >= reductionMaxHeight || in.UsageClass > 3 {
		return domain.NoReduction
	}
	if in.FirstStoreyHeight > reductionMaxFirstStorey {
		return domain.NoReduction
	}

	if in.Storeys == 1 {
		return "D"
	}
	if in.UsageClass == 3 {
		return "D"
	}
	return "C"
}

func validate(in domain.BuildingInput) error {
	switch {
	case in.UsageClass < minUsageClass || in.UsageClass > maxUsageClass:
		return fmt.Errorf("%w: usage class must be between %d and %d, got %d",
			domain.ErrInvalidBuildingInput, minUsageClass, maxUsageClass, in.UsageClass)
	case in.HeightMeters <= 0:
		return fmt.Errorf("%w: height must be positive", domain.ErrInvalidBuildingInput)
	case in.Storeys < 1:
		return fmt.Errorf("%w: storeys must be at least 1", domain.ErrInvalidBuildingInput)
	case in.FirstStoreyHeight < 0:
		return fmt.Errorf("%w: first storey height must not be negative", domain.ErrInvalidBuildingInput)
	}
	return nil
}

// Summary renders the result the way the calculator page shows it.
func Summary(c domain.BuildingCategory) string {
	return fmt.Sprintf("Kategoria obiektu: %s<br>Można obniżyć do klasy: %s<br>Grupa wysokościowa: %s",
		c.TableClass, c.ReducedClass, c.HeightGroupLabel)
}
