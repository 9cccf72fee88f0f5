package concrete

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"github.com/mogiel/konec/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type catalogFile struct {
	Classes []domain.ConcreteClass `yaml:"classes"`
}

// LoadEmbedded parses the built-in catalog.
func LoadEmbedded() ([]domain.ConcreteClass, error) {
	return Parse(embeddedCatalog)
}

// Parse decodes a catalog document, validates it and orders the classes by fck.
func Parse(data []byte) ([]domain.ConcreteClass, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse concrete catalog: %w", err)
	}
	if len(file.Classes) == 0 {
		return nil, errors.New("concrete catalog is empty")
	}

	seen := make(map[string]struct{}, len(file.Classes))
	for i, c := range file.Classes {
		name, err := NormalizeName(c.Name)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate class %s", i, name)
		}
		if c.Fck <= 0 || c.FckCube < c.Fck {
			return nil, fmt.Errorf("catalog entry %s: inconsistent strengths fck=%d fck_cube=%d", name, c.Fck, c.FckCube)
		}
		seen[name] = struct{}{}
		file.Classes[i].Name = name
	}

	slices.SortFunc(file.Classes, func(a, b domain.ConcreteClass) int { return a.Fck - b.Fck })
	return file.Classes, nil
}
