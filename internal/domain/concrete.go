package domain

import "context"

// ConcreteClass is one row of the Eurocode 2 concrete strength table.
// Stresses are in MPa, Ecm in GPa and strains in per mille.
type ConcreteClass struct {
	Name     string  `json:"name" yaml:"name"`
	Fck      int     `json:"fck" yaml:"fck"`
	FckCube  int     `json:"fck_cube" yaml:"fck_cube"`
	Fcm      int     `json:"fcm" yaml:"fcm"`
	Fctm     float64 `json:"fctm" yaml:"fctm"`
	Fctk005  float64 `json:"fctk_0_05" yaml:"fctk_0_05"`
	Fctk095  float64 `json:"fctk_0_95" yaml:"fctk_0_95"`
	Ecm      int     `json:"ecm" yaml:"ecm"`
	EpsC1    float64 `json:"eps_c1" yaml:"eps_c1"`
	EpsCU1   float64 `json:"eps_cu1" yaml:"eps_cu1"`
	EpsC2    float64 `json:"eps_c2" yaml:"eps_c2"`
	EpsCU2   float64 `json:"eps_cu2" yaml:"eps_cu2"`
	N        float64 `json:"n" yaml:"n"`
	EpsC3    float64 `json:"eps_c3" yaml:"eps_c3"`
	EpsCU3   float64 `json:"eps_cu3" yaml:"eps_cu3"`
}

// ConcreteRepository reads concrete strength classes ordered by fck.
type ConcreteRepository interface {
	List(ctx context.Context) ([]ConcreteClass, error)
	Get(ctx context.Context, name string) (*ConcreteClass, error)
}
