// Package domain defines the core domain types and interfaces.
//
// Concept-oriented files (beam.go, building.go, concrete.go, rate_limit.go, errors.go) hold shared
// types and the interfaces that adapters implement. No implementation code lives here.
package domain
