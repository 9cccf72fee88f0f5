// Package beam lays out the reinforcement of a simply supported rectangular reinforced concrete
// beam: stirrup positions along the span, longitudinal bar rows in the section, the steel bill
// with masses, and a DXF drawing of the result.
package beam
