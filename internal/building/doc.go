// Package building determines the fire resistance class a building must meet, from its
// human-occupancy hazard category (ZL I–V), height and number of storeys.
package building
