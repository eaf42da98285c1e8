// Package model contains the persisted domain models. These are pure data
// structures with no database-specific dependencies or tags; they can be used
// across layers (HTTP, service, storage) without coupling to persistence.
package model

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DayTime is a day-of-week (0 = Sunday, -1 = unknown) plus an "HHMM" clock
// string as reported by the places API.
type DayTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// OpeningPeriod is one open/close pair of a weekly opening-hours schedule.
// Close may be nil for places that never close.
type OpeningPeriod struct {
	Open  *DayTime `json:"open"`
	Close *DayTime `json:"close"`
}
