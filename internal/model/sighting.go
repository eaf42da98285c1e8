package model

import "time"

// Sighting is a reported sighting of a missing pet. Immutable once created;
// its id is appended to the parent report's sighting list.
type Sighting struct {
	ID          string    `json:"id"`
	MissingID   string    `json:"missingId"`
	ReporterID  string    `json:"reporterId"`
	OccurredAt  time.Time `json:"sightingDateTime"`
	Description string    `json:"sightingDescription"`
	ImagePath   string    `json:"-"`
	Location    GeoPoint  `json:"sightingLocation"`
}
