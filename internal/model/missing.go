package model

import "time"

// MissingReport is a lost-pet report. Active is the sole state flag: a pet has
// at most one active report at a time, and an inactive (found) report is never
// reactivated or deleted. SightingIDs is append-only.
type MissingReport struct {
	ID                  string    `json:"id"`
	PetID               string    `json:"petId"`
	OwnerID             string    `json:"ownerId"`
	Active              bool      `json:"active"`
	LastSeenAt          time.Time `json:"lastSeenDateTime"`
	LastSeenDescription string    `json:"lastSeenDescription"`
	LastSeenImagePath   string    `json:"-"`
	LastSeenLocation    GeoPoint  `json:"lastSeenLocation"`
	PublishedAt         time.Time `json:"publishedTime"`
	SightingIDs         []string  `json:"sightingIds"`
}
