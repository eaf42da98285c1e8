package model

import "time"

// Location is a cached physical place, deduplicated by exact coordinate match.
type Location struct {
	ID        string  `json:"locationId"`
	Latitude  float64 `json:"locationLatitude"`
	Longitude float64 `json:"locationLongitude"`
	Address   string  `json:"locationAddress"`
}

// Amenity is a cached place-search result, uniquely keyed by the external
// place id. CachedAt drives the 24-hour staleness sweep.
type Amenity struct {
	AmenityID     string          `json:"amenityId"`
	Name          string          `json:"amenityName"`
	OpenNow       bool            `json:"openNow"`
	OpeningHours  []OpeningPeriod `json:"openingHours"`
	ContactNumber string          `json:"contactNumber"`
	Website       string          `json:"websiteURL"`
	Rating        float64         `json:"rating"`
	Photo         string          `json:"photo"`
	LocationID    string          `json:"locationId"`
	CachedAt      time.Time       `json:"timestamp"`
}
