package model

import "time"

// Pet is a pet profile owned by a user. ImagePath is the storage key of the
// pet photo, not a URL; read paths exchange it for a signed URL.
type Pet struct {
	ID             string    `json:"id"`
	PetName        string    `json:"petName"`
	Sex            string    `json:"sex"`
	Breed          string    `json:"breed"`
	Weight         float64   `json:"weight"`
	DateOfBirth    time.Time `json:"dateOfBirth"`
	MedicCondition string    `json:"medicCondition"`
	Markings       string    `json:"markings"`
	CoatColor      string    `json:"coatColor"`
	OwnerID        string    `json:"ownerId"`
	ImagePath      string    `json:"-"`
}

// PetUpdate carries a partial pet update; nil fields are left unchanged.
type PetUpdate struct {
	PetName        *string
	Sex            *string
	Breed          *string
	Weight         *float64
	DateOfBirth    *time.Time
	MedicCondition *string
	Markings       *string
	CoatColor      *string
	ImagePath      *string
}
