package model

// Adoption is a pet listed for adoption. Contact fields are denormalized from
// the lister's profile at write time. ImagePaths is an ordered list of storage
// keys.
type Adoption struct {
	ID           string   `json:"id"`
	PetName      string   `json:"petName"`
	Sex          string   `json:"sex"`
	Breed        string   `json:"breed"`
	Age          string   `json:"age"`
	Species      string   `json:"species"`
	Description  string   `json:"description"`
	CoatColor    string   `json:"coatColor"`
	ImagePaths   []string `json:"-"`
	OwnerID      string   `json:"ownerId"`
	ContactName  string   `json:"contactName"`
	ContactPhone string   `json:"contactPhone"`
	ContactEmail string   `json:"contactEmail"`
}
