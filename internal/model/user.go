package model

// User is a registered account profile. The ID is the uid assigned by the
// external identity provider, so login credentials and the profile document
// share one key.
type User struct {
	ID             string `json:"id"`
	UserName       string `json:"userName"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	PhoneNumber    string `json:"phoneNumber"`
	Status         string `json:"status"`
	ProfilePicPath string `json:"profilePicPath"`
}

// UserUpdate carries a partial profile update; nil fields are left unchanged.
type UserUpdate struct {
	UserName       *string
	Address        *string
	PhoneNumber    *string
	Status         *string
	ProfilePicPath *string
}
