package models

import "gorm.io/datatypes"

// Account is a member of the network. The follow graph and the saved posts
// live on the record itself as ID sets; Posts is the ordered list of authored
// post IDs. None of the sets may contain the owner's own ID.
type Account struct {
	BaseModel

	Name     string `json:"name"`
	Username string `json:"username" gorm:"uniqueIndex"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`

	Followers  datatypes.JSONSlice[uint] `json:"followers"`
	Following  datatypes.JSONSlice[uint] `json:"following"`
	Posts      datatypes.JSONSlice[uint] `json:"posts"`
	SavedPosts datatypes.JSONSlice[uint] `json:"saved_posts"`

	IsVerified bool `json:"is_verified"`

	// CredentialState is owned by the credential service and opaque here.
	// It never leaves this service in a response.
	CredentialState datatypes.JSONMap `json:"-"`
}

// PublicAccount is the minimal projection embedded in listings and
// notifications.
type PublicAccount struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Avatar    string `json:"avatar"`
	Bio       string `json:"bio"`
	PostCount int    `json:"post_count"`
}

func (v Account) ToPublic() PublicAccount {
	return PublicAccount{
		ID:        v.ID,
		Name:      v.Name,
		Username:  v.Username,
		Avatar:    v.Avatar,
		Bio:       v.Bio,
		PostCount: len(v.Posts),
	}
}
