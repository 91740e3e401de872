package models

import "gorm.io/datatypes"

// Post is a published photo. AccountID is the owner and immutable after
// creation. Likes is a set of account IDs; Comments is the ordered list of
// comment IDs, a weak reference kept in sync by the deletion cascades.
type Post struct {
	BaseModel

	Caption   string `json:"caption"`
	MediaURL  string `json:"media_url"`
	AccountID uint   `json:"account_id" gorm:"index"`

	// MediaObjectID is the media store handle, resolved again at deletion time.
	MediaObjectID string `json:"-"`

	Likes    datatypes.JSONSlice[uint] `json:"likes"`
	Comments datatypes.JSONSlice[uint] `json:"comments"`

	Author      *PublicAccount `json:"author,omitempty" gorm:"-"`
	CommentList []Comment      `json:"comment_list,omitempty" gorm:"-"`
}

// PostDigest is the minimal projection referenced from notifications.
type PostDigest struct {
	ID       uint   `json:"id"`
	Caption  string `json:"caption"`
	MediaURL string `json:"media_url"`
}

func (v Post) Digest() PostDigest {
	return PostDigest{
		ID:       v.ID,
		Caption:  v.Caption,
		MediaURL: v.MediaURL,
	}
}
