package models

// Comment belongs to its author and is attached to one post. Comments are
// never edited or deleted directly; only the deletion cascades remove them.
type Comment struct {
	BaseModel

	Text      string `json:"text"`
	AccountID uint   `json:"account_id" gorm:"index"`
	PostID    uint   `json:"post_id" gorm:"index"`

	Author *PublicAccount `json:"author,omitempty" gorm:"-"`
}

type CommentDigest struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

func (v Comment) Digest() CommentDigest {
	return CommentDigest{ID: v.ID, Text: v.Text}
}
