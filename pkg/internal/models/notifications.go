package models

const (
	NotificationTypeFollow  = "follow"
	NotificationTypeLike    = "like"
	NotificationTypeSave    = "save"
	NotificationTypeComment = "comment"
)

// Notification is a derived record written best-effort after a primary
// mutation. Every reference it carries is weak; a notification must never be
// the reason another entity cannot be deleted.
type Notification struct {
	BaseModel

	Type       string `json:"type"`
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `json:"receiver_id" gorm:"index"`
	PostID     *uint  `json:"post_id,omitempty"`
	CommentID  *uint  `json:"comment_id,omitempty"`
	IsRead     bool   `json:"is_read"`

	Sender  *PublicAccount `json:"sender,omitempty" gorm:"-"`
	Post    *PostDigest    `json:"post,omitempty" gorm:"-"`
	Comment *CommentDigest `json:"comment,omitempty" gorm:"-"`
}
