package services

import (
	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/samber/lo"
)

// AddComment attaches a comment to a post and appends its ID to the post's
// weak comment list. The returned comment carries the author's public
// projection.
func AddComment(actorID, postID uint, text string) (models.Comment, error) {
	var comment models.Comment

	if len(text) == 0 {
		return comment, newError(KindValidation, "comment text is required")
	}

	post, err := GetPost(postID)
	if err != nil {
		return comment, err
	}
	author, err := GetPublicAccount(actorID)
	if err != nil {
		return comment, err
	}

	comment = models.Comment{
		Text:      text,
		AccountID: actorID,
		PostID:    postID,
	}
	if err := database.C.Create(&comment).Error; err != nil {
		return comment, wrapDependency("unable to create comment", err)
	}

	err = database.Mutate(postID, func(record *models.Post) error {
		if !lo.Contains(record.Comments, comment.ID) {
			record.Comments = append(record.Comments, comment.ID)
		}
		return nil
	})
	if err != nil {
		return comment, wrapDependency("unable to attach comment to post", err)
	}

	if post.AccountID != actorID {
		Notify(models.Notification{
			Type:       models.NotificationTypeComment,
			SenderID:   actorID,
			ReceiverID: post.AccountID,
			PostID:     &post.ID,
			CommentID:  &comment.ID,
		})
	}

	comment.Author = &author
	return comment, nil
}
