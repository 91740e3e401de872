package services

import (
	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/samber/lo"
)

// ToggleLike flips the actor's membership in the post's like set. Returns
// whether the post ends up liked. A repeated like removes the entry instead
// of duplicating it; self-likes are allowed but never notify.
func ToggleLike(actorID, postID uint) (bool, models.Post, error) {
	post, err := GetPost(postID)
	if err != nil {
		return false, post, err
	}

	isLiked := lo.Contains(post.Likes, actorID)

	err = database.Mutate(postID, func(record *models.Post) error {
		if isLiked {
			record.Likes = lo.Filter(record.Likes, func(id uint, _ int) bool {
				return id != actorID
			})
		} else if !lo.Contains(record.Likes, actorID) {
			record.Likes = append(record.Likes, actorID)
		}
		return nil
	})
	if err != nil {
		return isLiked, post, wrapDependency("unable to update post likes", err)
	}

	if !isLiked && post.AccountID != actorID {
		Notify(models.Notification{
			Type:       models.NotificationTypeLike,
			SenderID:   actorID,
			ReceiverID: post.AccountID,
			PostID:     &post.ID,
		})
	}

	post, err = GetPost(postID)
	return !isLiked, post, err
}

// ToggleSave flips the post's membership in the actor's saved set. Saves are
// a property of the viewer, not the content; the post record is untouched.
func ToggleSave(actorID, postID uint) (bool, models.Account, error) {
	account, err := GetAccount(actorID)
	if err != nil {
		return false, account, err
	}
	post, err := GetPost(postID)
	if err != nil {
		return false, account, err
	}

	isSaved := lo.Contains(account.SavedPosts, postID)

	err = database.Mutate(actorID, func(record *models.Account) error {
		if isSaved {
			record.SavedPosts = lo.Filter(record.SavedPosts, func(id uint, _ int) bool {
				return id != postID
			})
		} else if !lo.Contains(record.SavedPosts, postID) {
			record.SavedPosts = append(record.SavedPosts, postID)
		}
		return nil
	})
	if err != nil {
		return isSaved, account, wrapDependency("unable to update saved posts", err)
	}

	if !isSaved && post.AccountID != actorID {
		Notify(models.Notification{
			Type:       models.NotificationTypeSave,
			SenderID:   actorID,
			ReceiverID: post.AccountID,
			PostID:     &post.ID,
		})
	}

	account, err = GetAccount(actorID)
	return !isSaved, account, err
}
