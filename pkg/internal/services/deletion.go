package services

import (
	"errors"

	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Cascading deletion coordinator. Removing a post or an account touches
// several independently stored collections; every step here is idempotent and
// safe under concurrent re-entry, so a retried deletion never errors on
// references that are already gone. There is no cross-collection transaction
// and no compensating rollback: a failed step surfaces as a dependency
// failure with the completed steps left in place.

// DeletePost removes a post after clearing every reference to it: the owner's
// authored list, every account's saved set, the attached comments and the
// stored media object.
func DeletePost(actorID, postID uint) error {
	post, err := GetPost(postID)
	if err != nil {
		return err
	}
	if post.AccountID != actorID {
		return newError(KindForbidden, "you are not authorized to delete this post")
	}

	return cascadePostDeletion(post)
}

func cascadePostDeletion(post models.Post) error {
	log.Debug().Uint("post", post.ID).Msg("Cascading post deletion...")

	// owner's authored list; the owner may already be mid-deletion
	err := mutateAccountIfPresent(post.AccountID, func(record *models.Account) error {
		record.Posts = lo.Filter(record.Posts, func(id uint, _ int) bool {
			return id != post.ID
		})
		return nil
	})
	if err != nil {
		return wrapDependency("unable to detach post from its author", err)
	}
	InvalidatePublicAccount(post.AccountID)

	// every saved set that still references the post
	if err := pullFromAccountSets("saved_posts", post.ID, func(record *models.Account) {
		record.SavedPosts = lo.Filter(record.SavedPosts, func(id uint, _ int) bool {
			return id != post.ID
		})
	}); err != nil {
		return wrapDependency("unable to clear saved references", err)
	}

	if err := database.C.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
		return wrapDependency("unable to delete post comments", err)
	}

	if len(post.MediaObjectID) > 0 && Media != nil {
		if err := Media.Release(post.MediaObjectID); err != nil {
			return wrapDependency("unable to release media object", err)
		}
	}

	if err := database.C.Delete(&models.Post{}, post.ID).Error; err != nil {
		return wrapDependency("unable to delete post", err)
	}

	return nil
}

// DeleteAccount removes an account and every reference to it, its posts and
// its comments. The authored post and comment IDs are snapshotted up front so
// the cleanup does not chase a moving target; the steps then run
// independently of each other.
func DeleteAccount(actorID uint) error {
	if _, err := GetAccount(actorID); err != nil {
		return err
	}

	var postIDs []uint
	if err := database.C.Model(&models.Post{}).
		Where("account_id = ?", actorID).
		Pluck("id", &postIDs).Error; err != nil {
		return wrapDependency("unable to snapshot authored posts", err)
	}
	var commentIDs []uint
	if err := database.C.Model(&models.Comment{}).
		Where("account_id = ?", actorID).
		Pluck("id", &commentIDs).Error; err != nil {
		return wrapDependency("unable to snapshot authored comments", err)
	}

	log.Debug().Uint("account", actorID).
		Int("posts", len(postIDs)).
		Int("comments", len(commentIDs)).
		Msg("Cascading account deletion...")

	var group errgroup.Group

	group.Go(func() error {
		// full post cascade per authored post, so saved references and media
		// objects go with them
		for _, id := range postIDs {
			post, err := GetPost(id)
			if IsKind(err, KindNotFound) {
				continue
			} else if err != nil {
				return err
			}
			if err := cascadePostDeletion(post); err != nil {
				return err
			}
		}
		return nil
	})

	group.Go(func() error {
		return database.C.Where("account_id = ?", actorID).Delete(&models.Comment{}).Error
	})

	group.Go(func() error {
		if len(postIDs) == 0 {
			return nil
		}
		return database.C.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error
	})

	group.Go(func() error {
		if err := database.C.
			Where("sender_id = ? OR receiver_id = ?", actorID, actorID).
			Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if len(postIDs) == 0 {
			return nil
		}
		return database.C.Where("post_id IN ?", postIDs).Delete(&models.Notification{}).Error
	})

	group.Go(func() error {
		if err := pullFromAccountSets("following", actorID, func(record *models.Account) {
			record.Following = lo.Filter(record.Following, func(id uint, _ int) bool {
				return id != actorID
			})
		}); err != nil {
			return err
		}
		return pullFromAccountSets("followers", actorID, func(record *models.Account) {
			record.Followers = lo.Filter(record.Followers, func(id uint, _ int) bool {
				return id != actorID
			})
		})
	})

	group.Go(func() error {
		return pullFromPostSets("likes", actorID, func(record *models.Post) {
			record.Likes = lo.Filter(record.Likes, func(id uint, _ int) bool {
				return id != actorID
			})
		})
	})

	group.Go(func() error {
		for _, commentID := range commentIDs {
			removed := commentID
			if err := pullFromPostSets("comments", removed, func(record *models.Post) {
				record.Comments = lo.Filter(record.Comments, func(id uint, _ int) bool {
					return id != removed
				})
			}); err != nil {
				return err
			}
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return wrapDependency("unable to cascade account deletion", err)
	}

	if err := database.C.Delete(&models.Account{}, actorID).Error; err != nil {
		return wrapDependency("unable to delete account", err)
	}
	InvalidatePublicAccount(actorID)

	return nil
}

// mutateAccountIfPresent applies a record mutation, treating an already
// deleted account as a completed step.
func mutateAccountIfPresent(id uint, fn func(record *models.Account) error) error {
	err := database.Mutate(id, fn)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func pullFromAccountSets(column string, id uint, edit func(record *models.Account)) error {
	var holders []models.Account
	if err := database.SliceContains(database.C, column, id).Find(&holders).Error; err != nil {
		return err
	}

	for _, holder := range holders {
		err := mutateAccountIfPresent(holder.ID, func(record *models.Account) error {
			edit(record)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func pullFromPostSets(column string, id uint, edit func(record *models.Post)) error {
	var holders []models.Post
	if err := database.SliceContains(database.C.Model(&models.Post{}), column, id).Find(&holders).Error; err != nil {
		return err
	}

	for _, holder := range holders {
		err := database.Mutate(holder.ID, func(record *models.Post) error {
			edit(record)
			return nil
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
