package services

import (
	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// ToggleFollow flips the edge between actor and target. The two sides of the
// edge live on different records and are written independently; the graph may
// be one-sided inside this call but converges once both writes land. A failed
// side is reported as a dependency failure and the other side is not rolled
// back.
func ToggleFollow(actorID, targetID uint) (models.Account, error) {
	var updated models.Account

	if actorID == targetID {
		return updated, newError(KindInvalidOperation, "you cannot follow or unfollow yourself")
	}

	target, err := GetAccount(targetID)
	if err != nil {
		return updated, err
	}
	if _, err := GetAccount(actorID); err != nil {
		return updated, err
	}

	isFollowing := lo.Contains(target.Followers, actorID)

	var group errgroup.Group
	if isFollowing {
		group.Go(func() error {
			return database.Mutate(actorID, func(record *models.Account) error {
				record.Following = lo.Filter(record.Following, func(id uint, _ int) bool {
					return id != targetID
				})
				return nil
			})
		})
		group.Go(func() error {
			return database.Mutate(targetID, func(record *models.Account) error {
				record.Followers = lo.Filter(record.Followers, func(id uint, _ int) bool {
					return id != actorID
				})
				return nil
			})
		})
	} else {
		group.Go(func() error {
			return database.Mutate(actorID, func(record *models.Account) error {
				if !lo.Contains(record.Following, targetID) {
					record.Following = append(record.Following, targetID)
				}
				return nil
			})
		})
		group.Go(func() error {
			return database.Mutate(targetID, func(record *models.Account) error {
				if !lo.Contains(record.Followers, actorID) {
					record.Followers = append(record.Followers, actorID)
				}
				return nil
			})
		})
	}

	if err := group.Wait(); err != nil {
		return updated, wrapDependency("unable to update follow graph", err)
	}

	if !isFollowing {
		log.Debug().Uint("actor", actorID).Uint("target", targetID).Msg("Notifying account it got followed...")
		Notify(models.Notification{
			Type:       models.NotificationTypeFollow,
			SenderID:   actorID,
			ReceiverID: targetID,
		})
	}

	return GetAccount(actorID)
}
