package services

import (
	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/rs/zerolog/log"
)

// Notify persists a notification best-effort. Failures are logged and
// swallowed; the mutation that triggered the fan-out must never observe them.
// Callers are responsible for suppressing self-notification before calling.
func Notify(item models.Notification) {
	if err := database.C.Create(&item).Error; err != nil {
		log.Warn().Err(err).
			Str("type", item.Type).
			Uint("sender", item.SenderID).
			Uint("receiver", item.ReceiverID).
			Msg("An error occurred when creating notification...")
		return
	}

	log.Debug().Uint("receiver", item.ReceiverID).Str("type", item.Type).Msg("Notified account.")
}

// ListNotifications returns the receiver's notifications newest first, with
// sender, post and comment references resolved to minimal projections.
// References that no longer resolve are left empty; they are weak by design.
func ListNotifications(receiverID uint) ([]models.Notification, error) {
	var items []models.Notification
	if err := database.C.
		Where("receiver_id = ?", receiverID).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return items, wrapDependency("unable to list notifications", err)
	}

	for idx, item := range items {
		if sender, err := GetPublicAccount(item.SenderID); err == nil {
			items[idx].Sender = &sender
		}
		if item.PostID != nil {
			if post, err := GetPost(*item.PostID); err == nil {
				digest := post.Digest()
				items[idx].Post = &digest
			}
		}
		if item.CommentID != nil {
			var comment models.Comment
			if err := database.C.Where("id = ?", *item.CommentID).First(&comment).Error; err == nil {
				digest := comment.Digest()
				items[idx].Comment = &digest
			}
		}
	}

	return items, nil
}

// MarkAllRead flips every unread notification addressed to the receiver.
// Re-invoking is a no-op.
func MarkAllRead(receiverID uint) (int64, error) {
	result := database.C.Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, wrapDependency("unable to mark notifications as read", result.Error)
	}
	return result.RowsAffected, nil
}
