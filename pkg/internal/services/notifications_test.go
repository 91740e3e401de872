package services

import (
	"testing"

	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNotificationsNewestFirst(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")
	bob := seedAccount(t, "bobby")
	post := seedPost(t, alice, "first light")

	Notify(models.Notification{Type: models.NotificationTypeFollow, SenderID: bob.ID, ReceiverID: alice.ID})
	Notify(models.Notification{Type: models.NotificationTypeLike, SenderID: bob.ID, ReceiverID: alice.ID, PostID: &post.ID})
	Notify(models.Notification{Type: models.NotificationTypeSave, SenderID: bob.ID, ReceiverID: alice.ID, PostID: &post.ID})

	items := listReceiverNotifications(t, alice.ID)
	require.Len(t, items, 3)
	assert.Equal(t, models.NotificationTypeSave, items[0].Type)
	assert.Equal(t, models.NotificationTypeFollow, items[2].Type)

	// weak references resolved to minimal projections
	require.NotNil(t, items[0].Sender)
	assert.Equal(t, "bobby", items[0].Sender.Username)
	require.NotNil(t, items[0].Post)
	assert.Equal(t, post.ID, items[0].Post.ID)
}

func TestListNotificationsToleratesGoneReferences(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")
	bob := seedAccount(t, "bobby")

	missing := uint(404)
	Notify(models.Notification{Type: models.NotificationTypeLike, SenderID: bob.ID, ReceiverID: alice.ID, PostID: &missing})

	items := listReceiverNotifications(t, alice.ID)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Post)
}

func TestMarkAllReadIdempotent(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")
	bob := seedAccount(t, "bobby")

	Notify(models.Notification{Type: models.NotificationTypeFollow, SenderID: bob.ID, ReceiverID: alice.ID})
	Notify(models.Notification{Type: models.NotificationTypeFollow, SenderID: bob.ID, ReceiverID: alice.ID})

	affected, err := MarkAllRead(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	affected, err = MarkAllRead(alice.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	for _, item := range listReceiverNotifications(t, alice.ID) {
		assert.True(t, item.IsRead)
	}
}

func TestNotifyNeverPropagatesFailure(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")
	bob := seedAccount(t, "bobby")

	// break the store; the fan-out must stay silent and the caller unaffected
	require.NoError(t, database.C.Migrator().DropTable(&models.Notification{}))

	assert.NotPanics(t, func() {
		Notify(models.Notification{Type: models.NotificationTypeFollow, SenderID: bob.ID, ReceiverID: alice.ID})
	})
}

func TestDoAutoDatabaseCleanup(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")
	bob := seedAccount(t, "bobby")
	post := seedPost(t, alice, "first light")

	orphanComment := models.Comment{Text: "floating", AccountID: bob.ID, PostID: post.ID + 100}
	require.NoError(t, database.C.Create(&orphanComment).Error)
	orphanNotification := models.Notification{Type: models.NotificationTypeLike, SenderID: bob.ID, ReceiverID: alice.ID + 100}
	require.NoError(t, database.C.Create(&orphanNotification).Error)
	keptComment, err := AddComment(bob.ID, post.ID, "still attached")
	require.NoError(t, err)

	DoAutoDatabaseCleanup()

	var comments []models.Comment
	require.NoError(t, database.C.Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, keptComment.ID, comments[0].ID)

	var notifications []models.Notification
	require.NoError(t, database.C.Find(&notifications).Error)
	for _, item := range notifications {
		assert.NotEqual(t, orphanNotification.ID, item.ID)
	}
}
