package services

import (
	"testing"

	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeletePostForbidden(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")
	bob := seedAccount(t, "bobby")
	post := seedPost(t, alice, "first light")

	_, _, err := ToggleSave(bob.ID, post.ID)
	require.NoError(t, err)
	_, err = AddComment(bob.ID, post.ID, "what a shot")
	require.NoError(t, err)

	err = DeletePost(bob.ID, post.ID)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindForbidden))

	// nothing was touched
	reloaded, err := GetPost(post.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Comments, 1)

	viewer, err := GetAccount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{post.ID}, []uint(viewer.SavedPosts))
}

func TestDeletePostCascade(t *testing.T) {
	store := setupDatabase(t)

	alice := seedAccount(t, "alice")
	bob := seedAccount(t, "bobby")
	post := seedPost(t, alice, "first light")

	_, _, err := ToggleSave(bob.ID, post.ID)
	require.NoError(t, err)
	_, err = AddComment(bob.ID, post.ID, "what a shot")
	require.NoError(t, err)

	require.NoError(t, DeletePost(alice.ID, post.ID))

	_, err = GetPost(post.ID)
	assert.True(t, IsKind(err, KindNotFound))

	owner, err := GetAccount(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, owner.Posts)

	viewer, err := GetAccount(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, viewer.SavedPosts)

	var comments int64
	require.NoError(t, database.C.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	assert.Zero(t, comments)

	assert.Contains(t, store.Released(), post.MediaObjectID)
}

func TestDeletePostMissing(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")

	err := DeletePost(alice.ID, 42)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestDeleteAccountMissing(t *testing.T) {
	setupDatabase(t)

	err := DeleteAccount(42)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestDeleteAccountPurgesReferences(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")
	bob := seedAccount(t, "bobby")
	carol := seedAccount(t, "carol")

	alicePost := seedPost(t, alice, "alice shot")
	bobPost := seedPost(t, bob, "bobby shot")

	// build up the web of references pointing at alice and her content
	_, err := ToggleFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = ToggleFollow(carol.ID, alice.ID)
	require.NoError(t, err)
	_, _, err = ToggleLike(alice.ID, bobPost.ID)
	require.NoError(t, err)
	aliceComment, err := AddComment(alice.ID, bobPost.ID, "nice one")
	require.NoError(t, err)
	_, _, err = ToggleLike(bob.ID, alicePost.ID)
	require.NoError(t, err)
	_, _, err = ToggleSave(bob.ID, alicePost.ID)
	require.NoError(t, err)
	_, err = AddComment(bob.ID, alicePost.ID, "what a shot")
	require.NoError(t, err)

	require.NoError(t, DeleteAccount(alice.ID))

	_, err = GetAccount(alice.ID)
	assert.True(t, IsKind(err, KindNotFound))
	_, err = GetPost(alicePost.ID)
	assert.True(t, IsKind(err, KindNotFound))

	// no surviving follower/following set references alice
	for _, id := range []uint{bob.ID, carol.ID} {
		survivor, err := GetAccount(id)
		require.NoError(t, err)
		assert.NotContains(t, []uint(survivor.Followers), alice.ID)
		assert.NotContains(t, []uint(survivor.Following), alice.ID)
		assert.NotContains(t, []uint(survivor.SavedPosts), alicePost.ID)
	}

	// no surviving post references alice or her comments
	survivorPost, err := GetPost(bobPost.ID)
	require.NoError(t, err)
	assert.NotContains(t, []uint(survivorPost.Likes), alice.ID)
	assert.NotContains(t, []uint(survivorPost.Comments), aliceComment.ID)

	var comments int64
	require.NoError(t, database.C.Model(&models.Comment{}).
		Where("account_id = ? OR post_id = ?", alice.ID, alicePost.ID).
		Count(&comments).Error)
	assert.Zero(t, comments)

	var notifications int64
	require.NoError(t, database.C.Model(&models.Notification{}).
		Where("sender_id = ? OR receiver_id = ? OR post_id = ?", alice.ID, alice.ID, alicePost.ID).
		Count(&notifications).Error)
	assert.Zero(t, notifications)
}

func TestDeleteAccountIsRetrySafe(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")
	bob := seedAccount(t, "bobby")
	post := seedPost(t, alice, "first light")

	_, _, err := ToggleSave(bob.ID, post.ID)
	require.NoError(t, err)

	require.NoError(t, DeleteAccount(alice.ID))

	// a second attempt finds nothing left to operate on
	err = DeleteAccount(alice.ID)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}
