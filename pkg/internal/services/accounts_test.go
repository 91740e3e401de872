package services

import (
	"testing"

	"github.com/aperture-social/aperture/pkg/internal/media"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccountRejectsDuplicates(t *testing.T) {
	setupDatabase(t)

	seedAccount(t, "alice")

	_, err := NewAccount(models.Account{
		Name:     "Another Alice",
		Username: "alice",
		Email:    "other@example.com",
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))

	_, err = NewAccount(models.Account{
		Name:     "Another Alice",
		Username: "notalice",
		Email:    "alice@example.com",
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestEditProfilePartialUpdate(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")

	bio := "shooting on film since 2019"
	updated, err := EditProfile(alice.ID, nil, &bio, nil)
	require.NoError(t, err)
	assert.Equal(t, bio, updated.Bio)
	assert.Equal(t, alice.Name, updated.Name)

	// the cached public projection must not serve the stale bio
	public, err := GetPublicAccount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, bio, public.Bio)
}

func TestEditProfileMissingActor(t *testing.T) {
	setupDatabase(t)

	name := "Ghost"
	_, err := EditProfile(404, &name, nil, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotFound))
}

func TestSearchAccounts(t *testing.T) {
	setupDatabase(t)

	seedAccount(t, "alice")
	seedAccount(t, "alicia")
	seedAccount(t, "bobby")

	found, err := SearchAccounts("ALI")
	require.NoError(t, err)
	require.Len(t, found, 2)

	_, err = SearchAccounts("")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestListSuggestedAccountsExcludesActor(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")
	seedAccount(t, "bobby")
	seedAccount(t, "carol")

	suggested, err := ListSuggestedAccounts(alice.ID)
	require.NoError(t, err)
	require.Len(t, suggested, 2)
	for _, item := range suggested {
		assert.NotEqual(t, alice.ID, item.ID)
	}
}

func TestNewPostAttachesToAuthor(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")

	post, err := NewPost(alice.ID, "golden hour", media.Object{URL: "local://golden.jpg", ObjectID: "golden"})
	require.NoError(t, err)
	require.NotNil(t, post.Author)
	assert.Equal(t, "alice", post.Author.Username)

	account, err := GetAccount(alice.ID)
	require.NoError(t, err)
	assert.Contains(t, account.Posts, post.ID)
}

func TestNewPostRequiresImage(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")

	_, err := NewPost(alice.ID, "no image", media.Object{})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
}

func TestListPostsNewestFirst(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")
	first := seedPost(t, alice, "first")
	second := seedPost(t, alice, "second")

	posts, err := ListPosts(0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)
}

func TestListPostsByIDSkipsMissing(t *testing.T) {
	setupDatabase(t)

	alice := seedAccount(t, "alice")
	post := seedPost(t, alice, "only one")

	posts, err := ListPostsByID([]uint{post.ID, post.ID + 100})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)
}
