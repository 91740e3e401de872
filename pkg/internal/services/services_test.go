package services

import (
	"path/filepath"
	"sync"
	"testing"

	localCache "github.com/aperture-social/aperture/pkg/internal/cache"
	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/media"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

// setupDatabase points the service layer at a fresh on-disk sqlite store.
// The _txlock=immediate option makes each record mutation take its write
// lock up front, so the concurrent cascade steps serialize instead of
// deadlocking on a lock upgrade.
func setupDatabase(t *testing.T) *fakeMediaStore {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "aperture.db") + "?_busy_timeout=10000&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))
	database.C = db

	require.NoError(t, localCache.NewStore())

	store := &fakeMediaStore{}
	Media = store
	return store
}

type fakeMediaStore struct {
	mu       sync.Mutex
	released []string
}

func (v *fakeMediaStore) Store(data []byte, contentType string) (media.Object, error) {
	id := uuid.NewString()
	return media.Object{URL: "http://media.local/" + id, ObjectID: id}, nil
}

func (v *fakeMediaStore) Release(objectID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.released = append(v.released, objectID)
	return nil
}

func (v *fakeMediaStore) Released() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.released...)
}

func seedAccount(t *testing.T, username string) models.Account {
	t.Helper()

	account, err := NewAccount(models.Account{
		Name:     "Member " + username,
		Username: username,
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	return account
}

func seedPost(t *testing.T, owner models.Account, caption string) models.Post {
	t.Helper()

	post, err := NewPost(owner.ID, caption, media.Object{
		URL:      "http://media.local/" + uuid.NewString(),
		ObjectID: uuid.NewString(),
	})
	require.NoError(t, err)
	return post
}

func listReceiverNotifications(t *testing.T, receiverID uint) []models.Notification {
	t.Helper()

	items, err := ListNotifications(receiverID)
	require.NoError(t, err)
	return items
}
