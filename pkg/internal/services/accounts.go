package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	localCache "github.com/aperture-social/aperture/pkg/internal/cache"
	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"gorm.io/gorm"
)

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, newError(KindNotFound, "account #%d could not be found", id)
		}
		return account, wrapDependency("unable to get account", err)
	}
	return account, nil
}

func GetAccountByUsername(username string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return account, newError(KindNotFound, "account %s could not be found", username)
		}
		return account, wrapDependency("unable to get account", err)
	}
	return account, nil
}

// NewAccount provisions a member record. Called by the credential service
// after it has verified the registration; credential material never lands
// here.
func NewAccount(item models.Account) (models.Account, error) {
	var count int64
	if err := database.C.Model(&models.Account{}).
		Where("username = ? OR email = ?", item.Username, item.Email).
		Count(&count).Error; err != nil {
		return item, wrapDependency("unable to check account uniqueness", err)
	}
	if count > 0 {
		return item, newError(KindValidation, "username or email is already in use")
	}

	if err := database.C.Create(&item).Error; err != nil {
		return item, wrapDependency("unable to create account", err)
	}

	return item, nil
}

func EditProfile(actorID uint, name, bio, avatar *string) (models.Account, error) {
	if _, err := GetAccount(actorID); err != nil {
		return models.Account{}, err
	}

	err := database.Mutate(actorID, func(record *models.Account) error {
		if name != nil {
			record.Name = *name
		}
		if bio != nil {
			record.Bio = *bio
		}
		if avatar != nil {
			record.Avatar = *avatar
		}
		return nil
	})
	if err != nil {
		return models.Account{}, wrapDependency("unable to update profile", err)
	}

	InvalidatePublicAccount(actorID)
	return GetAccount(actorID)
}

func SearchAccounts(probe string) ([]models.PublicAccount, error) {
	if len(probe) == 0 {
		return nil, newError(KindValidation, "search probe is required")
	}

	var accounts []models.Account
	if err := database.C.
		Where("LOWER(username) LIKE LOWER(?)", "%"+probe+"%").
		Limit(50).
		Find(&accounts).Error; err != nil {
		return nil, wrapDependency("unable to search accounts", err)
	}

	out := make([]models.PublicAccount, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, account.ToPublic())
	}
	return out, nil
}

func ListSuggestedAccounts(actorID uint) ([]models.PublicAccount, error) {
	var accounts []models.Account
	if err := database.C.
		Where("id != ?", actorID).
		Limit(50).
		Find(&accounts).Error; err != nil {
		return nil, wrapDependency("unable to list suggested accounts", err)
	}

	out := make([]models.PublicAccount, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, account.ToPublic())
	}
	return out, nil
}

// GetPublicAccount resolves the minimal projection of an account through the
// local cache. The tag allows profile edits and deletions to evict en masse.
func GetPublicAccount(id uint) (models.PublicAccount, error) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	key := fmt.Sprintf("account-public#%d", id)
	if cached, err := marshal.Get(ctx, key, new(models.PublicAccount)); err == nil {
		return *(cached.(*models.PublicAccount)), nil
	}

	account, err := GetAccount(id)
	if err != nil {
		return models.PublicAccount{}, err
	}

	public := account.ToPublic()
	_ = marshal.Set(
		ctx,
		key,
		public,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{fmt.Sprintf("account#%d", id)}),
	)

	return public, nil
}

func InvalidatePublicAccount(id uint) {
	cacheManager := cache.New[any](localCache.S)
	_ = cacheManager.Invalidate(
		context.Background(),
		store.WithInvalidateTags([]string{fmt.Sprintf("account#%d", id)}),
	)
}
