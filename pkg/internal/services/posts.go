package services

import (
	"errors"

	"github.com/aperture-social/aperture/pkg/internal/database"
	"github.com/aperture-social/aperture/pkg/internal/media"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Media is the media store collaborator, set during boot.
var Media media.Store

func GetPost(id uint) (models.Post, error) {
	var post models.Post
	if err := database.C.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return post, newError(KindNotFound, "post #%d could not be found", id)
		}
		return post, wrapDependency("unable to get post", err)
	}
	return post, nil
}

// GetPostResolved loads a post with its author projection and comment list
// attached.
func GetPostResolved(id uint) (models.Post, error) {
	post, err := GetPost(id)
	if err != nil {
		return post, err
	}
	resolvePosts([]*models.Post{&post})
	return post, nil
}

// NewPost publishes a photo. The binary has already been handed to the media
// store; this appends the post to the owner's authored list after the record
// lands.
func NewPost(actorID uint, caption string, object media.Object) (models.Post, error) {
	if _, err := GetAccount(actorID); err != nil {
		return models.Post{}, err
	}
	if len(object.URL) == 0 {
		return models.Post{}, newError(KindValidation, "an image is required for the post")
	}

	post := models.Post{
		Caption:       caption,
		MediaURL:      object.URL,
		MediaObjectID: object.ObjectID,
		AccountID:     actorID,
	}
	if err := database.C.Create(&post).Error; err != nil {
		return post, wrapDependency("unable to create post", err)
	}

	err := database.Mutate(actorID, func(record *models.Account) error {
		if !lo.Contains(record.Posts, post.ID) {
			record.Posts = append(record.Posts, post.ID)
		}
		return nil
	})
	if err != nil {
		return post, wrapDependency("unable to attach post to account", err)
	}
	InvalidatePublicAccount(actorID)

	log.Debug().Uint("post", post.ID).Uint("author", actorID).Msg("The post is published.")

	return GetPostResolved(post.ID)
}

// ListPosts returns the newest posts first with authors and comments
// resolved.
func ListPosts(take int, offset int) ([]*models.Post, error) {
	if take <= 0 || take > 100 {
		take = 100
	}

	var posts []*models.Post
	if err := database.C.
		Limit(take).Offset(offset).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return posts, wrapDependency("unable to list posts", err)
	}

	resolvePosts(posts)
	return posts, nil
}

func ListAccountPosts(accountID uint) ([]*models.Post, error) {
	var posts []*models.Post
	if err := database.C.
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return posts, wrapDependency("unable to list account posts", err)
	}

	resolvePosts(posts)
	return posts, nil
}

// ListPostsByID loads the given posts newest first, silently skipping IDs
// that no longer resolve (accepted consistency window of saved lists).
func ListPostsByID(ids []uint) ([]*models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var posts []*models.Post
	if err := database.C.
		Where("id IN ?", ids).
		Order("created_at DESC, id DESC").
		Find(&posts).Error; err != nil {
		return posts, wrapDependency("unable to list posts", err)
	}

	resolvePosts(posts)
	return posts, nil
}

func CountPosts(accountID uint) (int64, error) {
	var count int64
	if err := database.C.Model(&models.Post{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, wrapDependency("unable to count posts", err)
	}
	return count, nil
}

func resolvePosts(posts []*models.Post) {
	for _, post := range posts {
		if post == nil {
			continue
		}
		if author, err := GetPublicAccount(post.AccountID); err == nil {
			post.Author = &author
		}

		var comments []models.Comment
		if err := database.C.
			Where("post_id = ?", post.ID).
			Order("created_at ASC, id ASC").
			Find(&comments).Error; err != nil {
			continue
		}
		for idx, comment := range comments {
			if author, err := GetPublicAccount(comment.AccountID); err == nil {
				comments[idx].Author = &author
			}
		}
		post.CommentList = comments
	}
}
