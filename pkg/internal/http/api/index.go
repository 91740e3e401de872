package api

import (
	"github.com/aperture-social/aperture/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL).Name("API")
	{
		accounts := api.Group("/accounts").Name("Accounts API")
		{
			accounts.Post("/", createAccount)
			accounts.Get("/me", getMe)
			accounts.Put("/me", editProfile)
			accounts.Delete("/me", deleteAccount)
			accounts.Get("/search", searchAccounts)
			accounts.Get("/suggested", listSuggestedAccounts)
			accounts.Get("/:accountId", getAccount)
			accounts.Get("/:accountId/posts", listAccountPosts)
			accounts.Post("/:accountId/follow", toggleFollow)
		}

		posts := api.Group("/posts").Name("Posts API")
		{
			posts.Get("/", listPosts)
			posts.Post("/", createPost)
			posts.Get("/:postId", getPost)
			posts.Delete("/:postId", deletePost)
			posts.Post("/:postId/like", toggleLike)
			posts.Post("/:postId/save", toggleSave)
			posts.Post("/:postId/comments", addComment)
		}

		notifications := api.Group("/notifications").Name("Notifications API")
		{
			notifications.Get("/", listNotifications)
			notifications.Put("/read", markAllRead)
		}
	}
}

// opError maps the service error taxonomy onto HTTP statuses.
func opError(err error) error {
	switch services.Kind(err) {
	case services.KindNotFound:
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case services.KindForbidden:
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case services.KindValidation, services.KindInvalidOperation:
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
