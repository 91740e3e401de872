package api

import (
	"strconv"

	"github.com/aperture-social/aperture/pkg/internal/http/exts"
	"github.com/aperture-social/aperture/pkg/internal/models"
	"github.com/aperture-social/aperture/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func createAccount(c *fiber.Ctx) error {
	var data struct {
		Name     string `json:"name" validate:"required,min=5,max=50"`
		Username string `json:"username" validate:"required,min=5,max=30"`
		Email    string `json:"email" validate:"required,email"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.NewAccount(models.Account{
		Name:     data.Name,
		Username: data.Username,
		Email:    data.Email,
	})
	if err != nil {
		return opError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

func getMe(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}

	account, err := services.GetAccount(actorID)
	if err != nil {
		return opError(err)
	}

	return c.JSON(account)
}

func getAccount(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "account id must be a number")
	}

	account, err := services.GetAccount(uint(accountID))
	if err != nil {
		return opError(err)
	}

	posts, err := services.ListAccountPosts(account.ID)
	if err != nil {
		return opError(err)
	}
	saved, err := services.ListPostsByID(account.SavedPosts)
	if err != nil {
		return opError(err)
	}

	return c.JSON(fiber.Map{
		"account":     account,
		"posts":       posts,
		"saved_posts": saved,
	})
}

func editProfile(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}

	var name, bio *string
	if value := c.FormValue("name"); len(value) > 0 {
		name = &value
	}
	if value := c.FormValue("bio"); len(value) > 0 {
		if len(value) > 150 {
			return fiber.NewError(fiber.StatusBadRequest, "bio should be less than 150 characters")
		}
		bio = &value
	}

	var avatar *string
	if file, err := c.FormFile("avatar"); err == nil {
		content, err := readFormFile(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		object, err := services.Media.Store(content, file.Header.Get("Content-Type"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		avatar = &object.URL
	}

	account, err := services.EditProfile(actorID, name, bio, avatar)
	if err != nil {
		return opError(err)
	}

	return c.JSON(account)
}

func searchAccounts(c *fiber.Ctx) error {
	accounts, err := services.SearchAccounts(c.Query("probe"))
	if err != nil {
		return opError(err)
	}

	return c.JSON(accounts)
}

func listSuggestedAccounts(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}

	accounts, err := services.ListSuggestedAccounts(actorID)
	if err != nil {
		return opError(err)
	}

	return c.JSON(accounts)
}

func listAccountPosts(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "account id must be a number")
	}

	posts, err := services.ListAccountPosts(uint(accountID))
	if err != nil {
		return opError(err)
	}

	return c.JSON(posts)
}

func toggleFollow(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}
	targetID, err := strconv.ParseUint(c.Params("accountId"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "account id must be a number")
	}

	account, err := services.ToggleFollow(actorID, uint(targetID))
	if err != nil {
		return opError(err)
	}

	return c.JSON(account)
}

func deleteAccount(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}

	if err := services.DeleteAccount(actorID); err != nil {
		return opError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}
