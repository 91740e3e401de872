package api

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/aperture-social/aperture/pkg/internal/http/exts"
	"github.com/aperture-social/aperture/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func listPosts(c *fiber.Ctx) error {
	take := c.QueryInt("take", 20)
	offset := c.QueryInt("offset", 0)

	posts, err := services.ListPosts(take, offset)
	if err != nil {
		return opError(err)
	}

	return c.JSON(fiber.Map{
		"count": len(posts),
		"data":  posts,
	})
}

func getPost(c *fiber.Ctx) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	post, err := services.GetPostResolved(postID)
	if err != nil {
		return opError(err)
	}

	return c.JSON(post)
}

func createPost(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}

	caption := c.FormValue("caption")
	if len(caption) > 2000 {
		return fiber.NewError(fiber.StatusBadRequest, "caption should be less than 2000 characters")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "an image is required for the post")
	}
	content, err := readFormFile(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	object, err := services.Media.Store(content, file.Header.Get("Content-Type"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	post, err := services.NewPost(actorID, caption, object)
	if err != nil {
		return opError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func deletePost(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	if err := services.DeletePost(actorID, postID); err != nil {
		return opError(err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func toggleLike(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	isLiked, post, err := services.ToggleLike(actorID, postID)
	if err != nil {
		return opError(err)
	}

	return c.JSON(fiber.Map{
		"is_liked": isLiked,
		"post":     post,
	})
}

func toggleSave(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	isSaved, account, err := services.ToggleSave(actorID, postID)
	if err != nil {
		return opError(err)
	}

	return c.JSON(fiber.Map{
		"is_saved": isSaved,
		"account":  account,
	})
}

func addComment(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	var data struct {
		Text string `json:"text"`
	}
	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	comment, err := services.AddComment(actorID, postID, data.Text)
	if err != nil {
		return opError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func parsePostID(c *fiber.Ctx) (uint, error) {
	postID, err := strconv.ParseUint(c.Params("postId"), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "post id must be a number")
	}
	return uint(postID), nil
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}
