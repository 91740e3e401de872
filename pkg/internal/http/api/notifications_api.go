package api

import (
	"github.com/aperture-social/aperture/pkg/internal/http/exts"
	"github.com/aperture-social/aperture/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func listNotifications(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}

	items, err := services.ListNotifications(actorID)
	if err != nil {
		return opError(err)
	}

	return c.JSON(fiber.Map{
		"count": len(items),
		"data":  items,
	})
}

func markAllRead(c *fiber.Ctx) error {
	actorID, err := exts.AuthedActor(c)
	if err != nil {
		return err
	}

	affected, err := services.MarkAllRead(actorID)
	if err != nil {
		return opError(err)
	}

	return c.JSON(fiber.Map{
		"affected": affected,
	})
}
