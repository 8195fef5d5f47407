package routes

import (
	"github.com/gofiber/fiber/v2"
)

const apiVersion = "1"

func APIVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": apiVersion,
	})
}
