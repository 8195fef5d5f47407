package routes

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/transitpeak/transitpeak/pkg/analyzer"
)

func BusesRouter(router fiber.Router, service *analyzer.Service) {
	router.Get("/:city/peak_hours", func(c *fiber.Ctx) error {
		response, err := service.PeakHours(c.Params("city"), c.Query("date"))
		if err != nil {
			c.SendStatus(statusForError(err))
		}

		return c.JSON(response)
	})

	router.Get("/:city/arrivals/:hour", func(c *fiber.Ctx) error {
		hour, err := strconv.Atoi(c.Params("hour"))
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"status":        "error",
				"error_message": "Parameter hour should be an integer",
			})
		}

		response, err := service.ArrivalsAtHour(c.Params("city"), c.Query("date"), hour)
		if err != nil {
			c.SendStatus(statusForError(err))
		}

		return c.JSON(response)
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, analyzer.ErrInvalidQuery), errors.Is(err, analyzer.ErrUnknownCity):
		return fiber.StatusBadRequest
	case errors.Is(err, analyzer.ErrNoStops),
		errors.Is(err, analyzer.ErrNoStopTimes),
		errors.Is(err, analyzer.ErrNoArrivals),
		errors.Is(err, analyzer.ErrNoData):
		return fiber.StatusNotFound
	}

	return fiber.StatusInternalServerError
}
