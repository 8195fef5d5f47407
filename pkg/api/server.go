package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/transitpeak/transitpeak/pkg/analyzer"
	"github.com/transitpeak/transitpeak/pkg/api/routes"
)

func SetupServer(listen string, service *analyzer.Service) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.BusesRouter(group.Group("/buses"), service)

	return webApp.Listen(listen)
}
