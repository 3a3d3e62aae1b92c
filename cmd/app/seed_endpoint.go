package main

import (
	"net/http"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/services"

	"github.com/labstack/echo/v4"
)

// registerSeedRoutes mounts GET /seed, which resets users and products. It is
// unauthenticated: on an empty database the seed is what creates the first admin.
func registerSeedRoutes(g *echo.Group, ss *services.SeedService) {
	g.GET("/seed", func(c echo.Context) error {
		if err := ss.RunSeed(c.Request().Context()); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, "SEED EXECUTED")
	})
}
