package main

import (
	"net/http"
	"strconv"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/apperr"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/middleware"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/services"

	"github.com/labstack/echo/v4"
)

func intQuery(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.BadRequest(name + " must be an integer")
	}
	return v, nil
}

// registerProductRoutes mounts product endpoints.
// Public:
//
//	GET /products          -> list (?limit=&offset=)
//	GET /products/:term    -> by id, title or slug
//
// Authenticated:
//
//	POST /products
//
// Admin:
//
//	PATCH  /products/:id
//	DELETE /products/:id
func registerProductRoutes(g *echo.Group, ps *services.ProductService, guard *middleware.Guard) {
	g.POST("/products", func(c echo.Context) error {
		u, err := middleware.GetUser(c)
		if err != nil {
			return err
		}
		var req services.CreateProductInput
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		p, err := ps.Create(c.Request().Context(), req, u.ID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, p)
	}, guard.Auth()...)

	g.GET("/products", func(c echo.Context) error {
		limit, err := intQuery(c, "limit")
		if err != nil {
			return err
		}
		offset, err := intQuery(c, "offset")
		if err != nil {
			return err
		}
		list, err := ps.FindAll(c.Request().Context(), limit, offset)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/:term", func(c echo.Context) error {
		p, err := ps.FindOnePlain(c.Request().Context(), c.Param("term"))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, p)
	})

	g.PATCH("/products/:id", func(c echo.Context) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return err
		}
		var req services.UpdateProductInput
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		p, err := ps.Update(c.Request().Context(), id, req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, p)
	}, guard.Auth(model.RoleAdmin)...)

	g.DELETE("/products/:id", func(c echo.Context) error {
		id, err := uuidParam(c, "id")
		if err != nil {
			return err
		}
		if err := ps.Remove(c.Request().Context(), id); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	}, guard.Auth(model.RoleAdmin)...)
}
