package main

import (
	"net/http"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/apperr"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/services"

	"github.com/labstack/echo/v4"
)

// registerFileRoutes mounts:
//
//	POST /files/product              (multipart field "file")
//	GET  /files/product/:imageName
func registerFileRoutes(g *echo.Group, fs *services.FileService) {
	g.POST("/files/product", func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return apperr.BadRequest("make sure that the file is an image")
		}
		f, err := fh.Open()
		if err != nil {
			return apperr.Internal(err)
		}
		defer f.Close()

		url, err := fs.UploadProductImage(c.Request().Context(), fh.Header.Get(echo.HeaderContentType), f)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, map[string]string{"secureUrl": url})
	})

	g.GET("/files/product/:imageName", func(c echo.Context) error {
		rc, contentType, err := fs.ProductImage(c.Request().Context(), c.Param("imageName"))
		if err != nil {
			return err
		}
		defer rc.Close()
		return c.Stream(http.StatusOK, contentType, rc)
	})
}
