package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/apperr"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/logging"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"

	"github.com/labstack/echo/v4"
)

// httpErrorHandler writes every failed request as {"error": "..."}. Internal
// errors are logged and replaced by a generic message.
func httpErrorHandler(log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		ctx := c.Request().Context()

		status := http.StatusInternalServerError
		msg := apperr.InternalMessage

		var appErr *apperr.Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.Kind.HTTPStatus()
			msg = apperr.PublicMessage(err)
			if appErr.Kind == apperr.KindInternal {
				log.Error(ctx, "request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			msg = fmt.Sprint(httpErr.Message)
		default:
			log.Error(ctx, "request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, map[string]string{"error": msg})
		}
		if err != nil {
			log.Warn(ctx, "write error response", "err", err)
		}
	}
}

// bindJSON decodes the body into dst and rejects fields dst does not declare.
func bindJSON(c echo.Context, dst any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.BadRequest("request body is required")
		}
		return apperr.BadRequest(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

func uuidParam(c echo.Context, name string) (string, error) {
	v := c.Param(name)
	if !model.IsUUID(v) {
		return "", apperr.BadRequest("validation failed (uuid is expected)")
	}
	return v, nil
}
