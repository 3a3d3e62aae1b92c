package main

import (
	"net/http"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/middleware"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

type loginResponse struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	Roles    []string `json:"roles"`
	Token    string   `json:"token"`
}

// registerAuthRoutes mounts:
//
//	POST /auth/register
//	POST /auth/login
//	GET  /auth/check-status   (authenticated)
//	GET  /auth/private        (authenticated)
//	GET  /auth/private2       (super-user or user)
//	GET  /auth/private3       (admin or super-user)
func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, guard *middleware.Guard) {
	g.POST("/auth/register", func(c echo.Context) error {
		var req services.RegisterInput
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		res, err := authSvc.Register(c.Request().Context(), req)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, authResponse{User: res.User, Token: res.Token})
	})

	g.POST("/auth/login", func(c echo.Context) error {
		var req loginRequest
		if err := bindJSON(c, &req); err != nil {
			return err
		}
		res, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, loginResponse{
			ID:       res.User.ID,
			Email:    res.User.Email,
			FullName: res.User.FullName,
			Roles:    res.User.Roles,
			Token:    res.Token,
		})
	})

	g.GET("/auth/check-status", func(c echo.Context) error {
		u, err := middleware.GetUser(c)
		if err != nil {
			return err
		}
		res, err := authSvc.CheckStatus(u)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, authResponse{User: res.User, Token: res.Token})
	}, guard.Auth()...)

	g.GET("/auth/private", func(c echo.Context) error {
		u, err := middleware.GetUser(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{
			"ok":         true,
			"message":    "private route",
			"user":       u,
			"userEmail":  u.Email,
			"rawHeaders": c.Request().Header,
		})
	}, guard.Auth()...)

	whoami := func(c echo.Context) error {
		u, err := middleware.GetUser(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "user": u})
	}
	g.GET("/auth/private2", whoami, guard.Auth(model.RoleSuperUser, model.RoleUser)...)
	g.GET("/auth/private3", whoami, guard.Auth(model.RoleAdmin, model.RoleSuperUser)...)
}
