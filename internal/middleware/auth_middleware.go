package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/apperr"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"

	"github.com/labstack/echo/v4"
)

const userKey = "auth_user"

// IdentityResolver loads the active user a verified token points at.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) (*model.User, error)
}

// Guard authenticates requests and attaches the resolved user to the context.
type Guard struct {
	tokens     *TokenManager
	identities IdentityResolver
}

func NewGuard(tokens *TokenManager, identities IdentityResolver) *Guard {
	return &Guard{tokens: tokens, identities: identities}
}

func bearerToken(c echo.Context) (string, error) {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	if auth == "" {
		return "", apperr.Unauthorized("missing authorization header")
	}
	parts := strings.Fields(auth)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", apperr.Unauthorized("invalid authorization header")
	}
	return parts[1], nil
}

// Authenticate verifies the bearer token and resolves the identity. Nothing
// downstream runs unless both succeed.
func (g *Guard) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}
			claims, err := g.tokens.Verify(raw)
			if err != nil {
				return err
			}
			user, err := g.identities.Resolve(c.Request().Context(), claims.ID)
			if err != nil {
				return err
			}
			c.Set(userKey, user)
			return next(c)
		}
	}
}

// Auth is the per-route capability: authenticate, then require one of roles.
// With no roles any authenticated user passes.
//
//	g.PATCH("/products/:id", h, guard.Auth(model.RoleAdmin)...)
func (g *Guard) Auth(roles ...string) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{g.Authenticate(), RequireRoles(roles...)}
}

// RequireRoles applies Authorize with a role list fixed at route registration.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	required := append([]string(nil), roles...)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := Authorize(required, userFromContext(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// Authorize allows when required is empty or user holds any required role.
//
// A missing user is reported as BadRequest rather than Forbidden: reaching the
// role check without an identity means the route was wired without
// Authenticate.
func Authorize(required []string, user *model.User) error {
	if len(required) == 0 {
		return nil
	}
	if user == nil {
		return apperr.BadRequest("no permission")
	}
	if user.HasAnyRole(required) {
		return nil
	}
	return apperr.Forbidden(fmt.Sprintf("requires one of roles: %v", required))
}

func userFromContext(c echo.Context) *model.User {
	u, _ := c.Get(userKey).(*model.User)
	return u
}

var errNoIdentity = errors.New("no user in request context, route is missing Authenticate")

// GetUser returns the identity attached by Authenticate.
func GetUser(c echo.Context) (*model.User, error) {
	u := userFromContext(c)
	if u == nil {
		return nil, apperr.Internal(errNoIdentity)
	}
	return u, nil
}
