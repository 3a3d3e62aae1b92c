package services

import (
	"context"
	"errors"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/apperr"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/logging"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/repository"
)

// dbError turns a persistence failure into a caller-facing error. Duplicate
// keys keep their detail; anything else is logged and withheld.
func dbError(ctx context.Context, log logging.Logger, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	if pgErr, ok := repository.UniqueViolation(err); ok {
		return apperr.BadRequest(pgErr.Detail)
	}
	log.Error(ctx, "database error", "err", err)
	return apperr.Internal(err)
}
