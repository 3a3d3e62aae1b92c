package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindForbidden, KindOf(Forbidden("nope")))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", NotFound("gone"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindBadRequest:   http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindForbidden:    http.StatusForbidden,
		KindNotFound:     http.StatusNotFound,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus(), kind.String())
	}
}

func TestPublicMessage_WithholdsInternalDetail(t *testing.T) {
	err := Internal(errors.New("pq: relation \"products\" does not exist"))

	assert.Equal(t, InternalMessage, PublicMessage(err))
	assert.Contains(t, err.Error(), "relation")
	assert.Equal(t, InternalMessage, PublicMessage(errors.New("raw")))
	assert.Equal(t, "bad", PublicMessage(BadRequest("bad")))
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("ctx: %w", Unauthorized("user inactive"))
	assert.True(t, Is(err, KindUnauthorized))
	assert.False(t, Is(err, KindForbidden))
}
