package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/apperr"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/logging"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *memUsers, *stubTokens) {
	t.Helper()
	users := &memUsers{db: newMemDB()}
	tokens := &stubTokens{}
	return NewAuthService(users, tokens, logging.Discard()), users, tokens
}

func TestRegister_NormalizesEmailAndIssuesToken(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, RegisterInput{Email: " Foo@Bar.com ", Password: "Abc123", FullName: " Foo Bar "})
	require.NoError(t, err)

	assert.Equal(t, "foo@bar.com", res.User.Email)
	assert.Equal(t, "Foo Bar", res.User.FullName)
	assert.Equal(t, []string{model.RoleUser}, res.User.Roles)
	assert.True(t, res.User.IsActive)
	assert.Empty(t, res.User.PasswordHash)
	assert.Equal(t, "token-"+res.User.ID, res.Token)
	assert.Equal(t, []string{res.User.ID}, tokens.issued)

	login, err := svc.Login(ctx, "FOO@bar.com", "Abc123")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
	assert.Empty(t, login.User.PasswordHash)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   RegisterInput
		msg  string
	}{
		{"bad email", RegisterInput{Email: "not-an-email", Password: "Abc123", FullName: "X"}, "email must be an email"},
		{"short password", RegisterInput{Email: "a@b.com", Password: "Ab1", FullName: "X"}, "password must be between 6 and 50 characters"},
		{"weak password", RegisterInput{Email: "a@b.com", Password: "abcdef", FullName: "X"}, "password must have an uppercase letter, a lowercase letter and a number"},
		{"missing name", RegisterInput{Email: "a@b.com", Password: "Abc123", FullName: "  "}, "fullName is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newAuthService(t)
			_, err := svc.Register(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindBadRequest))
			assert.Equal(t, tt.msg, apperr.PublicMessage(err))
		})
	}
}

func TestRegister_DuplicateEmailIsBadRequestWithDetail(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Abc123", FullName: "A"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "A@B.com", Password: "Abc123", FullName: "A"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	assert.Equal(t, "Key (email)=(a@b.com) already exists.", apperr.PublicMessage(err))
}

func TestLogin_FailuresLookTheSame(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Abc123", FullName: "A"})
	require.NoError(t, err)

	_, errPw := svc.Login(ctx, "a@b.com", "Wrong123")
	_, errEmail := svc.Login(ctx, "nobody@b.com", "Abc123")

	for _, err := range []error{errPw, errEmail} {
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
		assert.Equal(t, msgInvalidCredentials, apperr.PublicMessage(err))
	}
}

func TestResolve(t *testing.T) {
	svc, users, _ := newAuthService(t)
	ctx := context.Background()
	res, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "Abc123", FullName: "A"})
	require.NoError(t, err)

	u, err := svc.Resolve(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)

	_, err = svc.Resolve(ctx, "not-a-uuid")
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = svc.Resolve(ctx, uuid.NewString())
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	assert.Equal(t, "token or user not found", apperr.PublicMessage(err))

	users.setActive(res.User.ID, false)
	_, err = svc.Resolve(ctx, res.User.ID)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	assert.Equal(t, "user inactive", apperr.PublicMessage(err))
}

func TestCheckStatus_IssueFailureIsInternal(t *testing.T) {
	svc, _, tokens := newAuthService(t)
	tokens.err = errors.New("signing failed")

	_, err := svc.CheckStatus(&model.User{ID: uuid.NewString()})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindInternal))
	assert.Equal(t, apperr.InternalMessage, apperr.PublicMessage(err))
}
