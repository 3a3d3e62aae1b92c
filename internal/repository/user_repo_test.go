package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepoWithMock(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func TestCreateUser_NormalizesEmailAndDefaultsRole(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (email, password, full_name, roles)`)).
		WithArgs("foo@bar.com", "hash", "Foo Bar", []string{model.RoleUser}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "is_active", "created_at"}).AddRow("u1", true, &now))

	u := &model.User{Email: " Foo@Bar.com ", PasswordHash: "hash", FullName: "Foo Bar"}
	require.NoError(t, repo.CreateUser(context.Background(), u))

	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "foo@bar.com", u.Email)
	assert.True(t, u.IsActive)
	assert.Equal(t, []string{model.RoleUser}, u.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_ReturnsHash(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`, password FROM users WHERE email=$1`)).
		WithArgs("foo@bar.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "full_name", "is_active", "roles", "created_at", "password"}).
			AddRow("u1", "foo@bar.com", "Foo", true, []string{"admin"}, &now, "hash"))

	u, err := repo.GetByEmail(context.Background(), "FOO@bar.com ")
	require.NoError(t, err)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, []string{"admin"}, u.Roles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_OmitsHash(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id=$1`)).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "full_name", "is_active", "roles", "created_at"}).
			AddRow("u1", "foo@bar.com", "Foo", false, []string{"user"}, &now))

	u, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, u.PasswordHash)
	assert.False(t, u.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_NotFound(t *testing.T) {
	repo, mock := newUserRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id=$1`)).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}
