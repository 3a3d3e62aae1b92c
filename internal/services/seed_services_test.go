package services

import (
	"context"
	"testing"
	"time"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/logging"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSeed_ReplacesData(t *testing.T) {
	db := newMemDB()
	users := &memUsers{db: db}
	products := &memProducts{db: db}
	ctx := context.Background()

	productSvc := NewProductService(products, logging.Discard(), time.Second)
	_, err := productSvc.Create(ctx, shirt("Leftover"), "")
	require.NoError(t, err)

	seed := NewSeedService(users, products, InitialData, logging.Discard())
	require.NoError(t, seed.RunSeed(ctx))
	require.NoError(t, seed.RunSeed(ctx))

	state := db.snapshot()
	assert.Len(t, state.users, len(InitialData.Users))
	assert.Len(t, state.products, len(InitialData.Products))

	admin, err := users.GetByEmail(ctx, "test1@google.com")
	require.NoError(t, err)
	assert.Equal(t, []string{model.RoleAdmin}, admin.Roles)

	for _, p := range state.products {
		require.NotNil(t, p.UserID)
		assert.Equal(t, admin.ID, *p.UserID)
		assert.NotEmpty(t, p.Images)
	}

	_, err = productSvc.FindOne(ctx, "Leftover")
	assert.Error(t, err)

	auth := NewAuthService(users, &stubTokens{}, logging.Discard())
	_, err = auth.Login(ctx, "test2@google.com", "Abc123")
	assert.NoError(t, err)
}
