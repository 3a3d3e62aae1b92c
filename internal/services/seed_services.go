package services

import (
	"context"
	"fmt"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/logging"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type SeedUserStore interface {
	CreateUserTx(ctx context.Context, tx pgx.Tx, u *model.User) error
	DeleteAllTx(ctx context.Context, tx pgx.Tx) error
}

type SeedUser struct {
	Email    string
	FullName string
	Password string
	Roles    []string
}

type SeedProduct struct {
	model.Product
	Images []string
}

type SeedData struct {
	Users    []SeedUser
	Products []SeedProduct
}

type SeedService struct {
	Users    SeedUserStore
	Products ProductStore
	Data     SeedData
	Log      logging.Logger
}

func NewSeedService(u SeedUserStore, p ProductStore, data SeedData, log logging.Logger) *SeedService {
	return &SeedService{Users: u, Products: p, Data: data, Log: log.With("component", "seed")}
}

// RunSeed replaces every user and product with the seed data in a single
// transaction. Seeded products belong to the first seed user.
func (s *SeedService) RunSeed(ctx context.Context) error {
	tx, err := s.Products.Begin(ctx)
	if err != nil {
		return dbError(ctx, s.Log, fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(ctx)

	if err := s.Products.DeleteAllTx(ctx, tx); err != nil {
		return dbError(ctx, s.Log, err)
	}
	if err := s.Users.DeleteAllTx(ctx, tx); err != nil {
		return dbError(ctx, s.Log, err)
	}

	var owner *string
	for i, su := range s.Data.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcryptCost)
		if err != nil {
			return dbError(ctx, s.Log, err)
		}
		u := &model.User{
			Email:        su.Email,
			PasswordHash: string(hash),
			FullName:     su.FullName,
			Roles:        su.Roles,
		}
		if err := s.Users.CreateUserTx(ctx, tx, u); err != nil {
			return dbError(ctx, s.Log, err)
		}
		if i == 0 {
			owner = &u.ID
		}
	}

	for _, sp := range s.Data.Products {
		p := sp.Product
		p.UserID = owner
		if err := s.Products.CreateProductTx(ctx, tx, &p); err != nil {
			return dbError(ctx, s.Log, err)
		}
		if err := s.Products.InsertImagesTx(ctx, tx, p.ID, sp.Images); err != nil {
			return dbError(ctx, s.Log, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return dbError(ctx, s.Log, fmt.Errorf("commit tx: %w", err))
	}
	s.Log.Info(ctx, "seed executed", "users", len(s.Data.Users), "products", len(s.Data.Products))
	return nil
}
