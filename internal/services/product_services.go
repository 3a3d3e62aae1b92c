package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/apperr"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/logging"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/repository"

	"github.com/jackc/pgx/v5"
)

const (
	DefaultLimit = 10
	MaxLimit     = 200
)

// ProductStore is implemented by *repository.ProductRepository. Tx-suffixed
// methods run inside a transaction obtained from Begin.
type ProductStore interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	CreateProductTx(ctx context.Context, tx pgx.Tx, p *model.Product) error
	UpdateProductTx(ctx context.Context, tx pgx.Tx, p *model.Product) error
	DeleteImagesTx(ctx context.Context, tx pgx.Tx, productID string) error
	InsertImagesTx(ctx context.Context, tx pgx.Tx, productID string, urls []string) error
	DeleteAllTx(ctx context.Context, tx pgx.Tx) error
	GetByID(ctx context.Context, id string) (*model.Product, error)
	GetByTitleOrSlug(ctx context.Context, term string) (*model.Product, error)
	List(ctx context.Context, limit, offset int) ([]model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type ProductService struct {
	Repo      ProductStore
	Log       logging.Logger
	TxTimeout time.Duration
}

func NewProductService(r ProductStore, log logging.Logger, txTimeout time.Duration) *ProductService {
	return &ProductService{Repo: r, Log: log.With("component", "products"), TxTimeout: txTimeout}
}

type CreateProductInput struct {
	Title       string   `json:"title"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug"`
	Stock       *int     `json:"stock"`
	Sizes       []string `json:"sizes"`
	Gender      string   `json:"gender"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

// UpdateProductInput carries only the fields the caller sent. Images nil means
// "keep the current images"; a non-nil empty slice means "remove them all".
// A null description clears it.
type UpdateProductInput struct {
	Title       *string        `json:"title"`
	Price       *float64       `json:"price"`
	Description NullableString `json:"description"`
	Slug        *string        `json:"slug"`
	Stock       *int           `json:"stock"`
	Sizes       *[]string      `json:"sizes"`
	Gender      *string        `json:"gender"`
	Tags        *[]string      `json:"tags"`
	Images      *[]string      `json:"images"`
}

func validateGender(g string) error {
	if !slices.Contains(model.ValidGenders, g) {
		return apperr.BadRequest(fmt.Sprintf("gender must be one of the following values: %s", strings.Join(model.ValidGenders, ", ")))
	}
	return nil
}

func (in *CreateProductInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return apperr.BadRequest("title is required")
	}
	if in.Price != nil && *in.Price < 0 {
		return apperr.BadRequest("price must be >= 0")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return apperr.BadRequest("stock must be >= 0")
	}
	if in.Sizes == nil {
		return apperr.BadRequest("sizes must be an array")
	}
	return validateGender(in.Gender)
}

func (in *UpdateProductInput) validate() error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return apperr.BadRequest("title is required")
	}
	if in.Price != nil && *in.Price < 0 {
		return apperr.BadRequest("price must be >= 0")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return apperr.BadRequest("stock must be >= 0")
	}
	if in.Gender != nil {
		return validateGender(*in.Gender)
	}
	return nil
}

// apply merges the supplied fields onto p.
func (in *UpdateProductInput) apply(p *model.Product) {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description.Set {
		p.Description = in.Description.Value
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.Sizes != nil {
		p.Sizes = *in.Sizes
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
}

func (s *ProductService) txContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.TxTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.TxTimeout)
}

// Create inserts the product and its images in one transaction. userID is the
// creator and may be empty.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput, userID string) (*model.PlainProduct, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p := &model.Product{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Sizes:       in.Sizes,
		Gender:      in.Gender,
		Tags:        in.Tags,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Slug != nil {
		p.Slug = *in.Slug
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if userID != "" {
		p.UserID = &userID
	}

	txCtx, cancel := s.txContext(ctx)
	defer cancel()

	tx, err := s.Repo.Begin(txCtx)
	if err != nil {
		return nil, dbError(ctx, s.Log, fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(txCtx)

	if err := s.Repo.CreateProductTx(txCtx, tx, p); err != nil {
		return nil, dbError(ctx, s.Log, err)
	}
	if err := s.Repo.InsertImagesTx(txCtx, tx, p.ID, in.Images); err != nil {
		return nil, dbError(ctx, s.Log, err)
	}
	if err := tx.Commit(txCtx); err != nil {
		return nil, dbError(ctx, s.Log, fmt.Errorf("commit tx: %w", err))
	}

	for _, url := range in.Images {
		p.Images = append(p.Images, model.ProductImage{URL: url, ProductID: p.ID})
	}
	plain := p.Plain()
	return &plain, nil
}

func (s *ProductService) FindAll(ctx context.Context, limit, offset int) ([]model.PlainProduct, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 0 || limit > MaxLimit {
		return nil, apperr.BadRequest(fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}
	if offset < 0 {
		return nil, apperr.BadRequest("offset must not be less than 0")
	}

	list, err := s.Repo.List(ctx, limit, offset)
	if err != nil {
		return nil, dbError(ctx, s.Log, err)
	}
	out := make([]model.PlainProduct, 0, len(list))
	for i := range list {
		out = append(out, list[i].Plain())
	}
	return out, nil
}

// FindOne looks a product up by id when term is a UUID, otherwise by title or slug.
func (s *ProductService) FindOne(ctx context.Context, term string) (*model.Product, error) {
	var (
		p   *model.Product
		err error
	)
	if model.IsUUID(term) {
		p, err = s.Repo.GetByID(ctx, term)
	} else {
		p, err = s.Repo.GetByTitleOrSlug(ctx, term)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("product with %s not found", term))
		}
		return nil, dbError(ctx, s.Log, err)
	}
	return p, nil
}

func (s *ProductService) FindOnePlain(ctx context.Context, term string) (*model.PlainProduct, error) {
	p, err := s.FindOne(ctx, term)
	if err != nil {
		return nil, err
	}
	plain := p.Plain()
	return &plain, nil
}

// Update merges in onto the stored product and, when in.Images is set,
// replaces its images. Everything is written in one transaction; on any
// failure nothing changes.
func (s *ProductService) Update(ctx context.Context, id string, in UpdateProductInput) (*model.PlainProduct, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("product with id %s not found", id))
		}
		return nil, dbError(ctx, s.Log, err)
	}
	in.apply(p)

	txCtx, cancel := s.txContext(ctx)
	defer cancel()

	tx, err := s.Repo.Begin(txCtx)
	if err != nil {
		return nil, dbError(ctx, s.Log, fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback(txCtx)

	if in.Images != nil {
		if err := s.Repo.DeleteImagesTx(txCtx, tx, id); err != nil {
			return nil, dbError(ctx, s.Log, err)
		}
		if err := s.Repo.InsertImagesTx(txCtx, tx, id, *in.Images); err != nil {
			return nil, dbError(ctx, s.Log, err)
		}
	}

	if err := s.Repo.UpdateProductTx(txCtx, tx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("product with id %s not found", id))
		}
		return nil, dbError(ctx, s.Log, err)
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, dbError(ctx, s.Log, fmt.Errorf("commit tx: %w", err))
	}

	s.Log.Info(ctx, "product updated", "id", id, "images_replaced", in.Images != nil)
	return s.FindOnePlain(ctx, id)
}

func (s *ProductService) Remove(ctx context.Context, id string) error {
	p, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, p.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(fmt.Sprintf("product with id %s not found", id))
		}
		return dbError(ctx, s.Log, err)
	}
	return nil
}
