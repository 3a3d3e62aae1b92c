package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"

	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	DB DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `id, title, price, description, slug, stock, sizes, gender, tags, user_id, created_at`

func (r *ProductRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.DB.Begin(ctx)
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.Title, &p.Price, &p.Description, &p.Slug, &p.Stock,
		&p.Sizes, &p.Gender, &p.Tags, &p.UserID, &p.CreatedAt)
}

// CreateProductTx inserts p (without images) and fills in id and created_at.
func (r *ProductRepository) CreateProductTx(ctx context.Context, tx pgx.Tx, p *model.Product) error {
	p.NormalizeSlug()
	query := `INSERT INTO products (title, price, description, slug, stock, sizes, gender, tags, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	if err := tx.QueryRow(ctx, query, p.Title, p.Price, p.Description, p.Slug, p.Stock,
		model.NonNil(p.Sizes), p.Gender, model.NonNil(p.Tags), p.UserID).Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// UpdateProductTx writes every scalar field of p. Images are left alone.
func (r *ProductRepository) UpdateProductTx(ctx context.Context, tx pgx.Tx, p *model.Product) error {
	p.NormalizeSlug()
	query := `UPDATE products
		SET title=$1, price=$2, description=$3, slug=$4, stock=$5, sizes=$6, gender=$7, tags=$8
		WHERE id=$9`
	tag, err := tx.Exec(ctx, query, p.Title, p.Price, p.Description, p.Slug, p.Stock,
		model.NonNil(p.Sizes), p.Gender, model.NonNil(p.Tags), p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteImagesTx removes every image owned by productID.
func (r *ProductRepository) DeleteImagesTx(ctx context.Context, tx pgx.Tx, productID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM product_images WHERE product_id=$1`, productID); err != nil {
		return fmt.Errorf("delete product images: %w", err)
	}
	return nil
}

// InsertImagesTx adds one image row per url with a single INSERT.
func (r *ProductRepository) InsertImagesTx(ctx context.Context, tx pgx.Tx, productID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	var sb strings.Builder
	args := make([]any, 0, len(urls)*2)
	sb.WriteString("INSERT INTO product_images (url, product_id) VALUES ")
	for i, url := range urls {
		if i > 0 {
			sb.WriteString(",")
		}
		pi := i*2 + 1
		sb.WriteString(fmt.Sprintf("($%d,$%d)", pi, pi+1))
		args = append(args, url, productID)
	}
	if _, err := tx.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert product images: %w", err)
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	if err := scanProduct(r.DB.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := r.attachImages(ctx, []*model.Product{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByTitleOrSlug matches the title case-insensitively or the slug in lowercase.
func (r *ProductRepository) GetByTitleOrSlug(ctx context.Context, term string) (*model.Product, error) {
	var p model.Product
	query := `SELECT ` + productColumns + ` FROM products WHERE UPPER(title)=$1 OR slug=$2 LIMIT 1`
	err := scanProduct(r.DB.QueryRow(ctx, query, strings.ToUpper(term), strings.ToLower(term)), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product by term: %w", err)
	}
	if err := r.attachImages(ctx, []*model.Product{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at, id LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	list := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	ptrs := make([]*model.Product, len(list))
	for i := range list {
		ptrs[i] = &list[i]
	}
	if err := r.attachImages(ctx, ptrs); err != nil {
		return nil, err
	}
	return list, nil
}

// attachImages loads the images of every product in one query.
func (r *ProductRepository) attachImages(ctx context.Context, products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	byID := make(map[string]*model.Product, len(products))
	for i, p := range products {
		ids[i] = p.ID
		byID[p.ID] = p
		p.Images = []model.ProductImage{}
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, url, product_id FROM product_images WHERE product_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img model.ProductImage
		if err := rows.Scan(&img.ID, &img.URL, &img.ProductID); err != nil {
			return fmt.Errorf("scan product image: %w", err)
		}
		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}
	return rows.Err()
}

// DeleteProduct removes the product; its images go with it via ON DELETE CASCADE.
func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllTx wipes every product. Only the seed uses it.
func (r *ProductRepository) DeleteAllTx(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	return nil
}
