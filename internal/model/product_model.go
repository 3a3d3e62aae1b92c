package model

import (
	"strings"
	"time"
)

var ValidGenders = []string{"men", "women", "kid", "unisex"}

type ProductImage struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	ProductID string `json:"-"`
}

type Product struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Price       float64        `json:"price"`
	Description *string        `json:"description"`
	Slug        string         `json:"slug"`
	Stock       int            `json:"stock"`
	Sizes       []string       `json:"sizes"`
	Gender      string         `json:"gender"`
	Tags        []string       `json:"tags"`
	Images      []ProductImage `json:"-"`
	UserID      *string        `json:"-"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
}

// PlainProduct is the external shape of a product: images flattened to URLs.
type PlainProduct struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description *string  `json:"description"`
	Slug        string   `json:"slug"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Gender      string   `json:"gender"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

func (p *Product) Plain() PlainProduct {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return PlainProduct{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Slug:        p.Slug,
		Stock:       p.Stock,
		Sizes:       NonNil(p.Sizes),
		Gender:      p.Gender,
		Tags:        NonNil(p.Tags),
		Images:      urls,
	}
}

// NormalizeSlug runs before every product insert and update. An empty slug is
// derived from the title.
func (p *Product) NormalizeSlug() {
	if strings.TrimSpace(p.Slug) == "" {
		p.Slug = p.Title
	}
	p.Slug = Slugify(p.Slug)
}

func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "'", "")
}

// NonNil returns s, or an empty slice when s is nil.
func NonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
