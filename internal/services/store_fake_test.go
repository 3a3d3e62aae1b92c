package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"
	"github.com/ivandex16/teslo-shop-curso-nest/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memState is one consistent view of the tables. A transaction works on a
// private copy and swaps it in on commit.
type memState struct {
	users    map[string]model.User
	products map[string]model.Product
	nextImg  int64
}

func (s *memState) clone() *memState {
	c := &memState{
		users:    make(map[string]model.User, len(s.users)),
		products: make(map[string]model.Product, len(s.products)),
		nextImg:  s.nextImg,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		v.Images = slices.Clone(v.Images)
		c.products[k] = v
	}
	return c
}

type memDB struct {
	mu    sync.Mutex
	state *memState
	clock time.Time

	failInsertImages bool
	commits          int
}

func newMemDB() *memDB {
	return &memDB{
		state: &memState{users: map[string]model.User{}, products: map[string]model.Product{}},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (db *memDB) tick() *time.Time {
	db.clock = db.clock.Add(time.Second)
	t := db.clock
	return &t
}

func (db *memDB) Begin(context.Context) (pgx.Tx, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return &fakeTx{db: db, state: db.state.clone()}, nil
}

func (db *memDB) snapshot() *memState {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.state.clone()
}

type fakeTx struct {
	pgx.Tx
	db    *memDB
	state *memState
	done  bool
}

func (t *fakeTx) Commit(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.db.mu.Lock()
	t.db.state = t.state
	t.db.commits++
	t.db.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	return nil
}

func txState(tx pgx.Tx) *memState {
	return tx.(*fakeTx).state
}

func duplicate(detail string) error {
	return fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", Detail: detail})
}

type memUsers struct{ db *memDB }

func (m *memUsers) insert(s *memState, u *model.User) error {
	for _, other := range s.users {
		if other.Email == u.Email {
			return duplicate(fmt.Sprintf("Key (email)=(%s) already exists.", u.Email))
		}
	}
	if len(u.Roles) == 0 {
		u.Roles = []string{model.RoleUser}
	}
	u.ID = uuid.NewString()
	u.IsActive = true
	u.CreatedAt = m.db.tick()
	s.users[u.ID] = *u
	return nil
}

func (m *memUsers) CreateUser(_ context.Context, u *model.User) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	return m.insert(m.db.state, u)
}

func (m *memUsers) CreateUserTx(_ context.Context, tx pgx.Tx, u *model.User) error {
	return m.insert(txState(tx), u)
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, u := range m.db.state.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	u, ok := m.db.state.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.PasswordHash = ""
	return &u, nil
}

func (m *memUsers) DeleteAllTx(_ context.Context, tx pgx.Tx) error {
	txState(tx).users = map[string]model.User{}
	return nil
}

func (m *memUsers) setActive(id string, active bool) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	u := m.db.state.users[id]
	u.IsActive = active
	m.db.state.users[id] = u
}

type memProducts struct{ db *memDB }

func (m *memProducts) Begin(ctx context.Context) (pgx.Tx, error) {
	return m.db.Begin(ctx)
}

func checkUnique(s *memState, p *model.Product) error {
	for id, other := range s.products {
		if id == p.ID {
			continue
		}
		if other.Title == p.Title {
			return duplicate(fmt.Sprintf("Key (title)=(%s) already exists.", p.Title))
		}
		if other.Slug == p.Slug {
			return duplicate(fmt.Sprintf("Key (slug)=(%s) already exists.", p.Slug))
		}
	}
	return nil
}

func (m *memProducts) CreateProductTx(_ context.Context, tx pgx.Tx, p *model.Product) error {
	s := txState(tx)
	p.NormalizeSlug()
	if err := checkUnique(s, p); err != nil {
		return err
	}
	p.ID = uuid.NewString()
	p.CreatedAt = m.db.tick()
	stored := *p
	stored.Images = nil
	s.products[p.ID] = stored
	return nil
}

func (m *memProducts) UpdateProductTx(_ context.Context, tx pgx.Tx, p *model.Product) error {
	s := txState(tx)
	cur, ok := s.products[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.NormalizeSlug()
	if err := checkUnique(s, p); err != nil {
		return err
	}
	images := cur.Images
	cur = *p
	cur.Images = images
	s.products[p.ID] = cur
	return nil
}

func (m *memProducts) DeleteImagesTx(_ context.Context, tx pgx.Tx, productID string) error {
	s := txState(tx)
	p := s.products[productID]
	p.Images = nil
	s.products[productID] = p
	return nil
}

func (m *memProducts) InsertImagesTx(_ context.Context, tx pgx.Tx, productID string, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	if m.db.failInsertImages {
		return fmt.Errorf("insert product images: %w", pgx.ErrTxClosed)
	}
	s := txState(tx)
	p := s.products[productID]
	for _, url := range urls {
		s.nextImg++
		p.Images = append(p.Images, model.ProductImage{ID: s.nextImg, URL: url, ProductID: productID})
	}
	s.products[productID] = p
	return nil
}

func (m *memProducts) DeleteAllTx(_ context.Context, tx pgx.Tx) error {
	txState(tx).products = map[string]model.Product{}
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*model.Product, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	p, ok := m.db.state.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Images = slices.Clone(p.Images)
	return &p, nil
}

func (m *memProducts) GetByTitleOrSlug(_ context.Context, term string) (*model.Product, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	for _, p := range m.db.state.products {
		if strings.EqualFold(p.Title, term) || p.Slug == strings.ToLower(term) {
			p.Images = slices.Clone(p.Images)
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memProducts) List(_ context.Context, limit, offset int) ([]model.Product, error) {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	all := make([]model.Product, 0, len(m.db.state.products))
	for _, p := range m.db.state.products {
		p.Images = slices.Clone(p.Images)
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(*all[j].CreatedAt) })
	if offset >= len(all) {
		return []model.Product{}, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *memProducts) DeleteProduct(_ context.Context, id string) error {
	m.db.mu.Lock()
	defer m.db.mu.Unlock()
	if _, ok := m.db.state.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.db.state.products, id)
	return nil
}

type stubTokens struct {
	issued []string
	err    error
}

func (s *stubTokens) Issue(userID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, userID)
	return "token-" + userID, nil
}
