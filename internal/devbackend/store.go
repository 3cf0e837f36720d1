// Package devbackend is an in-memory stand-in for the inventory backend. It
// serves the same /products/api/v1/ surface the console consumes, for local
// development and integration tests.
package devbackend

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

var (
	ErrUserExists      = errors.New("username already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrNotFound        = errors.New("not found")
	ErrUnknownCategory = errors.New("category does not exist")
)

type account struct {
	user         domain.User
	passwordHash []byte
}

// Store holds users, categories and products. All methods are safe for
// concurrent use and return copies.
type Store struct {
	mu         sync.RWMutex
	cost       int
	users      map[int64]*account
	byUsername map[string]int64
	categories map[int64]domain.Category
	products   map[int64]domain.Product

	nextUserID     int64
	nextCategoryID int64
	nextProductID  int64
}

// NewStore returns an empty store hashing passwords at the given bcrypt cost;
// zero means bcrypt.DefaultCost.
func NewStore(cost int) *Store {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Store{
		cost:       cost,
		users:      make(map[int64]*account),
		byUsername: make(map[string]int64),
		categories: make(map[int64]domain.Category),
		products:   make(map[int64]domain.Product),
	}
}

// --- Users ---

func (s *Store) CreateUser(username, email, password string, roles ...string) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUsername[username]; taken {
		return domain.User{}, ErrUserExists
	}
	s.nextUserID++
	user := domain.User{ID: s.nextUserID, Username: username, Email: email, Roles: append([]string{}, roles...)}
	s.users[user.ID] = &account{user: user, passwordHash: hash}
	s.byUsername[username] = user.ID
	return cloneUser(user), nil
}

// Authenticate checks a username/password pair.
func (s *Store) Authenticate(username, password string) (domain.User, error) {
	s.mu.RLock()
	id, ok := s.byUsername[username]
	var acc account
	if ok {
		acc = *s.users[id]
	}
	s.mu.RUnlock()
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return domain.User{}, ErrInvalidPassword
	}
	return cloneUser(acc.user), nil
}

func (s *Store) User(id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return cloneUser(acc.user), nil
}

// ProfileChange is an edit of a user's own account. Empty fields are left as they are.
type ProfileChange struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile applies change to the user. A new password requires the
// current one.
func (s *Store) UpdateProfile(id int64, change ProfileChange) (domain.User, error) {
	var newHash []byte
	if change.NewPassword != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(change.NewPassword), s.cost)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		newHash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.users[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	if newHash != nil && bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(change.CurrentPassword)) != nil {
		return domain.User{}, ErrInvalidPassword
	}
	if change.Username != "" && change.Username != acc.user.Username {
		if _, taken := s.byUsername[change.Username]; taken {
			return domain.User{}, ErrUserExists
		}
		delete(s.byUsername, acc.user.Username)
		s.byUsername[change.Username] = id
		acc.user.Username = change.Username
	}
	if change.Email != "" {
		acc.user.Email = change.Email
	}
	if change.FirstName != "" {
		acc.user.FirstName = change.FirstName
	}
	if change.LastName != "" {
		acc.user.LastName = change.LastName
	}
	if newHash != nil {
		acc.passwordHash = newHash
	}
	return cloneUser(acc.user), nil
}

func cloneUser(u domain.User) domain.User {
	u.Roles = append([]string{}, u.Roles...)
	return u
}

// --- Categories ---

func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b domain.Category) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *Store) Category(id int64) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return domain.Category{}, ErrNotFound
	}
	return c, nil
}

// SaveCategory creates a category when id is zero and replaces it otherwise.
func (s *Store) SaveCategory(id int64, in domain.CategoryInput) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == 0 {
		s.nextCategoryID++
		id = s.nextCategoryID
	} else if _, ok := s.categories[id]; !ok {
		return domain.Category{}, ErrNotFound
	}
	desc := ""
	if in.Description != nil {
		desc = *in.Description
	}
	c := domain.Category{ID: id, Name: in.Name, Icon: in.Icon, Description: &desc}
	s.categories[id] = c
	return c, nil
}

// DeleteCategory removes a category and detaches its products.
func (s *Store) DeleteCategory(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return ErrNotFound
	}
	delete(s.categories, id)
	for pid, p := range s.products {
		if p.InCategory(id) {
			p.Category = nil
			s.products[pid] = p
		}
	}
	return nil
}

// --- Products ---

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, s.withDetails(p))
	}
	slices.SortFunc(out, func(a, b domain.Product) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *Store) Product(id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return s.withDetails(p), nil
}

// SaveProduct creates a product when id is zero and replaces it otherwise.
func (s *Store) SaveProduct(id int64, in domain.ProductInput) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.Category != nil {
		if _, ok := s.categories[*in.Category]; !ok {
			return domain.Product{}, ErrUnknownCategory
		}
	}
	if id == 0 {
		s.nextProductID++
		id = s.nextProductID
	} else if _, ok := s.products[id]; !ok {
		return domain.Product{}, ErrNotFound
	}
	var category *int64
	if in.Category != nil {
		c := *in.Category
		category = &c
	}
	p := domain.Product{
		ID:           id,
		Name:         in.Name,
		Price:        in.Price.Round(2),
		Quantity:     in.Quantity,
		SoldQuantity: in.SoldQuantity,
		Category:     category,
	}
	s.products[id] = p
	return s.withDetails(p), nil
}

func (s *Store) DeleteProduct(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.products, id)
	return nil
}

// withDetails attaches the category snapshot. Callers hold the lock.
func (s *Store) withDetails(p domain.Product) domain.Product {
	p.CategoryDetails = nil
	if p.Category != nil {
		if c, ok := s.categories[*p.Category]; ok {
			p.CategoryDetails = &c
		}
	}
	return p
}

// Seed loads demo accounts (admin, manager and reader, password equal to the
// username) and a small catalogue.
func (s *Store) Seed() error {
	for _, u := range []struct{ name, role string }{
		{"admin", domain.RoleAdmin},
		{"manager", domain.RoleManager},
		{"reader", domain.RoleReader},
	} {
		if _, err := s.CreateUser(u.name, u.name+"@stockmanager.local", u.name, u.role); err != nil {
			return fmt.Errorf("seed user %s: %w", u.name, err)
		}
	}

	desc := func(text string) *string { return &text }
	tools, _ := s.SaveCategory(0, domain.CategoryInput{Name: "Tools", Icon: "🔧", Description: desc("Hand and power tools")})
	parts, _ := s.SaveCategory(0, domain.CategoryInput{Name: "Parts", Icon: "⚙️", Description: desc("Spare parts")})

	for _, p := range []domain.ProductInput{
		{Name: "Hammer", Price: decimal.RequireFromString("12.50"), Quantity: 24, SoldQuantity: 40, Category: &tools.ID},
		{Name: "Screwdriver set", Price: decimal.RequireFromString("19.99"), Quantity: 4, SoldQuantity: 12, Category: &tools.ID},
		{Name: "Cordless drill", Price: decimal.RequireFromString("89.00"), Quantity: 0, SoldQuantity: 7, Category: &tools.ID},
		{Name: "Hex bolt M8", Price: decimal.RequireFromString("0.35"), Quantity: 500, SoldQuantity: 1200, Category: &parts.ID},
		{Name: "Bearing 608", Price: decimal.RequireFromString("2.10"), Quantity: 5, SoldQuantity: 60, Category: &parts.ID},
		{Name: "Work gloves", Price: decimal.RequireFromString("6.75"), Quantity: 18, SoldQuantity: 3},
	} {
		if _, err := s.SaveProduct(0, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Name, err)
		}
	}
	return nil
}
