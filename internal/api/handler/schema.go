package handler

import (
	"github.com/shopspring/decimal"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// redirectResponse tells the caller which page to show next.
type redirectResponse struct {
	Redirect string          `json:"redirect"`
	Session  *domain.Session `json:"session,omitempty"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	FirstName       string `json:"first_name"       validate:"max=150"`
	LastName        string `json:"last_name"        validate:"max=150"`
	Username        string `json:"username"         validate:"required,max=150"`
	Email           string `json:"email"            validate:"required,email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// productRequest uses pointers for price and quantity so an omitted field is
// told apart from an explicit zero.
type productRequest struct {
	Name         string           `json:"name"          validate:"required,max=255"`
	Price        *decimal.Decimal `json:"price"         validate:"required,gte=0"`
	Quantity     *int             `json:"quantity"      validate:"required,gte=0"`
	SoldQuantity int              `json:"sold_quantity" validate:"gte=0"`
	Category     *int64           `json:"category"`
}

type categoryRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Icon        string  `json:"icon"        validate:"max=50"`
	Description *string `json:"description"`
}

// --- Response types ---

type loginPageResponse struct {
	Page    string         `json:"page"`
	Session domain.Session `json:"session"`
}

type productFormResponse struct {
	Product    *domain.Product   `json:"product,omitempty"`
	Categories []domain.Category `json:"categories"`
	CanEdit    bool              `json:"can_edit"`
}

type categoryFormResponse struct {
	Category *domain.Category `json:"category,omitempty"`
	CanEdit  bool             `json:"can_edit"`
}

type profileResponse struct {
	User        domain.User `json:"user"`
	DisplayRole string      `json:"display_role"`
}

func (r productRequest) toInput() domain.ProductInput {
	return domain.ProductInput{
		Name:         r.Name,
		Price:        *r.Price,
		Quantity:     *r.Quantity,
		SoldQuantity: r.SoldQuantity,
		Category:     r.Category,
	}
}

func (r categoryRequest) toInput() domain.CategoryInput {
	return domain.CategoryInput{Name: r.Name, Icon: r.Icon, Description: r.Description}
}

func (r profileRequest) toUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Username:        r.Username,
		Email:           r.Email,
		CurrentPassword: r.CurrentPassword,
		NewPassword:     r.NewPassword,
	}
}
