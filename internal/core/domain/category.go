package domain

// Category groups products. Icon is a CSS class or an emoji.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description *string `json:"description"`
}

// CategoryInput is the create/update payload for categories.
type CategoryInput struct {
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description *string `json:"description"`
}
