package domain

// ProductListView is what the product list page renders.
// Failed marks the "no data" treatment: both collections are empty then.
type ProductListView struct {
	Loading    bool            `json:"loading"`
	Failed     bool            `json:"failed"`
	Filter     ViewFilterState `json:"filter"`
	Products   []Product       `json:"products"`
	Categories []Category      `json:"categories"`
	Total      int             `json:"total"`
}

// CategoryListView is what the category list page renders.
type CategoryListView struct {
	Failed     bool       `json:"failed"`
	Categories []Category `json:"categories"`
}

// DashboardView is what the dashboard page renders. Stats is nil when Failed.
type DashboardView struct {
	Failed bool   `json:"failed"`
	Stats  *Stats `json:"stats"`
}
