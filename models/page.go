package models

// Page is one page of a filtered listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// All returns every persisted model, in migration order.
func All() []any {
	return []any{
		&Project{},
		&Experience{},
		&Education{},
		&BlogPost{},
		&Comment{},
		&Message{},
		&User{},
		&ProfileInfo{},
		&SiteSettings{},
	}
}
