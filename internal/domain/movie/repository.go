package movie

import "context"

// Filter restricts catalog listings. Zero values mean "no restriction";
// IncludePremium is set from the caller's entitlement, never from request
// input.
type Filter struct {
	Title          string
	Genre          string
	ReleaseYear    *int
	MinRating      *float64
	Premium        *bool
	IncludePremium bool
}

// Repository defines persistence operations for the movie catalog
type Repository interface {
	Create(ctx context.Context, m *Movie) error
	Update(ctx context.Context, m *Movie) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Movie, error)
	GetBySID(ctx context.Context, sid string) (*Movie, error)
	List(ctx context.Context, filter Filter, offset, limit int) ([]*Movie, int64, error)
}
