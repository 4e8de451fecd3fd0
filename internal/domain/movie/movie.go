package movie

import (
	"fmt"
	"time"
)

// Attributes holds the catalog fields of a movie. All of them are required
// except the poster and banner URLs.
type Attributes struct {
	Title             string
	Genre             string
	ReleaseYear       int
	Rating            float64
	Director          string
	DurationMinutes   int
	MainLead          string
	StreamingPlatform string
	Description       string
	Premium           bool
	PosterURL         string
	BannerURL         string
}

// Movie represents a catalog entry. Premium entries are only listed for and
// served to users whose subscription entitles them to premium content.
type Movie struct {
	id        uint
	sid       string
	attrs     Attributes
	createdAt time.Time
	updatedAt time.Time
}

// NewMovie creates a new movie with validated attributes
func NewMovie(sid string, attrs Attributes) (*Movie, error) {
	if err := validateAttributes(attrs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Movie{
		sid:       sid,
		attrs:     attrs,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructMovie reconstructs a movie from persistence
func ReconstructMovie(id uint, sid string, attrs Attributes, createdAt, updatedAt time.Time) (*Movie, error) {
	if id == 0 {
		return nil, fmt.Errorf("movie ID cannot be zero")
	}
	return &Movie{
		id:        id,
		sid:       sid,
		attrs:     attrs,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (m *Movie) ID() uint              { return m.id }
func (m *Movie) SID() string           { return m.sid }
func (m *Movie) Attributes() Attributes { return m.attrs }
func (m *Movie) Title() string         { return m.attrs.Title }
func (m *Movie) Premium() bool         { return m.attrs.Premium }
func (m *Movie) CreatedAt() time.Time  { return m.createdAt }
func (m *Movie) UpdatedAt() time.Time  { return m.updatedAt }

// SetID sets the movie ID (only for persistence layer use)
func (m *Movie) SetID(id uint) error {
	if m.id != 0 {
		return fmt.Errorf("movie ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("movie ID cannot be zero")
	}
	m.id = id
	return nil
}

// Update replaces the movie's attributes after validation
func (m *Movie) Update(attrs Attributes) error {
	if err := validateAttributes(attrs); err != nil {
		return err
	}
	m.attrs = attrs
	m.updatedAt = time.Now().UTC()
	return nil
}

func validateAttributes(a Attributes) error {
	switch {
	case a.Title == "":
		return fmt.Errorf("%w: title", ErrMissingAttribute)
	case a.Genre == "":
		return fmt.Errorf("%w: genre", ErrMissingAttribute)
	case a.Director == "":
		return fmt.Errorf("%w: director", ErrMissingAttribute)
	case a.MainLead == "":
		return fmt.Errorf("%w: main lead", ErrMissingAttribute)
	case a.StreamingPlatform == "":
		return fmt.Errorf("%w: streaming platform", ErrMissingAttribute)
	case a.Description == "":
		return fmt.Errorf("%w: description", ErrMissingAttribute)
	}
	if a.ReleaseYear < 1888 {
		return fmt.Errorf("%w: release year %d", ErrInvalidAttribute, a.ReleaseYear)
	}
	if a.Rating < 0 || a.Rating > 10 {
		return fmt.Errorf("%w: rating %.1f", ErrInvalidAttribute, a.Rating)
	}
	if a.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration %d", ErrInvalidAttribute, a.DurationMinutes)
	}
	return nil
}
