package usecases

import (
	"context"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	"github.com/cinevault-inc/cinevault/internal/shared/services/sanitizer"
)

// MovieAnnouncer fans a new-movie push notification out to registered
// devices. Best effort, invoked off the request path.
type MovieAnnouncer interface {
	NotifyNewMovie(ctx context.Context, m *movie.Movie)
}

// MovieInput carries the writable catalog fields of a movie as submitted
// by a supervisor.
type MovieInput struct {
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

// toAttributes sanitizes the free-text fields and normalizes the genre to
// title case so "sci-fi" and "Sci-Fi" land in the same bucket.
func toAttributes(s *sanitizer.Service, in MovieInput) movie.Attributes {
	// Casers are stateful, build one per call.
	genreCaser := cases.Title(language.English)
	return movie.Attributes{
		Title:             s.Plain(in.Title),
		Genre:             genreCaser.String(s.Plain(in.Genre)),
		ReleaseYear:       in.ReleaseYear,
		Rating:            in.Rating,
		Director:          s.Plain(in.Director),
		DurationMinutes:   in.DurationMinutes,
		MainLead:          s.Plain(in.MainLead),
		StreamingPlatform: s.Plain(in.StreamingPlatform),
		Description:       s.Plain(in.Description),
		Premium:           in.Premium,
		PosterURL:         s.Plain(in.PosterURL),
		BannerURL:         s.Plain(in.BannerURL),
	}
}
