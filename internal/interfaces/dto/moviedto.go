package dto

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cinevault-inc/cinevault/internal/application/movie/usecases"
	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	"github.com/cinevault-inc/cinevault/internal/shared/constants"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
)

// MovieRequest is the HTTP payload for creating or replacing a movie.
type MovieRequest struct {
	Title             string  `json:"title" binding:"required,max=255"`
	Genre             string  `json:"genre" binding:"required,max=100"`
	ReleaseYear       int     `json:"release_year" binding:"required,gte=1888,lte=2100"`
	Rating            float64 `json:"rating" binding:"gte=0,lte=10"`
	Director          string  `json:"director" binding:"required,max=255"`
	DurationMinutes   int     `json:"duration_minutes" binding:"required,gt=0"`
	MainLead          string  `json:"main_lead" binding:"required,max=255"`
	StreamingPlatform string  `json:"streaming_platform" binding:"required,max=100"`
	Description       string  `json:"description" binding:"required"`
	Premium           bool    `json:"premium"`
	PosterURL         string  `json:"poster_url" binding:"omitempty,url"`
	BannerURL         string  `json:"banner_url" binding:"omitempty,url"`
}

func (r *MovieRequest) ToInput() usecases.MovieInput {
	return usecases.MovieInput{
		Title:             r.Title,
		Genre:             r.Genre,
		ReleaseYear:       r.ReleaseYear,
		Rating:            r.Rating,
		Director:          r.Director,
		DurationMinutes:   r.DurationMinutes,
		MainLead:          r.MainLead,
		StreamingPlatform: r.StreamingPlatform,
		Description:       r.Description,
		Premium:           r.Premium,
		PosterURL:         r.PosterURL,
		BannerURL:         r.BannerURL,
	}
}

// MovieResponse is the public representation of a catalog entry.
type MovieResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Genre             string    `json:"genre"`
	ReleaseYear       int       `json:"release_year"`
	Rating            float64   `json:"rating"`
	Director          string    `json:"director"`
	DurationMinutes   int       `json:"duration_minutes"`
	MainLead          string    `json:"main_lead"`
	StreamingPlatform string    `json:"streaming_platform"`
	Description       string    `json:"description"`
	Premium           bool      `json:"premium"`
	PosterURL         string    `json:"poster_url,omitempty"`
	BannerURL         string    `json:"banner_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewMovieResponse(m *movie.Movie) MovieResponse {
	attrs := m.Attributes()
	return MovieResponse{
		ID:                m.SID(),
		Title:             attrs.Title,
		Genre:             attrs.Genre,
		ReleaseYear:       attrs.ReleaseYear,
		Rating:            attrs.Rating,
		Director:          attrs.Director,
		DurationMinutes:   attrs.DurationMinutes,
		MainLead:          attrs.MainLead,
		StreamingPlatform: attrs.StreamingPlatform,
		Description:       attrs.Description,
		Premium:           attrs.Premium,
		PosterURL:         attrs.PosterURL,
		BannerURL:         attrs.BannerURL,
		CreatedAt:         m.CreatedAt(),
	}
}

func NewMovieResponses(movies []*movie.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, NewMovieResponse(m))
	}
	return out
}

// ParseListMoviesRequest reads catalog filters and pagination from query
// parameters. Entitlement is deliberately absent here; the handler sets it
// from the caller's subscription.
func ParseListMoviesRequest(c *gin.Context) (usecases.ListMoviesCommand, error) {
	cmd := usecases.ListMoviesCommand{
		Title:    c.Query("title"),
		Genre:    c.Query("genre"),
		Page:     constants.DefaultPage,
		PageSize: constants.DefaultPageSize,
	}

	if yearStr := c.Query("release_year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return cmd, errors.NewValidationError("invalid release_year parameter")
		}
		cmd.ReleaseYear = &year
	}
	if ratingStr := c.Query("min_rating"); ratingStr != "" {
		rating, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil {
			return cmd, errors.NewValidationError("invalid min_rating parameter")
		}
		cmd.MinRating = &rating
	}
	if premiumStr := c.Query("premium"); premiumStr != "" {
		premium, err := strconv.ParseBool(premiumStr)
		if err != nil {
			return cmd, errors.NewValidationError("invalid premium parameter")
		}
		cmd.Premium = &premium
	}
	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return cmd, errors.NewValidationError("invalid page parameter")
		}
		cmd.Page = page
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 1 || pageSize > constants.MaxPageSize {
			return cmd, errors.NewValidationError("invalid page_size parameter")
		}
		cmd.PageSize = pageSize
	}

	return cmd, nil
}
