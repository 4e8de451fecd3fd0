package usecases

import (
	"context"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/services/sanitizer"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListMoviesCommand struct {
	Title       string
	Genre       string
	ReleaseYear *int
	MinRating   *float64
	Premium     *bool

	// IncludePremium comes from the caller's entitlement, never from
	// request input.
	IncludePremium bool

	Page     int
	PageSize int
}

type ListMoviesResult struct {
	Movies   []*movie.Movie
	Total    int64
	Page     int
	PageSize int
}

type ListMoviesUseCase struct {
	movieRepo movie.Repository
	sanitizer *sanitizer.Service
	logger    logger.Interface
}

func NewListMoviesUseCase(movieRepo movie.Repository, sanitizer *sanitizer.Service, logger logger.Interface) *ListMoviesUseCase {
	return &ListMoviesUseCase{movieRepo: movieRepo, sanitizer: sanitizer, logger: logger}
}

// Execute lists the catalog with filters and pagination. Premium rows are
// excluded entirely for callers without premium entitlement; they are not
// present in the results or the total.
func (uc *ListMoviesUseCase) Execute(ctx context.Context, cmd ListMoviesCommand) (*ListMoviesResult, error) {
	page := cmd.Page
	if page < 1 {
		page = 1
	}
	pageSize := cmd.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := movie.Filter{
		Title:          uc.sanitizer.Plain(cmd.Title),
		Genre:          uc.sanitizer.Plain(cmd.Genre),
		ReleaseYear:    cmd.ReleaseYear,
		MinRating:      cmd.MinRating,
		Premium:        cmd.Premium,
		IncludePremium: cmd.IncludePremium,
	}

	movies, total, err := uc.movieRepo.List(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		uc.logger.Errorw("failed to list movies", "error", err)
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	return &ListMoviesResult{
		Movies:   movies,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
