package usecases

import (
	"context"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type GetMovieCommand struct {
	SID string

	// IncludePremium comes from the caller's entitlement.
	IncludePremium bool
}

type GetMovieResult struct {
	Movie *movie.Movie
}

type GetMovieUseCase struct {
	movieRepo movie.Repository
	logger    logger.Interface
}

func NewGetMovieUseCase(movieRepo movie.Repository, logger logger.Interface) *GetMovieUseCase {
	return &GetMovieUseCase{movieRepo: movieRepo, logger: logger}
}

// Execute fetches one movie by its public ID. Premium entries require
// premium entitlement.
func (uc *GetMovieUseCase) Execute(ctx context.Context, cmd GetMovieCommand) (*GetMovieResult, error) {
	found, err := uc.movieRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get movie", "sid", cmd.SID, "error", err)
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	if found == nil {
		return nil, errors.NewNotFoundError("movie not found")
	}

	if found.Premium() && !cmd.IncludePremium {
		return nil, errors.NewForbiddenError("a premium subscription is required to view this title")
	}

	return &GetMovieResult{Movie: found}, nil
}
