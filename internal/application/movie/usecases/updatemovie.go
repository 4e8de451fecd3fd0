package usecases

import (
	"context"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/services/sanitizer"
)

type UpdateMovieCommand struct {
	SID   string
	Input MovieInput
}

type UpdateMovieResult struct {
	Movie *movie.Movie
}

type UpdateMovieUseCase struct {
	movieRepo movie.Repository
	sanitizer *sanitizer.Service
	logger    logger.Interface
}

func NewUpdateMovieUseCase(movieRepo movie.Repository, sanitizer *sanitizer.Service, logger logger.Interface) *UpdateMovieUseCase {
	return &UpdateMovieUseCase{movieRepo: movieRepo, sanitizer: sanitizer, logger: logger}
}

// Execute replaces the catalog fields of an existing movie.
func (uc *UpdateMovieUseCase) Execute(ctx context.Context, cmd UpdateMovieCommand) (*UpdateMovieResult, error) {
	existing, err := uc.movieRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get movie", "sid", cmd.SID, "error", err)
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	if existing == nil {
		return nil, errors.NewNotFoundError("movie not found")
	}

	if err := existing.Update(toAttributes(uc.sanitizer, cmd.Input)); err != nil {
		return nil, errors.NewValidationError("invalid movie", err.Error())
	}

	if err := uc.movieRepo.Update(ctx, existing); err != nil {
		uc.logger.Errorw("failed to update movie", "sid", cmd.SID, "error", err)
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	uc.logger.Infow("movie updated", "movie_id", existing.ID(), "sid", existing.SID())
	return &UpdateMovieResult{Movie: existing}, nil
}
