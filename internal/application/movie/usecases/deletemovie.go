package usecases

import (
	"context"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type DeleteMovieCommand struct {
	SID string
}

type DeleteMovieUseCase struct {
	movieRepo movie.Repository
	logger    logger.Interface
}

func NewDeleteMovieUseCase(movieRepo movie.Repository, logger logger.Interface) *DeleteMovieUseCase {
	return &DeleteMovieUseCase{movieRepo: movieRepo, logger: logger}
}

// Execute removes a movie from the catalog.
func (uc *DeleteMovieUseCase) Execute(ctx context.Context, cmd DeleteMovieCommand) error {
	existing, err := uc.movieRepo.GetBySID(ctx, cmd.SID)
	if err != nil {
		uc.logger.Errorw("failed to get movie", "sid", cmd.SID, "error", err)
		return fmt.Errorf("failed to get movie: %w", err)
	}
	if existing == nil {
		return errors.NewNotFoundError("movie not found")
	}

	if err := uc.movieRepo.Delete(ctx, existing.ID()); err != nil {
		uc.logger.Errorw("failed to delete movie", "sid", cmd.SID, "error", err)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	uc.logger.Infow("movie deleted", "movie_id", existing.ID(), "sid", existing.SID())
	return nil
}
