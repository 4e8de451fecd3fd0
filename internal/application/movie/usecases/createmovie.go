package usecases

import (
	"context"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/goroutine"
	"github.com/cinevault-inc/cinevault/internal/shared/id"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/services/sanitizer"
)

type CreateMovieCommand struct {
	Input MovieInput
}

type CreateMovieResult struct {
	Movie *movie.Movie
}

type CreateMovieUseCase struct {
	movieRepo movie.Repository
	sanitizer *sanitizer.Service
	announcer MovieAnnouncer
	logger    logger.Interface
}

func NewCreateMovieUseCase(
	movieRepo movie.Repository,
	sanitizer *sanitizer.Service,
	announcer MovieAnnouncer,
	logger logger.Interface,
) *CreateMovieUseCase {
	return &CreateMovieUseCase{
		movieRepo: movieRepo,
		sanitizer: sanitizer,
		announcer: announcer,
		logger:    logger,
	}
}

// Execute adds a movie to the catalog and fans the announcement out to
// registered devices off the request path.
func (uc *CreateMovieUseCase) Execute(ctx context.Context, cmd CreateMovieCommand) (*CreateMovieResult, error) {
	newMovie, err := movie.NewMovie(
		id.MustGenerateWithPrefix(id.PrefixMovie),
		toAttributes(uc.sanitizer, cmd.Input),
	)
	if err != nil {
		return nil, errors.NewValidationError("invalid movie", err.Error())
	}

	if err := uc.movieRepo.Create(ctx, newMovie); err != nil {
		uc.logger.Errorw("failed to create movie", "title", newMovie.Title(), "error", err)
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	uc.logger.Infow("movie created",
		"movie_id", newMovie.ID(), "sid", newMovie.SID(), "premium", newMovie.Premium())

	if uc.announcer != nil {
		created := newMovie
		goroutine.SafeGo(uc.logger, "new-movie-fanout", func() {
			uc.announcer.NotifyNewMovie(context.Background(), created)
		})
	}

	return &CreateMovieResult{Movie: newMovie}, nil
}
