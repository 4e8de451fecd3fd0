package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/mappers"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/models"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

// MovieRepository implements the movie catalog repository interface
type MovieRepository struct {
	db     *gorm.DB
	mapper mappers.MovieMapper
	logger logger.Interface
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(gormDB *gorm.DB, logger logger.Interface) movie.Repository {
	return &MovieRepository{
		db:     gormDB,
		mapper: mappers.NewMovieMapper(),
		logger: logger,
	}
}

// Create creates a new movie
func (r *MovieRepository) Create(ctx context.Context, entity *movie.Movie) error {
	model := r.mapper.ToModel(entity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create movie", "title", model.Title, "error", err)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set movie ID: %w", err)
	}

	r.logger.Infow("movie created", "id", model.ID, "title", model.Title)
	return nil
}

// Update updates an existing movie
func (r *MovieRepository) Update(ctx context.Context, entity *movie.Movie) error {
	model := r.mapper.ToModel(entity)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.MovieModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":              model.Title,
			"genre":              model.Genre,
			"release_year":       model.ReleaseYear,
			"rating":             model.Rating,
			"director":           model.Director,
			"duration_minutes":   model.DurationMinutes,
			"main_lead":          model.MainLead,
			"streaming_platform": model.StreamingPlatform,
			"description":        model.Description,
			"premium":            model.Premium,
			"poster_url":         model.PosterURL,
			"banner_url":         model.BannerURL,
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update movie", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return movie.ErrMovieNotFound
	}

	return nil
}

// Delete removes a movie by ID
func (r *MovieRepository) Delete(ctx context.Context, id uint) error {
	result := db.GetTxFromContext(ctx, r.db).Delete(&models.MovieModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete movie", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete movie: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

// GetByID retrieves a movie by ID
func (r *MovieRepository) GetByID(ctx context.Context, id uint) (*movie.Movie, error) {
	var model models.MovieModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get movie by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySID retrieves a movie by its public short ID
func (r *MovieRepository) GetBySID(ctx context.Context, sid string) (*movie.Movie, error) {
	var model models.MovieModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get movie by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// List returns a filtered page of the catalog plus the total count.
// Premium rows are excluded outright unless the filter grants access.
func (r *MovieRepository) List(ctx context.Context, filter movie.Filter, offset, limit int) ([]*movie.Movie, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.MovieModel{})

	if filter.Title != "" {
		query = query.Where("title LIKE ?", "%"+filter.Title+"%")
	}
	if filter.Genre != "" {
		query = query.Where("genre = ?", filter.Genre)
	}
	if filter.ReleaseYear != nil {
		query = query.Where("release_year = ?", *filter.ReleaseYear)
	}
	if filter.MinRating != nil {
		query = query.Where("rating >= ?", *filter.MinRating)
	}
	if !filter.IncludePremium {
		query = query.Where("premium = ?", false)
	} else if filter.Premium != nil {
		query = query.Where("premium = ?", *filter.Premium)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count movies", "error", err)
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	var movieModels []*models.MovieModel
	if err := query.Order("release_year DESC, title ASC").
		Offset(offset).
		Limit(limit).
		Find(&movieModels).Error; err != nil {
		r.logger.Errorw("failed to list movies", "error", err)
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}

	entities, err := r.mapper.ToEntities(movieModels)
	if err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}
