package mappers

import (
	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/models"
)

type MovieMapper interface {
	ToEntity(model *models.MovieModel) (*movie.Movie, error)
	ToModel(entity *movie.Movie) *models.MovieModel
	ToEntities(models []*models.MovieModel) ([]*movie.Movie, error)
}

type MovieMapperImpl struct{}

func NewMovieMapper() MovieMapper {
	return &MovieMapperImpl{}
}

func (m *MovieMapperImpl) ToEntity(model *models.MovieModel) (*movie.Movie, error) {
	if model == nil {
		return nil, nil
	}

	attrs := movie.Attributes{
		Title:             model.Title,
		Genre:             model.Genre,
		ReleaseYear:       model.ReleaseYear,
		Rating:            model.Rating,
		Director:          model.Director,
		DurationMinutes:   model.DurationMinutes,
		MainLead:          model.MainLead,
		StreamingPlatform: model.StreamingPlatform,
		Description:       model.Description,
		Premium:           model.Premium,
	}
	if model.PosterURL != nil {
		attrs.PosterURL = *model.PosterURL
	}
	if model.BannerURL != nil {
		attrs.BannerURL = *model.BannerURL
	}

	return movie.ReconstructMovie(model.ID, model.SID, attrs, model.CreatedAt, model.UpdatedAt)
}

func (m *MovieMapperImpl) ToModel(entity *movie.Movie) *models.MovieModel {
	if entity == nil {
		return nil
	}

	attrs := entity.Attributes()
	model := &models.MovieModel{
		ID:                entity.ID(),
		SID:               entity.SID(),
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
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}
	if attrs.PosterURL != "" {
		model.PosterURL = &attrs.PosterURL
	}
	if attrs.BannerURL != "" {
		model.BannerURL = &attrs.BannerURL
	}
	return model
}

func (m *MovieMapperImpl) ToEntities(movieModels []*models.MovieModel) ([]*movie.Movie, error) {
	entities := make([]*movie.Movie, 0, len(movieModels))
	for _, model := range movieModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
