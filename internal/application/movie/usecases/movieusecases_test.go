package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/id"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/services/sanitizer"
)

type mockMovieRepo struct {
	bySID      map[string]*movie.Movie
	nextID     uint
	lastFilter movie.Filter
	deletedIDs []uint
}

func newMockMovieRepo() *mockMovieRepo {
	return &mockMovieRepo{bySID: make(map[string]*movie.Movie), nextID: 1}
}

func (m *mockMovieRepo) Create(ctx context.Context, mv *movie.Movie) error {
	if err := mv.SetID(m.nextID); err != nil {
		return err
	}
	m.nextID++
	m.bySID[mv.SID()] = mv
	return nil
}
func (m *mockMovieRepo) Update(ctx context.Context, mv *movie.Movie) error {
	m.bySID[mv.SID()] = mv
	return nil
}
func (m *mockMovieRepo) Delete(ctx context.Context, movieID uint) error {
	m.deletedIDs = append(m.deletedIDs, movieID)
	for sid, mv := range m.bySID {
		if mv.ID() == movieID {
			delete(m.bySID, sid)
		}
	}
	return nil
}
func (m *mockMovieRepo) GetByID(ctx context.Context, movieID uint) (*movie.Movie, error) {
	for _, mv := range m.bySID {
		if mv.ID() == movieID {
			return mv, nil
		}
	}
	return nil, nil
}
func (m *mockMovieRepo) GetBySID(ctx context.Context, sid string) (*movie.Movie, error) {
	return m.bySID[sid], nil
}
func (m *mockMovieRepo) List(ctx context.Context, filter movie.Filter, offset, limit int) ([]*movie.Movie, int64, error) {
	m.lastFilter = filter
	var out []*movie.Movie
	for _, mv := range m.bySID {
		if mv.Premium() && !filter.IncludePremium {
			continue
		}
		out = append(out, mv)
	}
	return out, int64(len(out)), nil
}

type recordingAnnouncer struct {
	announced chan string
}

func (r *recordingAnnouncer) NotifyNewMovie(ctx context.Context, m *movie.Movie) {
	r.announced <- m.SID()
}

func validInput() MovieInput {
	return MovieInput{
		Title:             "Blade Sprinter",
		Genre:             "sci-fi",
		ReleaseYear:       2017,
		Rating:            8.1,
		Director:          "D. Villeneuve",
		DurationMinutes:   164,
		MainLead:          "R. Gosling",
		StreamingPlatform: "CineVault",
		Description:       "A blade sprinter unearths a long-buried secret.",
		Premium:           true,
	}
}

func TestCreateMovie_SanitizesAndAnnounces(t *testing.T) {
	repo := newMockMovieRepo()
	announcer := &recordingAnnouncer{announced: make(chan string, 1)}
	uc := NewCreateMovieUseCase(repo, sanitizer.NewService(), announcer, logger.NewLogger())

	input := validInput()
	input.Title = "Blade Sprinter<script>alert(1)</script>"
	input.Description = "<b>A blade sprinter</b> unearths a long-buried secret."

	result, err := uc.Execute(context.Background(), CreateMovieCommand{Input: input})
	require.NoError(t, err)

	created := result.Movie
	assert.True(t, id.HasPrefix(created.SID(), id.PrefixMovie))
	assert.Equal(t, "Blade Sprinter", created.Title())
	assert.Equal(t, "A blade sprinter unearths a long-buried secret.", created.Attributes().Description)
	assert.Equal(t, "Sci-Fi", created.Attributes().Genre)

	select {
	case announcedSID := <-announcer.announced:
		assert.Equal(t, created.SID(), announcedSID)
	case <-time.After(time.Second):
		t.Fatal("new movie was never announced")
	}
}

func TestCreateMovie_InvalidAttributes(t *testing.T) {
	uc := NewCreateMovieUseCase(newMockMovieRepo(), sanitizer.NewService(), nil, logger.NewLogger())

	input := validInput()
	input.Title = ""
	_, err := uc.Execute(context.Background(), CreateMovieCommand{Input: input})

	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}

func seedMovie(t *testing.T, repo *mockMovieRepo, premium bool) *movie.Movie {
	t.Helper()
	input := validInput()
	input.Premium = premium
	uc := NewCreateMovieUseCase(repo, sanitizer.NewService(), nil, logger.NewLogger())
	result, err := uc.Execute(context.Background(), CreateMovieCommand{Input: input})
	require.NoError(t, err)
	return result.Movie
}

func TestListMovies_PaginationDefaults(t *testing.T) {
	repo := newMockMovieRepo()
	seedMovie(t, repo, false)
	uc := NewListMoviesUseCase(repo, sanitizer.NewService(), logger.NewLogger())

	result, err := uc.Execute(context.Background(), ListMoviesCommand{Page: -3, PageSize: 5000})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Page)
	assert.Equal(t, maxPageSize, result.PageSize)
	assert.Equal(t, int64(1), result.Total)
}

func TestListMovies_EntitlementControlsPremiumRows(t *testing.T) {
	repo := newMockMovieRepo()
	seedMovie(t, repo, false)
	seedMovie(t, repo, true)
	uc := NewListMoviesUseCase(repo, sanitizer.NewService(), logger.NewLogger())

	free, err := uc.Execute(context.Background(), ListMoviesCommand{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), free.Total)
	assert.False(t, repo.lastFilter.IncludePremium)

	entitled, err := uc.Execute(context.Background(), ListMoviesCommand{IncludePremium: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), entitled.Total)
	assert.True(t, repo.lastFilter.IncludePremium)
}

func TestGetMovie_PremiumRequiresEntitlement(t *testing.T) {
	repo := newMockMovieRepo()
	premium := seedMovie(t, repo, true)
	uc := NewGetMovieUseCase(repo, logger.NewLogger())

	_, err := uc.Execute(context.Background(), GetMovieCommand{SID: premium.SID()})
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeForbidden, appErr.Type)

	result, err := uc.Execute(context.Background(), GetMovieCommand{SID: premium.SID(), IncludePremium: true})
	require.NoError(t, err)
	assert.Equal(t, premium.SID(), result.Movie.SID())
}

func TestGetMovie_NotFound(t *testing.T) {
	uc := NewGetMovieUseCase(newMockMovieRepo(), logger.NewLogger())

	_, err := uc.Execute(context.Background(), GetMovieCommand{SID: "mov_missing"})
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeNotFound, appErr.Type)
}

func TestUpdateMovie(t *testing.T) {
	repo := newMockMovieRepo()
	existing := seedMovie(t, repo, false)
	uc := NewUpdateMovieUseCase(repo, sanitizer.NewService(), logger.NewLogger())

	input := validInput()
	input.Rating = 9.0
	input.Premium = true
	result, err := uc.Execute(context.Background(), UpdateMovieCommand{SID: existing.SID(), Input: input})
	require.NoError(t, err)

	assert.Equal(t, 9.0, result.Movie.Attributes().Rating)
	assert.True(t, result.Movie.Premium())

	_, err = uc.Execute(context.Background(), UpdateMovieCommand{SID: "mov_missing", Input: validInput()})
	require.Error(t, err)
}

func TestDeleteMovie(t *testing.T) {
	repo := newMockMovieRepo()
	existing := seedMovie(t, repo, false)
	uc := NewDeleteMovieUseCase(repo, logger.NewLogger())

	require.NoError(t, uc.Execute(context.Background(), DeleteMovieCommand{SID: existing.SID()}))
	assert.Equal(t, []uint{existing.ID()}, repo.deletedIDs)

	err := uc.Execute(context.Background(), DeleteMovieCommand{SID: existing.SID()})
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrorTypeNotFound, appErr.Type)
}
