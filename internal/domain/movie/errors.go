package movie

import "errors"

var (
	ErrMovieNotFound    = errors.New("movie not found")
	ErrMissingAttribute = errors.New("missing required attribute")
	ErrInvalidAttribute = errors.New("invalid attribute")
)
