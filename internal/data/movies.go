package data

import (
	"context"
	_ "embed"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mroobert/movies-api/internal/database"
	"github.com/mroobert/movies-api/internal/validator"
)

//go:embed queries/movies/read_all.sql
var readAllMoviesSQL string

//go:embed queries/movies/read.sql
var readMovieSQL string

//go:embed queries/movies/create.sql
var createMovieSQL string

//go:embed queries/movies/create_with_id.sql
var createMovieWithIDSQL string

//go:embed queries/movies/update.sql
var updateMovieSQL string

//go:embed queries/movies/delete.sql
var deleteMovieSQL string

//go:embed queries/movies/title_taken.sql
var titleTakenSQL string

var (
	ErrDuplicateTitle = errors.New("duplicate title")
)

type (
	// Movie represents an individual movie record.
	Movie struct {
		ID    int64  `json:"id"`             // Unique integer ID for the movie
		Title string `json:"title"`          // Movie title, unique across all movies
		Year  *int32 `json:"year,omitempty"` // Release year; null in the database when unknown
	}

	// NewMovie contains the information needed to create or replace a movie.
	NewMovie struct {
		Title string `json:"title"`
		Year  *int32 `json:"year"`
	}

	// UpdateMovie contains the subset of fields supplied to a partial update.
	// Pointer fields distinguish an absent field from a zero value.
	UpdateMovie struct {
		Title *string `json:"title"`
		Year  *int32  `json:"year"`
	}

	// MovieStore defines the storage operations the handlers depend on.
	MovieStore interface {
		// ReadAll fetches every movie, ordered by id.
		ReadAll(ctx context.Context) ([]Movie, error)

		// Read fetches a single movie, returning ErrRecordNotFound when
		// no row matches the id.
		Read(ctx context.Context, id int64) (*Movie, error)

		// Insert stores a new movie and fills in its generated id.
		Insert(ctx context.Context, movie *Movie) error

		// InsertWithID stores a new movie under the explicit id already
		// set on it, bypassing id generation.
		InsertWithID(ctx context.Context, movie *Movie) error

		// Update overwrites the title and year of the row matching the
		// movie's id, returning ErrRecordNotFound when no row matches.
		Update(ctx context.Context, movie *Movie) error

		// Delete removes the row matching the id, returning
		// ErrRecordNotFound when no row matches.
		Delete(ctx context.Context, id int64) error

		// TitleTaken reports whether a movie other than excludeID already
		// uses the title. The create path passes 0, which also excludes a
		// row explicitly stored under id 0; the title's unique constraint
		// still rejects that duplicate at insert.
		TitleTaken(ctx context.Context, title string, excludeID int64) (bool, error)
	}

	// MovieRepository manages the set of APIs for movie database access.
	MovieRepository struct {
		DB *pgxpool.Pool
	}
)

func (m NewMovie) Validate(vld *validator.Validator) {
	vld.Check(m.Title != "", "title", "must be provided")
}

func (movie *Movie) FromNewMovie(input NewMovie) {
	movie.Title = input.Title
	movie.Year = input.Year
}

// HasTitle reports whether the update supplies a usable title. A field only
// counts as supplied when it is present and non-falsy, so an explicit empty
// string is treated the same as an absent field.
func (u UpdateMovie) HasTitle() bool {
	return u.Title != nil && *u.Title != ""
}

// HasYear reports whether the update supplies a usable year. A zero year is
// treated the same as an absent field.
func (u UpdateMovie) HasYear() bool {
	return u.Year != nil && *u.Year != 0
}

// IsEmpty reports whether the update supplies no usable field at all.
func (u UpdateMovie) IsEmpty() bool {
	return !u.HasTitle() && !u.HasYear()
}

// Apply copies the supplied fields onto the movie, leaving the rest alone.
func (u UpdateMovie) Apply(movie *Movie) {
	if u.HasTitle() {
		movie.Title = *u.Title
	}
	if u.HasYear() {
		movie.Year = u.Year
	}
}

// ReadAll will fetch all movies from the database, ordered by id.
func (r MovieRepository) ReadAll(ctx context.Context) ([]Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.DB.Query(ctx, readAllMoviesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []Movie{}
	for rows.Next() {
		var movie Movie
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.Year); err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

// Read will fetch a movie from the database.
func (r MovieRepository) Read(ctx context.Context, id int64) (*Movie, error) {
	var movie Movie

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := r.DB.QueryRow(ctx, readMovieSQL, id).Scan(&movie.ID, &movie.Title, &movie.Year)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &movie, nil
}

// Insert will store a new movie in the database and set the generated id
// on the passed movie.
func (r MovieRepository) Insert(ctx context.Context, movie *Movie) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := r.DB.QueryRow(ctx, createMovieSQL, movie.Title, movie.Year).Scan(&movie.ID)
	if err != nil {
		if isTitleConflict(err) {
			return ErrDuplicateTitle
		}
		return err
	}

	return nil
}

// InsertWithID will store a new movie under the explicit id carried by the
// passed movie, bypassing id generation.
func (r MovieRepository) InsertWithID(ctx context.Context, movie *Movie) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	_, err := r.DB.Exec(ctx, createMovieWithIDSQL, movie.ID, movie.Title, movie.Year)
	if err != nil {
		if isTitleConflict(err) {
			return ErrDuplicateTitle
		}
		return err
	}

	return nil
}

// Update will overwrite the title and year of the row matching the movie's id.
func (r MovieRepository) Update(ctx context.Context, movie *Movie) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.DB.Exec(ctx, updateMovieSQL, movie.Title, movie.Year, movie.ID)
	if err != nil {
		if isTitleConflict(err) {
			return ErrDuplicateTitle
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// Delete will remove the row matching the id from the database.
func (r MovieRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tag, err := r.DB.Exec(ctx, deleteMovieSQL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// TitleTaken will check whether a movie other than excludeID already uses
// the given title. The check is a plain query, not transactionally tied to
// the insert that follows it; the UNIQUE constraint on the title column
// backstops the race between concurrent writers.
func (r MovieRepository) TitleTaken(ctx context.Context, title string, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var taken bool
	err := r.DB.QueryRow(ctx, titleTakenSQL, title, excludeID).Scan(&taken)
	if err != nil {
		return false, err
	}

	return taken, nil
}

// isTitleConflict reports whether err is a unique violation on the movie
// title constraint. Inserts with an explicit id can also violate the primary
// key, which must not masquerade as a duplicate title.
func isTitleConflict(err error) bool {
	var pgError *pgconn.PgError
	return errors.As(err, &pgError) &&
		pgError.Code == database.UniqueViolation &&
		strings.Contains(pgError.ConstraintName, "title")
}
