package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mroobert/movies-api/internal/data"
	"github.com/mroobert/movies-api/internal/validator"
	"github.com/mroobert/movies-api/internal/web"
)

// readAllMoviesHandler for the "GET /movies" endpoint.
func (app *application) readAllMoviesHandler(w http.ResponseWriter, r *http.Request) {
	movies, err := app.repositories.Movies.ReadAll(r.Context())
	if err != nil {
		app.storeErrorResponse(w, r, codeListMovies, "unable to retrieve the movies", err)
		return
	}

	err = web.WriteJSON(w, http.StatusOK, movies, nil)
	if err != nil {
		app.storeErrorResponse(w, r, codeListMovies, "unable to retrieve the movies", err)
	}
}

// readMovieHandler for the "GET /movies/:id" endpoint.
func (app *application) readMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	movie, err := app.repositories.Movies.Read(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.storeErrorResponse(w, r, codeReadMovie, "unable to retrieve the movie", err)
		}

		return
	}

	err = web.WriteJSON(w, http.StatusOK, movie, nil)
	if err != nil {
		app.storeErrorResponse(w, r, codeReadMovie, "unable to retrieve the movie", err)
	}
}

// createMovieHandler for the "POST /movies" endpoint.
func (app *application) createMovieHandler(w http.ResponseWriter, r *http.Request) {
	var input data.NewMovie

	err := web.ReadJSON(w, r, &input)
	if err != nil {
		app.decodeErrorResponse(w, r, err)
		return
	}

	vld := validator.New()
	if input.Validate(vld); !vld.Valid() {
		app.failedValidationResponse(w, r, vld.Errors)
		return
	}

	// The uniqueness check and the insert are separate statements; the
	// UNIQUE constraint on the title column backstops what the check
	// cannot see, including a title held by a row stored under id 0.
	taken, err := app.repositories.Movies.TitleTaken(r.Context(), input.Title, 0)
	if err != nil {
		app.storeErrorResponse(w, r, codeCreateMovie, "unable to create the movie", err)
		return
	}
	if taken {
		vld.AddError("title", "a movie with this title already exists")
		app.failedValidationResponse(w, r, vld.Errors)
		return
	}

	movie := new(data.Movie)
	movie.FromNewMovie(input)

	err = app.repositories.Movies.Insert(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateTitle):
			vld.AddError("title", "a movie with this title already exists")
			app.failedValidationResponse(w, r, vld.Errors)
		default:
			app.storeErrorResponse(w, r, codeCreateMovie, "unable to create the movie", err)
		}

		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/movies/%d", movie.ID))

	err = web.WriteJSON(w, http.StatusCreated, movie, headers)
	if err != nil {
		app.storeErrorResponse(w, r, codeCreateMovie, "unable to create the movie", err)
	}
}

// replaceMovieHandler for the "PUT /movies/:id" endpoint. The operation is
// an upsert: an existing row is overwritten in place, a missing one is
// created under the requested id.
func (app *application) replaceMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	var input data.NewMovie
	err = web.ReadJSON(w, r, &input)
	if err != nil {
		app.decodeErrorResponse(w, r, err)
		return
	}

	vld := validator.New()
	if input.Validate(vld); !vld.Valid() {
		app.failedValidationResponse(w, r, vld.Errors)
		return
	}

	// The uniqueness check excludes the row being replaced, so re-sending
	// the same title to the same id stays valid.
	taken, err := app.repositories.Movies.TitleTaken(r.Context(), input.Title, id)
	if err != nil {
		app.storeErrorResponse(w, r, codeReplaceMovie, "unable to replace the movie", err)
		return
	}
	if taken {
		vld.AddError("title", "a movie with this title already exists")
		app.failedValidationResponse(w, r, vld.Errors)
		return
	}

	movie, err := app.repositories.Movies.Read(r.Context(), id)
	if err != nil && !errors.Is(err, data.ErrRecordNotFound) {
		app.storeErrorResponse(w, r, codeReplaceMovie, "unable to replace the movie", err)
		return
	}

	if movie != nil {
		movie.FromNewMovie(input)

		err = app.repositories.Movies.Update(r.Context(), movie)
		if err != nil {
			switch {
			case errors.Is(err, data.ErrDuplicateTitle):
				vld.AddError("title", "a movie with this title already exists")
				app.failedValidationResponse(w, r, vld.Errors)
			case errors.Is(err, data.ErrRecordNotFound):
				app.notFoundResponse(w, r)
			default:
				app.storeErrorResponse(w, r, codeReplaceMovie, "unable to replace the movie", err)
			}

			return
		}

		err = web.WriteJSON(w, http.StatusOK, movie, nil)
		if err != nil {
			app.storeErrorResponse(w, r, codeReplaceMovie, "unable to replace the movie", err)
		}

		return
	}

	movie = &data.Movie{ID: id}
	movie.FromNewMovie(input)

	err = app.repositories.Movies.InsertWithID(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateTitle):
			vld.AddError("title", "a movie with this title already exists")
			app.failedValidationResponse(w, r, vld.Errors)
		default:
			app.storeErrorResponse(w, r, codeReplaceMovie, "unable to replace the movie", err)
		}

		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/movies/%d", movie.ID))

	err = web.WriteJSON(w, http.StatusCreated, movie, headers)
	if err != nil {
		app.storeErrorResponse(w, r, codeReplaceMovie, "unable to replace the movie", err)
	}
}

// updateMovieHandler for the "PATCH /movies/:id" endpoint. Only the supplied
// fields are written; a body carrying no usable field is rejected.
func (app *application) updateMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	// The existence check runs before any field validation, so a missing
	// row reports not-found regardless of what the body carries.
	movie, err := app.repositories.Movies.Read(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.storeErrorResponse(w, r, codeUpdateMovie, "unable to update the movie", err)
		}

		return
	}

	var input data.UpdateMovie
	err = web.ReadJSON(w, r, &input)
	if err != nil {
		app.decodeErrorResponse(w, r, err)
		return
	}

	if input.IsEmpty() {
		app.noValidFieldsResponse(w, r)
		return
	}

	if input.HasTitle() {
		taken, err := app.repositories.Movies.TitleTaken(r.Context(), *input.Title, id)
		if err != nil {
			app.storeErrorResponse(w, r, codeUpdateMovie, "unable to update the movie", err)
			return
		}
		if taken {
			vld := validator.New()
			vld.AddError("title", "a movie with this title already exists")
			app.failedValidationResponse(w, r, vld.Errors)
			return
		}
	}

	input.Apply(movie)

	err = app.repositories.Movies.Update(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateTitle):
			vld := validator.New()
			vld.AddError("title", "a movie with this title already exists")
			app.failedValidationResponse(w, r, vld.Errors)
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.storeErrorResponse(w, r, codeUpdateMovie, "unable to update the movie", err)
		}

		return
	}

	err = web.WriteJSON(w, http.StatusOK, movie, nil)
	if err != nil {
		app.storeErrorResponse(w, r, codeUpdateMovie, "unable to update the movie", err)
	}
}

// deleteMovieHandler for the "DELETE /movies/:id" endpoint.
func (app *application) deleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return
	}

	err = app.repositories.Movies.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.storeErrorResponse(w, r, codeDeleteMovie, "unable to delete the movie", err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
