package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mroobert/movies-api/internal/validator"
	"github.com/mroobert/movies-api/internal/web"
)

// Domain codes carried by store failure responses, one per operation, so a
// caller can tell which operation failed without parsing the message.
const (
	codeListMovies   = 1001
	codeReadMovie    = 1002
	codeCreateMovie  = 1003
	codeReplaceMovie = 1004
	codeUpdateMovie  = 1005
	codeDeleteMovie  = 1006
)

// storeError is the response body for store and server failures. The
// underlying error is surfaced verbatim in ErrorMessage.
type storeError struct {
	Code         int    `json:"code"`
	Message      string `json:"message"`
	ErrorMessage string `json:"error_message"`
}

// logError logs an error together with the request it belongs to.
func (app *application) logError(r *http.Request, err error) {
	app.logger.Error().
		Err(err).
		Str("request_id", requestIDFrom(r.Context())).
		Str("request_method", r.Method).
		Str("request_url", r.URL.String()).
		Msg("request failed")
}

// errorResponse sends a JSON body of the shape {"message": ...} with the
// given status code.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	err := web.WriteJSON(w, status, map[string]string{"message": message}, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// storeErrorResponse sends a 500 carrying the operation's domain code and
// the underlying error message.
func (app *application) storeErrorResponse(w http.ResponseWriter, r *http.Request, code int, message string, cause error) {
	app.logError(r, cause)

	body := storeError{
		Code:         code,
		Message:      message,
		ErrorMessage: cause.Error(),
	}

	err := web.WriteJSON(w, http.StatusInternalServerError, body, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// failedValidationResponse sends a 400 carrying the ordered list of field
// validation failures.
func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, errs []validator.FieldError) {
	err := web.WriteJSON(w, http.StatusBadRequest, map[string][]validator.FieldError{"error": errs}, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// decodeErrorResponse routes a request-body decode failure to the right
// response shape: a type mismatch on a known field produces the structured
// validation list, everything else a plain bad-request message.
func (app *application) decodeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var fieldTypeError *web.FieldTypeError
	if errors.As(err, &fieldTypeError) {
		vld := validator.New()
		vld.AddError(fieldTypeError.Field, "must be "+fieldTypeError.Expected)
		app.failedValidationResponse(w, r, vld.Errors)
		return
	}

	app.badRequestResponse(w, r, err)
}

// serverErrorResponse sends a generic 500 when the failure has no operation
// code of its own, such as a recovered panic.
func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	message := "the server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) invalidIDResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusBadRequest, "invalid id parameter")
}

func (app *application) noValidFieldsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusBadRequest, "no valid fields provided for update")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}
