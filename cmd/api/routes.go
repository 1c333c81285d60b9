package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routes will create a router with the api endpoints.
func (app *application) routes() http.Handler {

	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/", app.statusHandler)
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())

	router.HandlerFunc(http.MethodGet, "/movies", app.readAllMoviesHandler)
	router.HandlerFunc(http.MethodPost, "/movies", app.createMovieHandler)
	router.HandlerFunc(http.MethodGet, "/movies/:id", app.readMovieHandler)
	router.HandlerFunc(http.MethodPut, "/movies/:id", app.replaceMovieHandler)
	router.HandlerFunc(http.MethodPatch, "/movies/:id", app.updateMovieHandler)
	router.HandlerFunc(http.MethodDelete, "/movies/:id", app.deleteMovieHandler)

	return app.recoverPanic(app.requestID(app.logRequest(app.trackMetrics(app.rateLimit(router)))))
}
