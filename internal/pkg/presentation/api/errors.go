package api

import (
	"errors"
	"net/http"

	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/bootcamps"
	"github.com/opencamp/bootcamp-mgmt/internal/pkg/application/courses"
	"github.com/rs/zerolog"
)

var errForbidden = errors.New("not authorized to modify this resource")

// writeError is the single place that turns a failure into a response.
// Handlers forward every error here and never format failure bodies
// themselves.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "server error"

	switch {
	case errors.Is(err, bootcamps.ErrNotFound),
		errors.Is(err, courses.ErrNotFound),
		errors.Is(err, courses.ErrBootcampNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, bootcamps.ErrBadRequest),
		errors.Is(err, bootcamps.ErrAlreadyPublished),
		errors.Is(err, courses.ErrBadRequest):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, errForbidden):
		status = http.StatusForbidden
		message = err.Error()
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}

	writeErrorMessage(w, status, message)
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(errorResponse{Success: false, Error: message}.Byte())
}
