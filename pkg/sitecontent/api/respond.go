package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/soundzyworld/site-backend/pkg/sitecontent"
)

// ErrorResponse is the JSON body for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError maps service errors onto HTTP status codes. Not-found
// sentinels become 404, validation sentinels 400, everything else 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, sitecontent.ErrCollectionNotFound),
		errors.Is(err, sitecontent.ErrLeadNotFound),
		errors.Is(err, sitecontent.ErrProductNotFound),
		errors.Is(err, sitecontent.ErrAnnouncementNotFound),
		errors.Is(err, sitecontent.ErrTapeNotFound),
		errors.Is(err, sitecontent.ErrPostNotFound),
		errors.Is(err, sitecontent.ErrOrderNotFound),
		errors.Is(err, sitecontent.ErrSessionNotFound),
		errors.Is(err, sitecontent.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, sitecontent.ErrInvalidStatus),
		errors.Is(err, sitecontent.ErrEmptyKey):
		status = http.StatusBadRequest
	case errors.Is(err, sitecontent.ErrDuplicateSlug):
		status = http.StatusConflict
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error()})
}

func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: msg})
}
