package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/tenant-atlas/pkg/models/api"
	"github.com/de-tools/tenant-atlas/pkg/models/store"
	"github.com/de-tools/tenant-atlas/pkg/services/calculator"
	"github.com/de-tools/tenant-atlas/pkg/services/listing"
	"github.com/rs/zerolog"
)

// WriteJSON encodes body with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

// WriteError maps err onto an HTTP status and a JSON error body.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verr calculator.ValidationErrors
	switch {
	case errors.As(err, &verr):
		fields := make([]api.FieldError, 0, len(verr))
		for _, fe := range verr {
			fields = append(fields, api.FieldError{Field: fe.Field, Value: fe.Value, Message: fe.Message})
		}
		WriteJSON(w, r, http.StatusBadRequest, api.Error{Error: "invalid parameters", Fields: fields})
	case errors.Is(err, calculator.ErrPresetNotFound):
		WriteJSON(w, r, http.StatusBadRequest, api.Error{Error: err.Error()})
	case errors.Is(err, calculator.ErrListingNotFound),
		errors.Is(err, listing.ErrStationNotFound),
		errors.Is(err, store.ErrNotFound):
		WriteJSON(w, r, http.StatusNotFound, api.Error{Error: err.Error()})
	default:
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("request failed")
		WriteJSON(w, r, http.StatusInternalServerError, api.Error{Error: "internal error"})
	}
}

// BadRequest reports a malformed request.
func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	WriteJSON(w, r, http.StatusBadRequest, api.Error{Error: msg})
}
