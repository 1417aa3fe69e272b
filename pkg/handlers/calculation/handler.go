package calculation

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/de-tools/tenant-atlas/pkg/adapters"
	"github.com/de-tools/tenant-atlas/pkg/handlers"
	"github.com/de-tools/tenant-atlas/pkg/models/api"
	"github.com/de-tools/tenant-atlas/pkg/services/calculator"
	"github.com/de-tools/tenant-atlas/pkg/services/config"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	presetParam  = "preset"
	maxBodyBytes = 64 << 10
)

type Handler struct {
	service calculator.Service
	presets config.PresetRegistry
}

// NewHandler builds the calculation handler. presets may be nil.
func NewHandler(service calculator.Service, presets config.PresetRegistry) *Handler {
	return &Handler{service: service, presets: presets}
}

// Calculate runs the profitability projection for the tenant in the URL.
// Parameters come from the query string and, for POST, from a form or JSON
// body; body values win.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handlers.BadRequest(w, r, "tenant id must be an integer")
		return
	}

	raw, err := readParameters(w, r)
	if err != nil {
		logger.Debug().Err(err).Msg("unreadable calculation request")
		handlers.BadRequest(w, r, err.Error())
		return
	}
	preset := raw[presetParam]
	delete(raw, presetParam)

	_, calc, err := h.service.CalculateForListing(ctx, id, raw, preset)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, adapters.MapCalculationDomainToApi(id, calc))
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	response := []api.Preset{}
	if h.presets == nil {
		handlers.WriteJSON(w, r, http.StatusOK, response)
		return
	}

	names, err := h.presets.GetPresets()
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	for _, name := range names {
		values, err := h.presets.GetPreset(name)
		if err != nil {
			handlers.WriteError(w, r, err)
			return
		}
		response = append(response, api.Preset{Name: name, Values: values})
	}
	handlers.WriteJSON(w, r, http.StatusOK, response)
}

func readParameters(w http.ResponseWriter, r *http.Request) (calculator.RawParameters, error) {
	raw := calculator.RawParameters{}
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			raw[k] = v[0]
		}
	}
	if r.Method != http.MethodPost {
		return raw, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		body, err := decodeJSONParameters(r)
		if err != nil {
			return nil, err
		}
		return calculator.Merge(raw, body), nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form body: %w", err)
	}
	body := calculator.RawParameters{}
	for k, v := range r.PostForm {
		if len(v) > 0 {
			body[k] = v[0]
		}
	}
	return calculator.Merge(raw, body), nil
}

// decodeJSONParameters accepts a flat object of strings, numbers or nulls.
func decodeJSONParameters(r *http.Request) (calculator.RawParameters, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	raw := make(calculator.RawParameters, len(body))
	for k, v := range body {
		switch val := v.(type) {
		case nil:
			raw[k] = ""
		case string:
			raw[k] = val
		case json.Number:
			raw[k] = val.String()
		default:
			return nil, fmt.Errorf("parameter %s must be a string or a number", k)
		}
	}
	return raw, nil
}
