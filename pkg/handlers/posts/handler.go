package posts

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/de-tools/tenant-atlas/pkg/adapters"
	"github.com/de-tools/tenant-atlas/pkg/handlers"
	"github.com/de-tools/tenant-atlas/pkg/models/api"
	"github.com/de-tools/tenant-atlas/pkg/models/store"
	"github.com/de-tools/tenant-atlas/pkg/store/post"
	"github.com/go-chi/chi/v5"
)

const (
	maxTitleLength = 50
	maxBodyLength  = 300
	maxBodyBytes   = 4 << 10
)

type Handler struct {
	store post.Store
}

func NewHandler(s post.Store) *Handler {
	return &Handler{store: s}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.List(r.Context())
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, toApi(rows...))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	row, err := h.store.Get(r.Context(), id)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, toApi(row)[0])
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	row, err := h.store.Create(r.Context(), req.Title, req.Body)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusCreated, toApi(row)[0])
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	req, ok := decodeRequest(w, r)
	if !ok {
		return
	}

	row, err := h.store.Update(r.Context(), id, req.Title, req.Body)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusOK, toApi(row)[0])
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		handlers.BadRequest(w, r, "post id must be an integer")
		return 0, false
	}
	return id, true
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (api.PostRequest, bool) {
	var req api.PostRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.BadRequest(w, r, "invalid JSON body")
		return req, false
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Body = strings.TrimSpace(req.Body)

	var fields []api.FieldError
	fields = checkText(fields, "title", req.Title, maxTitleLength)
	fields = checkText(fields, "body", req.Body, maxBodyLength)
	if len(fields) > 0 {
		handlers.WriteJSON(w, r, http.StatusBadRequest, api.Error{Error: "invalid post", Fields: fields})
		return req, false
	}
	return req, true
}

func checkText(fields []api.FieldError, name, value string, maxLen int) []api.FieldError {
	switch {
	case value == "":
		return append(fields, api.FieldError{Field: name, Value: value, Message: "is required"})
	case utf8.RuneCountInString(value) > maxLen:
		return append(fields, api.FieldError{
			Field:   name,
			Value:   value,
			Message: "must be at most " + strconv.Itoa(maxLen) + " characters",
		})
	}
	return fields
}

func toApi(rows ...store.Post) []api.Post {
	res := make([]api.Post, 0, len(rows))
	for _, row := range rows {
		res = append(res, adapters.MapPostDomainToApi(adapters.MapStorePostToDomain(row)))
	}
	return res
}
