package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/erazemk/aradaa/internal/auth"
	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/ordering"
	"github.com/erazemk/aradaa/internal/store"
)

// editable is a content value the admin API can create, update and move.
type editable interface {
	comparable
	ordering.Item
	Validate() error
}

// ResourceHandler serves the admin endpoints of one ordered collection.
// Every write goes through the collection's ordering manager.
type ResourceHandler[T editable] struct {
	DB *sql.DB

	name    string
	order   *ordering.Manager[T]
	fresh   func() T
	load    func(ctx context.Context, db *sql.DB, id string) (T, error)
	loadAll func(ctx context.Context, db *sql.DB) (any, error)
	remove  func(ctx context.Context, db *sql.DB, id string) error
}

func orEmpty[E any](s []E) []E {
	if s == nil {
		return []E{}
	}
	return s
}

func servicesResource(db *sql.DB) *ResourceHandler[*model.Service] {
	return &ResourceHandler[*model.Service]{
		DB:    db,
		name:  "service",
		order: store.ServiceOrder(db),
		fresh: func() *model.Service { return &model.Service{IsActive: true} },
		load:  store.GetService,
		loadAll: func(ctx context.Context, db *sql.DB) (any, error) {
			l, err := store.ListServices(ctx, db, false)
			return orEmpty(l), err
		},
		remove: store.DeleteService,
	}
}

func projectsResource(db *sql.DB) *ResourceHandler[*model.Project] {
	return &ResourceHandler[*model.Project]{
		DB:    db,
		name:  "project",
		order: store.ProjectOrder(db),
		fresh: func() *model.Project { return &model.Project{IsActive: true} },
		load:  store.GetProject,
		loadAll: func(ctx context.Context, db *sql.DB) (any, error) {
			l, err := store.ListProjects(ctx, db, store.ProjectFilter{})
			return orEmpty(l), err
		},
		remove: store.DeleteProject,
	}
}

func showreelResource(db *sql.DB) *ResourceHandler[*model.ShowreelEntry] {
	return &ResourceHandler[*model.ShowreelEntry]{
		DB:    db,
		name:  "showreel entry",
		order: store.ShowreelOrder(db),
		fresh: func() *model.ShowreelEntry { return &model.ShowreelEntry{IsActive: true, MediaType: model.MediaTypeImage} },
		load:  store.GetShowreelEntry,
		loadAll: func(ctx context.Context, db *sql.DB) (any, error) {
			l, err := store.ListShowreel(ctx, db, false)
			return orEmpty(l), err
		},
		remove: store.DeleteShowreelEntry,
	}
}

func sectionResource[T any, S interface {
	*T
	model.Section
}](db *sql.DB, name string) *ResourceHandler[S] {
	kind := S(new(T)).Kind()
	return &ResourceHandler[S]{
		DB:    db,
		name:  name,
		order: store.SectionOrder[T, S](db),
		fresh: func() S {
			s := S(new(T))
			s.Meta().IsActive = true
			return s
		},
		load: store.GetSection[T, S],
		loadAll: func(ctx context.Context, db *sql.DB) (any, error) {
			l, err := store.ListSections[T, S](ctx, db)
			return orEmpty(l), err
		},
		remove: func(ctx context.Context, db *sql.DB, id string) error {
			return store.DeleteSection(ctx, db, kind, id)
		},
	}
}

// decodeItem decodes a request body onto item and returns the display order
// the client asked for, if any.
func decodeItem(r *http.Request, item any) (*int, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, item); err != nil {
		return nil, err
	}

	var order struct {
		DisplayOrder *int `json:"display_order"`
	}
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, err
	}
	return order.DisplayOrder, nil
}

// List handles GET on the collection. Inactive items are included.
func (h *ResourceHandler[T]) List(w http.ResponseWriter, r *http.Request, _ *auth.Session) {
	items, err := h.loadAll(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list", "target", h.name, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list "+h.name)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET on a single item.
func (h *ResourceHandler[T]) Get(w http.ResponseWriter, r *http.Request, _ *auth.Session) {
	item, ok := h.find(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST on the collection. Without display_order the item is
// appended; with one, any active item holding that slot is moved to the end.
func (h *ResourceHandler[T]) Create(w http.ResponseWriter, r *http.Request, s *auth.Session) {
	item := h.fresh()
	requested, err := decodeItem(r, item)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if item.ItemID() != "" {
		jsonError(w, http.StatusBadRequest, "id is assigned by the server")
		return
	}
	if err := item.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.order.Place(r.Context(), item, requested); err != nil {
		orderingError(w, err, h.name)
		return
	}

	slog.Info(h.name+" created", "user", s.Email, "id", item.ItemID())
	h.respondWith(w, r, http.StatusCreated, item.ItemID())
}

// Update handles PUT on a single item. Fields missing from the body keep
// their stored values.
func (h *ResourceHandler[T]) Update(w http.ResponseWriter, r *http.Request, s *auth.Session) {
	item, ok := h.find(w, r)
	if !ok {
		return
	}
	id := item.ItemID()

	requested, err := decodeItem(r, item)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if item.ItemID() != id {
		jsonError(w, http.StatusBadRequest, "id cannot be changed")
		return
	}
	if err := item.Validate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.order.Place(r.Context(), item, requested); err != nil {
		orderingError(w, err, h.name)
		return
	}

	slog.Info(h.name+" updated", "user", s.Email, "id", id)
	h.respondWith(w, r, http.StatusOK, id)
}

// Delete handles DELETE on a single item.
func (h *ResourceHandler[T]) Delete(w http.ResponseWriter, r *http.Request, s *auth.Session) {
	id := r.PathValue("id")
	if err := h.remove(r.Context(), h.DB, id); err != nil {
		orderingError(w, err, h.name)
		return
	}

	slog.Info(h.name+" deleted", "user", s.Email, "id", id)
	jsonResponse(w, http.StatusOK, map[string]string{"message": h.name + " deleted"})
}

type moveRequest struct {
	Direction string `json:"direction"`
}

// Move handles POST .../{id}/move and returns the collection's new order.
func (h *ResourceHandler[T]) Move(w http.ResponseWriter, r *http.Request, s *auth.Session) {
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dir, err := ordering.ParseDirection(req.Direction)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	entries, err := h.order.Move(r.Context(), id, dir)
	if err != nil {
		orderingError(w, err, h.name)
		return
	}

	slog.Info(h.name+" moved", "user", s.Email, "id", id, "direction", string(dir))
	jsonResponse(w, http.StatusOK, orEmpty(entries))
}

// find loads the item named by the path, writing the error response itself
// when there is none.
func (h *ResourceHandler[T]) find(w http.ResponseWriter, r *http.Request) (T, bool) {
	var zero T
	item, err := h.load(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get", "target", h.name, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get "+h.name)
		return zero, false
	}
	if item == zero {
		jsonError(w, http.StatusNotFound, h.name+" not found")
		return zero, false
	}
	return item, true
}

// respondWith re-reads the saved item so timestamps are current.
func (h *ResourceHandler[T]) respondWith(w http.ResponseWriter, r *http.Request, status int, id string) {
	item, err := h.load(r.Context(), h.DB, id)
	if err != nil {
		slog.Error("failed to reload", "target", h.name, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get "+h.name)
		return
	}
	var zero T
	if item == zero {
		jsonError(w, http.StatusNotFound, h.name+" not found")
		return
	}
	jsonResponse(w, status, item)
}
