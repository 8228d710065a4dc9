package api

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/aradaa/internal/auth"
	"github.com/erazemk/aradaa/internal/media"
	"github.com/erazemk/aradaa/internal/model"
	"github.com/erazemk/aradaa/internal/store"
)

// MediaHandler handles uploads and serves stored media.
type MediaHandler struct {
	DB *sql.DB
}

type uploadResponse struct {
	URL    string `json:"url"`
	Path   string `json:"path"`
	Bucket string `json:"bucket"`
	MIME   string `json:"mime"`
	Size   int64  `json:"size"`
}

// Upload handles POST /api/upload (multipart: file, folder).
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request, s *auth.Session) {
	r.Body = http.MaxBytesReader(w, r.Body, media.Limit())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	up, err := media.Prepare(data, header.Header.Get("Content-Type"), r.FormValue("folder"), time.Now())
	switch {
	case errors.Is(err, media.ErrTooLarge):
		jsonError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	case err != nil:
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	m := &model.Media{Bucket: up.Bucket, Path: up.Path, MIME: up.MIME}
	if err := store.CreateMedia(r.Context(), h.DB, m, up.Data); err != nil {
		slog.Error("failed to store upload", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	slog.Info("file uploaded", "user", s.Email, "bucket", m.Bucket, "path", m.Path, "size", m.Size)
	jsonResponse(w, http.StatusCreated, uploadResponse{
		URL:    m.URL(),
		Path:   m.Path,
		Bucket: m.Bucket,
		MIME:   m.MIME,
		Size:   m.Size,
	})
}

// Serve handles GET /media/{bucket}/{path...}. Object names are unique per
// upload, so responses are cached indefinitely.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	m, data, err := store.GetMedia(r.Context(), h.DB, r.PathValue("bucket"), r.PathValue("path"))
	if err != nil {
		slog.Error("failed to get media", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if m == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", m.MIME)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, m.Path, m.CreatedAt, bytes.NewReader(data))
}

// mediaEntry is a stored object as listed in the admin.
type mediaEntry struct {
	model.Media
	URL string `json:"url"`
}

// List handles GET /api/admin/media?bucket=images|videos. The bucket
// defaults to images.
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request, _ *auth.Session) {
	bucket := r.URL.Query().Get("bucket")
	if bucket == "" {
		bucket = model.BucketImages
	}
	if bucket != model.BucketImages && bucket != model.BucketVideos {
		jsonError(w, http.StatusBadRequest, fmt.Sprintf("bucket must be %s or %s", model.BucketImages, model.BucketVideos))
		return
	}

	list, err := store.ListMedia(r.Context(), h.DB, bucket)
	if err != nil {
		slog.Error("failed to list media", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list media")
		return
	}

	entries := make([]mediaEntry, 0, len(list))
	for _, m := range list {
		entries = append(entries, mediaEntry{Media: m, URL: m.URL()})
	}
	jsonResponse(w, http.StatusOK, entries)
}

// Delete handles DELETE /api/admin/media/{bucket}/{path...}.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request, s *auth.Session) {
	bucket, path := r.PathValue("bucket"), r.PathValue("path")

	err := store.DeleteMedia(r.Context(), h.DB, bucket, path)
	if errors.Is(err, sql.ErrNoRows) {
		jsonError(w, http.StatusNotFound, "media not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete media", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to delete media")
		return
	}

	slog.Info("media deleted", "user", s.Email, "bucket", bucket, "path", path)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "media deleted"})
}
