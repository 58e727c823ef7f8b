package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/najdeno/internal/ai"
	"github.com/erazemk/najdeno/internal/imaging"
	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/query"
	"github.com/erazemk/najdeno/internal/store"
)

// maxUploadSize limits photo uploads to 5 MB.
const maxUploadSize = 5 << 20

// recentPageSize is the gallery's "recent items" truncation.
const recentPageSize = 8

// ItemsHandler handles the public item catalog endpoints.
type ItemsHandler struct {
	Store *store.Store
	AI    *ai.Client
}

// List handles GET /api/items: the public gallery. Query params: q, category,
// date (YYYY-MM-DD), recent=1 for the truncated newest-first view.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	items := query.Gallery(h.Store.List(), query.GalleryCriteria{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
		Date:     r.URL.Query().Get("date"),
	})
	if r.URL.Query().Get("recent") != "" {
		items = query.Recent(items, recentPageSize)
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"items":      items,
		"total":      len(items),
		"categories": query.Categories(h.Store.List()),
	})
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.Get(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Report handles POST /api/items: the report-found flow. Multipart form with
// an image file plus category, description, location, date, detectedText,
// colors (repeatable), reporterPhone, and reporterEmail fields.
func (h *ItemsHandler) Report(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	category := r.FormValue("category")
	location := r.FormValue("location")
	if category == "" || location == "" {
		jsonError(w, http.StatusBadRequest, "category and location required")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	photo, err := imaging.Process(data)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image must be JPEG or PNG")
		return
	}

	date := time.Now()
	if raw := r.FormValue("date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "date must be RFC 3339")
			return
		}
		date = parsed
	}

	id := uuid.NewString()
	item := model.Item{
		ID:            id,
		ImageURL:      "/api/items/" + id + "/image",
		Category:      category,
		Description:   r.FormValue("description"),
		Location:      location,
		Date:          date,
		DetectedText:  r.FormValue("detectedText"),
		Colors:        r.Form["colors"],
		Status:        model.StatusFound,
		ReporterPhone: r.FormValue("reporterPhone"),
		ReporterEmail: r.FormValue("reporterEmail"),
	}

	if err := h.Store.Create(r.Context(), item); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}
	if err := h.Store.SetImage(r.Context(), id, photo.Data, photo.MIME); err != nil {
		slog.Warn("failed to store item photo", "id", id, "error", err)
	}

	created, _ := h.Store.Get(id)
	jsonResponse(w, http.StatusCreated, created)
}

type updateItemRequest struct {
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Date        *string `json:"date"`
}

// Update handles PUT /api/items/{id}: admin field corrections. Absent fields
// are left alone; status and claims are untouchable here.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u := store.Update{
		Category:    req.Category,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.Date != nil {
		parsed, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "date must be RFC 3339")
			return
		}
		u.Date = &parsed
	}

	item, err := h.Store.UpdateFields(r.Context(), r.PathValue("id"), u)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}. Permanent.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	data, mime, err := h.Store.GetImage(r.Context(), r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

type analyzeResponse struct {
	ai.Analysis
	// Tag identifies the analyzed image so a client that has since picked a
	// different photo can discard a stale result.
	Tag string `json:"tag"`
}

// Analyze handles POST /api/analyze: model-assisted description of a photo
// for the report form. On any AI failure it answers 200 with the fixed
// fallback so submission is never blocked.
func (h *ItemsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read image")
		return
	}

	sum := sha256.Sum256(data)
	tag := hex.EncodeToString(sum[:])

	analysis, err := h.AI.AnalyzeImage(r.Context(), data, http.DetectContentType(data))
	if err != nil {
		slog.Warn("image analysis failed, using fallback", "error", err)
		analysis = ai.FallbackAnalysis()
	}

	jsonResponse(w, http.StatusOK, analyzeResponse{Analysis: analysis, Tag: tag})
}
