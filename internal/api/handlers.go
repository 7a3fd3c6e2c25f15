package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/marholt/satview/internal/apperr"
	"github.com/marholt/satview/internal/catalog"
	"github.com/marholt/satview/internal/observability"
	"github.com/marholt/satview/internal/query"
	"github.com/marholt/satview/internal/render"
	"github.com/marholt/satview/internal/route"
)

// Handler holds API route handlers.
type Handler struct {
	svc      *query.Service
	resolver *route.Resolver
	store    *catalog.Store
	metrics  *observability.Collector

	maxVisible     int
	viewportMargin float64
}

// NewHandler creates a new Handler. metrics may be nil.
func NewHandler(svc *query.Service, store *catalog.Store, metrics *observability.Collector, maxVisible int, viewportMargin float64) *Handler {
	return &Handler{
		svc:            svc,
		resolver:       route.NewResolver(svc),
		store:          store,
		metrics:        metrics,
		maxVisible:     maxVisible,
		viewportMargin: viewportMargin,
	}
}

// Browse handles GET /api/browser and GET /api/browser/*. The wildcard tail
// plus query parameters feed the route model; the typed result is returned
// as JSON. An unparseable path is a 400, a resolved-but-missing satellite a
// 404 with the typed error result as the body.
func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	path := "browser"
	if tail := chi.URLParam(r, "*"); tail != "" {
		path += "/" + tail
	}

	rt, ok := route.Parse(path, r.URL.Query())
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid route"))
		return
	}

	result, err := h.resolver.Handle(rt)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, apperr.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Categories handles GET /api/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": h.svc.Categories(),
	})
}

// Selection handles GET /api/render/selection: the per-frame query a
// renderer issues. It composes the selection pipeline in fixed order:
// visibility filters, search, priority sort, capacity cap. Malformed
// numeric parameters degrade to "no constraint" like every other filter.
func (h *Handler) Selection(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	trackedID := q.Get("tracked")
	exclusive := q.Get("exclusive") == "true"

	enabled := h.enabledTypes(q.Get("types"))

	var bounds *render.ViewportBounds
	if b, ok := parseBounds(q); ok {
		bounds = &b
	}

	margin := h.viewportMargin
	if v, err := strconv.ParseFloat(q.Get("margin"), 64); err == nil {
		margin = v
	}

	max := h.maxVisible
	if v, err := strconv.Atoi(q.Get("max")); err == nil && v > 0 {
		max = v
	}

	records := h.store.All()
	records = render.ForRendering(records, enabled, trackedID, exclusive, bounds, margin)
	records = render.BySearchQuery(records, q.Get("q"))
	records = render.ByLoadingPriority(records)
	records = render.ForPerformance(records, max, trackedID)

	h.metrics.ObserveSelection(len(records))

	if records == nil {
		records = []catalog.SatelliteRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"satellites": records,
		"totalCount": len(records),
	})
}

// enabledTypes builds the enabled-category set from a comma-separated
// parameter. An absent parameter enables every category observed in the
// catalog.
func (h *Handler) enabledTypes(param string) map[string]bool {
	enabled := make(map[string]bool)
	if param == "" {
		for _, rec := range h.store.All() {
			enabled[rec.Category] = true
		}
		return enabled
	}
	for _, t := range strings.Split(param, ",") {
		if t = strings.TrimSpace(t); t != "" {
			enabled[t] = true
		}
	}
	return enabled
}

func parseBounds(q map[string][]string) (render.ViewportBounds, bool) {
	get := func(key string) (float64, bool) {
		vs, ok := q[key]
		if !ok || len(vs) == 0 {
			return 0, false
		}
		v, err := strconv.ParseFloat(vs[0], 64)
		return v, err == nil
	}

	west, okW := get("west")
	east, okE := get("east")
	south, okS := get("south")
	north, okN := get("north")
	if !okW || !okE || !okS || !okN {
		return render.ViewportBounds{}, false
	}
	return render.ViewportBounds{West: west, East: east, South: south, North: north}, true
}
