package server

import (
	"encoding/json"
	"net/http"

	"tactics-server/internal/domain"
	"tactics-server/internal/engine"
	"tactics-server/internal/engine/handlers"
	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"
)

// DebugHandler exposes read-only views of the match. Every read runs on the
// match loop through Inspect.
type DebugHandler struct {
	Match *engine.Match
}

func NewDebugHandler(m *engine.Match) *DebugHandler {
	return &DebugHandler{Match: m}
}

func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/queue", h.handleTurnQueue)
	mux.HandleFunc("/debug/units", h.handleUnits)
	mux.HandleFunc("/debug/cells", h.handleCells)
	mux.HandleFunc("/debug/journal", h.handleJournal)
}

// /debug/queue - the turn order as it will be popped
func (h *DebugHandler) handleTurnQueue(w http.ResponseWriter, r *http.Request) {
	var snap engine.Snapshot
	if !h.inspect(w, r, func(rs *engine.Ruleset) { snap = rs.Turns().Snapshot() }) {
		return
	}
	writeJSON(w, snap)
}

// /debug/units - every unit with current stats
func (h *DebugHandler) handleUnits(w http.ResponseWriter, r *http.Request) {
	units := []api.UnitView{}
	if !h.inspect(w, r, func(rs *engine.Ruleset) {
		for _, u := range rs.Units() {
			units = append(units, handlers.UnitView(u))
		}
	}) {
		return
	}
	writeJSON(w, units)
}

// /debug/cells?mark=ZoC0_17 - marked cells, optionally filtered by one legacy
// mark token
func (h *DebugHandler) handleCells(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("mark")
	var filter *domain.Mark
	if token != "" {
		m, ok := domain.ParseMark(token)
		if !ok {
			logger.Component("debug").WithField("mark", token).Warn("Malformed mark filter.")
			http.Error(w, "malformed mark token", http.StatusBadRequest)
			return
		}
		filter = &m
	}

	cells := []api.CellView{}
	if !h.inspect(w, r, func(rs *engine.Ruleset) {
		g := rs.Grid()
		if g == nil {
			return
		}
		for _, c := range g.Cells() {
			if matchesMark(c, filter) {
				cells = append(cells, handlers.CellView(c))
			}
		}
	}) {
		return
	}
	writeJSON(w, cells)
}

func matchesMark(c *domain.Cell, filter *domain.Mark) bool {
	if filter == nil {
		return c.Marks.Len() > 0
	}
	if filter.Kind == domain.MarkActive {
		return c.Marks.Any(domain.MarkActive)
	}
	return c.Marks.Has(filter.Kind, filter.Owner)
}

// /debug/journal - accepted commands so far
func (h *DebugHandler) handleJournal(w http.ResponseWriter, r *http.Request) {
	var j domain.Journal
	if !h.inspect(w, r, func(*engine.Ruleset) {
		j = *h.Match.Journal
		j.Actions = append([]domain.JournalAction(nil), h.Match.Journal.Actions...)
	}) {
		return
	}
	writeJSON(w, j)
}

func (h *DebugHandler) inspect(w http.ResponseWriter, r *http.Request, fn func(*engine.Ruleset)) bool {
	if err := h.Match.Inspect(r.Context(), fn); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}
