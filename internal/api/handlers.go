package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/dontstarve-calendar/internal/calendar"
	"github.com/zapponejosh/dontstarve-calendar/internal/config"
	"github.com/zapponejosh/dontstarve-calendar/internal/database"
	"github.com/zapponejosh/dontstarve-calendar/internal/logger"
	"github.com/zapponejosh/dontstarve-calendar/internal/view"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// CalendarResponse is one computed day plus its display model.
type CalendarResponse struct {
	calendar.Snapshot
	View view.Model `json:"view"`
}

func newCalendarResponse(snap calendar.Snapshot) CalendarResponse {
	return CalendarResponse{Snapshot: snap, View: view.Build(snap)}
}

// WorldResponse is a saved world with its calendar for the stored day.
type WorldResponse struct {
	database.World
	Calendar CalendarResponse `json:"calendar"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		logger.FromContext(ctx, h.logger).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// =============================================================================
// Calculation handlers
// =============================================================================

// GetCalendar handles GET /api/v1/calendar?day=N
func (h *Handlers) GetCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dayStr := q.Get("day")
	if dayStr == "" {
		WriteBadRequest(w, "day parameter is required")
		return
	}
	day, err := calendar.ParseDay(dayStr)
	if err != nil {
		h.writeError(w, r, err, "compute calendar")
		return
	}

	settings, err := h.settingsFromQuery(q, day)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	snap, err := calendar.Compute(settings)
	if err != nil {
		h.writeError(w, r, err, "compute calendar")
		return
	}

	WriteSuccess(w, newCalendarResponse(snap))
}

// GetCalendarRange handles GET /api/v1/calendar/range?start=N&end=M
func (h *Handlers) GetCalendarRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	startStr, endStr := q.Get("start"), q.Get("end")
	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end parameters are required")
		return
	}

	start, err := calendar.ParseDay(startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start day: %v", err))
		return
	}
	end, err := calendar.ParseDay(endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end day: %v", err))
		return
	}

	if start > end {
		WriteBadRequest(w, "start must be less than or equal to end")
		return
	}
	if end-start >= int64(h.cfg.MaxRangeDays) {
		WriteBadRequest(w, fmt.Sprintf("Range cannot exceed %d days", h.cfg.MaxRangeDays))
		return
	}

	settings, err := h.settingsFromQuery(q, start)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	cal, err := calendar.New(settings)
	if err != nil {
		h.writeError(w, r, err, "compute calendar")
		return
	}

	days := make([]CalendarResponse, 0, end-start+1)
	for day := start; ; day++ {
		if err := cal.SetToday(day); err != nil {
			h.writeError(w, r, err, "compute calendar")
			return
		}
		days = append(days, newCalendarResponse(cal.Snapshot()))
		if day == end {
			break
		}
	}

	WriteSuccess(w, map[string]interface{}{
		"start": start,
		"end":   end,
		"days":  days,
	})
}

// GetPhases handles GET /api/v1/phases
func (h *Handlers) GetPhases(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]interface{}{
		"phases": calendar.Phases(),
	})
}

// SeasonEntry is one season of the active season table.
type SeasonEntry struct {
	Label  calendar.Season `json:"label"`
	Length int             `json:"length"`
	Icon   string          `json:"icon"`
}

// GetSeasons handles GET /api/v1/seasons?rog=&pace=&starting_season=
func (h *Handlers) GetSeasons(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsFromQuery(r.URL.Query(), 1)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	cal, err := calendar.New(settings)
	if err != nil {
		h.writeError(w, r, err, "list seasons")
		return
	}

	seasons, lengths := cal.Seasons(), cal.SeasonLengths()
	entries := make([]SeasonEntry, len(seasons))
	for i, s := range seasons {
		entries[i] = SeasonEntry{Label: s, Length: lengths[i], Icon: view.SeasonIcon(s)}
	}

	WriteSuccess(w, map[string]interface{}{
		"is_rog":          cal.RoG(),
		"pace":            cal.Pace(),
		"starting_season": cal.StartingSeason(),
		"year_length":     cal.YearLength(),
		"seasons":         entries,
	})
}

// PaceEntry is one pace and whether season lengths exist for it.
type PaceEntry struct {
	Pace        calendar.Pace `json:"pace"`
	Implemented bool          `json:"implemented"`
}

// GetPaces handles GET /api/v1/paces
func (h *Handlers) GetPaces(w http.ResponseWriter, r *http.Request) {
	paces := calendar.Paces()
	entries := make([]PaceEntry, len(paces))
	for i, p := range paces {
		entries[i] = PaceEntry{Pace: p, Implemented: p.Implemented()}
	}
	WriteSuccess(w, map[string]interface{}{
		"paces": entries,
	})
}

// settingsFromQuery reads rog, dst, pace and starting_season, falling back
// to the configured defaults for anything not given.
func (h *Handlers) settingsFromQuery(q url.Values, today int64) (calendar.Settings, error) {
	s := h.cfg.CalendarDefaults(today)

	if v := q.Get("rog"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s, fmt.Errorf("invalid rog value %q: must be true or false", v)
		}
		s.RoG = b
	}
	if v := q.Get("dst"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s, fmt.Errorf("invalid dst value %q: must be true or false", v)
		}
		s.DST = b
	}
	if v := q.Get("pace"); v != "" {
		s.Pace = calendar.Pace(v)
	}
	if v := q.Get("starting_season"); v != "" {
		s.StartingSeason = calendar.Season(v)
	}
	return s, nil
}

// =============================================================================
// World handlers
// =============================================================================

// ListWorlds handles GET /api/v1/worlds
func (h *Handlers) ListWorlds(w http.ResponseWriter, r *http.Request) {
	worlds, err := h.db.ListWorlds(r.Context())
	if err != nil {
		h.writeError(w, r, err, "list worlds")
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"worlds": worlds,
		"count":  len(worlds),
	})
}

// CreateWorldRequest is the body of POST /api/v1/worlds.
// Omitted settings take the configured defaults.
type CreateWorldRequest struct {
	Name           string           `json:"name"`
	Today          int64            `json:"today"`
	RoG            *bool            `json:"is_rog,omitempty"`
	DST            *bool            `json:"is_dst,omitempty"`
	Pace           *calendar.Pace   `json:"pace,omitempty"`
	StartingSeason *calendar.Season `json:"starting_season,omitempty"`
}

func (req CreateWorldRequest) settings(defaults calendar.Settings) calendar.Settings {
	s := defaults
	if req.RoG != nil {
		s.RoG = *req.RoG
	}
	if req.DST != nil {
		s.DST = *req.DST
	}
	if req.Pace != nil {
		s.Pace = *req.Pace
	}
	if req.StartingSeason != nil {
		s.StartingSeason = *req.StartingSeason
	}
	return s
}

// CreateWorld handles POST /api/v1/worlds
func (h *Handlers) CreateWorld(w http.ResponseWriter, r *http.Request) {
	var req CreateWorldRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	world := &database.World{
		Name:     req.Name,
		Settings: req.settings(h.cfg.CalendarDefaults(req.Today)),
	}
	if err := h.db.CreateWorld(r.Context(), world); err != nil {
		h.writeError(w, r, err, "create world")
		return
	}

	logger.FromContext(r.Context(), h.logger).Info("world created",
		slog.String("name", world.Name),
		slog.Int64("today", world.Today),
	)
	h.writeWorld(w, r, world, http.StatusCreated)
}

// GetWorld handles GET /api/v1/worlds/{name}
func (h *Handlers) GetWorld(w http.ResponseWriter, r *http.Request) {
	world, err := h.db.GetWorld(r.Context(), worldName(r))
	if err != nil {
		h.writeError(w, r, err, "get world")
		return
	}
	h.writeWorld(w, r, world, http.StatusOK)
}

// UpdateWorld handles PATCH /api/v1/worlds/{name}
func (h *Handlers) UpdateWorld(w http.ResponseWriter, r *http.Request) {
	var change calendar.Change
	if err := decodeJSON(r, &change); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if change.IsEmpty() {
		WriteBadRequest(w, "Request changes nothing")
		return
	}

	world, err := h.db.UpdateWorld(r.Context(), worldName(r), change)
	if err != nil {
		h.writeError(w, r, err, "update world")
		return
	}
	h.writeWorld(w, r, world, http.StatusOK)
}

// AdvanceWorld handles POST /api/v1/worlds/{name}/advance
//
// The body is optional; {"days": N} moves the world N days, default 1.
func (h *Handlers) AdvanceWorld(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Days *int64 `json:"days"`
	}
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	days := int64(1)
	if req.Days != nil {
		days = *req.Days
	}

	world, err := h.db.AdvanceWorld(r.Context(), worldName(r), days)
	if err != nil {
		h.writeError(w, r, err, "advance world")
		return
	}
	h.writeWorld(w, r, world, http.StatusOK)
}

// DeleteWorld handles DELETE /api/v1/worlds/{name}
func (h *Handlers) DeleteWorld(w http.ResponseWriter, r *http.Request) {
	name := worldName(r)
	if err := h.db.DeleteWorld(r.Context(), name); err != nil {
		h.writeError(w, r, err, "delete world")
		return
	}

	logger.FromContext(r.Context(), h.logger).Info("world deleted", slog.String("name", name))
	WriteSuccess(w, map[string]string{"message": "World deleted"})
}

func (h *Handlers) writeWorld(w http.ResponseWriter, r *http.Request, world *database.World, status int) {
	snap, err := calendar.Compute(world.Settings)
	if err != nil {
		// Rows are validated on write; this means the table was edited by hand.
		logger.Error(r.Context(), h.logger, "stored world is invalid", err,
			slog.String("name", world.Name))
		WriteInternalError(w, "Failed to load world")
		return
	}

	resp := WorldResponse{World: *world, Calendar: newCalendarResponse(snap)}
	if status == http.StatusCreated {
		WriteCreated(w, resp)
		return
	}
	WriteSuccess(w, resp)
}

// worldName returns the unescaped {name} path parameter.
func worldName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			return unescaped
		}
	}
	return name
}

// writeError maps domain and store errors to HTTP responses. Anything it
// does not recognise is logged and reported as a 500.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, calendar.ErrPaceNotImplemented):
		WriteNotImplemented(w, err.Error())
	case calendar.IsValidation(err), errors.Is(err, database.ErrInvalidName):
		WriteBadRequest(w, err.Error())
	case database.IsNotFound(err):
		WriteNotFound(w, err.Error())
	case errors.Is(err, database.ErrDuplicate):
		WriteConflict(w, err.Error())
	default:
		logger.Error(r.Context(), h.logger, "failed to "+action, err)
		WriteInternalError(w, "Failed to "+action)
	}
}

// decodeJSON decodes a JSON request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
