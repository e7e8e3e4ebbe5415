package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-baseball/internal/usecase"
)

type teamsDTO struct {
	Teams []usecase.MLBTeam `json:"teams"`
}

type scheduleDTO struct {
	Date  string            `json:"date,omitempty"`
	Games []usecase.MLBGame `json:"games"`
}

func (h *Handler) MLBTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MLBTeams")
	defer span.End()

	season, err := queryInt(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	query := teamsQuery{Season: season}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.intel.Teams(ctx, query.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "list mlb teams failed", "season", query.Season, "error", err)
		writeError(ctx, w, err)
		return
	}
	if teams == nil {
		teams = []usecase.MLBTeam{}
	}

	writeSuccess(ctx, w, http.StatusOK, teamsDTO{Teams: teams})
}

func (h *Handler) MLBSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MLBSchedule")
	defer span.End()

	query := scheduleQuery{Date: queryString(r, "date")}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}
	day, err := parseDate(query.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	games, err := h.intel.Schedule(ctx, day)
	if err != nil {
		h.logger.WarnContext(ctx, "list mlb schedule failed", "date", query.Date, "error", err)
		writeError(ctx, w, err)
		return
	}
	if games == nil {
		games = []usecase.MLBGame{}
	}

	writeSuccess(ctx, w, http.StatusOK, scheduleDTO{Date: query.Date, Games: games})
}

func (h *Handler) MLBInjuries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MLBInjuries")
	defer span.End()

	query, err := h.daysQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.intel.Injuries(ctx, query.Days))
}
