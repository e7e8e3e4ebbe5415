package httpapi

import (
	"net/http"
)

func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Rankings")
	defer span.End()

	count, err := queryInt(r, "count")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	withIntel, err := queryBool(r, "intel", true)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	query := rankingsQuery{
		PosType: queryStringDefault(r, "pos_type", "B"),
		Count:   count,
		Intel:   withIntel,
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.valuation.Rankings(ctx, query.PosType, query.Count, query.Intel)
	if err != nil {
		h.logger.WarnContext(ctx, "list rankings failed", "pos_type", query.PosType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Compare")
	defer span.End()

	query := compareQuery{
		Player1: queryString(r, "player1"),
		Player2: queryString(r, "player2"),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.valuation.Compare(ctx, query.Player1, query.Player2)
	if err != nil {
		h.logger.WarnContext(ctx, "compare players failed", "player1", query.Player1, "player2", query.Player2, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) Value(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Value")
	defer span.End()

	query := valueQuery{Name: queryString(r, "player_name", "name")}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.valuation.Value(ctx, query.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "value player failed", "name", query.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) GenerateRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateRankings")
	defer span.End()

	result, err := h.valuation.Generate(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "generate rankings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, result)
}

func (h *Handler) LatestRankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LatestRankings")
	defer span.End()

	snapshot, err := h.valuation.LatestSnapshot(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get latest rankings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, snapshot)
}
