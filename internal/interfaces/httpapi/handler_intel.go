package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
)

func (h *Handler) PlayerIntel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayerIntel")
	defer span.End()

	query := playerIntelQuery{
		Name:    queryString(r, "name"),
		Include: lowerAll(splitList(queryString(r, "include"))),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}
	sections, err := parseSections(query.Include)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	packet, err := h.intel.PlayerIntel(ctx, query.Name, sections)
	if err != nil {
		h.logger.WarnContext(ctx, "player intel failed", "name", query.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, packet)
}

func (h *Handler) BatchIntel(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BatchIntel")
	defer span.End()

	query := batchIntelQuery{
		Names:   splitList(queryString(r, "names")),
		Include: lowerAll(splitList(queryStringDefault(r, "include", string(intel.SectionStatcast)))),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}
	sections, err := parseSections(query.Include)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	packets, err := h.intel.BatchIntel(ctx, query.Names, sections)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch intel failed", "names", len(query.Names), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, packets)
}

func (h *Handler) Breakouts(w http.ResponseWriter, r *http.Request) {
	h.regression(w, r, "httpapi.Handler.Breakouts", h.intel.Breakouts)
}

func (h *Handler) Busts(w http.ResponseWriter, r *http.Request) {
	h.regression(w, r, "httpapi.Handler.Busts", h.intel.Busts)
}

func (h *Handler) regression(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	list func(ctx context.Context, posType string, count int) (intel.Candidates, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	count, err := queryInt(r, "count")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	query := regressionQuery{
		PosType: queryStringDefault(r, "pos_type", "B"),
		Count:   count,
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	candidates, err := list(ctx, query.PosType, query.Count)
	if err != nil {
		h.logger.WarnContext(ctx, "list regression candidates failed", "pos_type", query.PosType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, candidates)
}

func (h *Handler) RedditBuzz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RedditBuzz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.intel.RedditBuzz(ctx))
}

func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Trending")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.intel.Trending(ctx))
}

func (h *Handler) Prospects(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Prospects")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.intel.Prospects(ctx))
}

func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Transactions")
	defer span.End()

	query, err := h.daysQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.intel.Transactions(ctx, query.Days))
}

func (h *Handler) daysQuery(r *http.Request) (daysQuery, error) {
	days, err := queryInt(r, "days")
	if err != nil {
		return daysQuery{}, err
	}
	query := daysQuery{Days: days}
	if err := h.validateRequest(r.Context(), query); err != nil {
		return daysQuery{}, err
	}
	return query, nil
}
