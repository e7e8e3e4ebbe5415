package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-baseball/internal/domain/intel"
	"github.com/riskibarqy/fantasy-baseball/internal/usecase"
)

const dateLayout = "2006-01-02"

type playerIntelQuery struct {
	Name    string   `validate:"required"`
	Include []string `validate:"dive,oneof=statcast trends context discipline"`
}

type batchIntelQuery struct {
	Names   []string `validate:"required,min=1,max=50,dive,required"`
	Include []string `validate:"dive,oneof=statcast trends context discipline"`
}

type regressionQuery struct {
	PosType string `validate:"required,oneof=B P b p"`
	Count   int    `validate:"gte=0,lte=200"`
}

type daysQuery struct {
	Days int `validate:"gte=0,lte=90"`
}

type rankingsQuery struct {
	PosType string `validate:"required,oneof=B P b p"`
	Count   int    `validate:"gte=0,lte=500"`
	Intel   bool
}

type compareQuery struct {
	Player1 string `validate:"required"`
	Player2 string `validate:"required"`
}

type valueQuery struct {
	Name string `validate:"required"`
}

type teamsQuery struct {
	Season int `validate:"omitempty,gte=1876,lte=2100"`
}

type scheduleQuery struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

// queryString returns the first non-empty trimmed value among keys.
func queryString(r *http.Request, keys ...string) string {
	values := r.URL.Query()
	for _, key := range keys {
		if v := strings.TrimSpace(values.Get(key)); v != "" {
			return v
		}
	}
	return ""
}

func queryStringDefault(r *http.Request, key, fallback string) string {
	if v := queryString(r, key); v != "" {
		return v
	}
	return fallback
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := queryString(r, key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

func queryBool(r *http.Request, key string, fallback bool) (bool, error) {
	raw := queryString(r, key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

// splitList splits a comma separated parameter, dropping blank items.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func parseSections(include []string) ([]intel.Section, error) {
	sections, err := intel.ParseSections(include)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return sections, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	day, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", usecase.ErrInvalidInput)
	}
	return day, nil
}
