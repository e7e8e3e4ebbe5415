package intel

import (
	"errors"
	"fmt"
	"strings"
)

type Section string

const (
	SectionStatcast   Section = "statcast"
	SectionTrends     Section = "trends"
	SectionContext    Section = "context"
	SectionDiscipline Section = "discipline"
)

var ErrUnknownSection = errors.New("unknown intel section")

// AllSections is the single-player default.
func AllSections() []Section {
	return []Section{SectionStatcast, SectionTrends, SectionContext, SectionDiscipline}
}

// BatchSections is the batch default; leaderboard data is bulk cached so
// statcast is cheap per player.
func BatchSections() []Section {
	return []Section{SectionStatcast}
}

// ParseSections accepts section names, ignoring blanks and duplicates.
func ParseSections(raw []string) ([]Section, error) {
	out := make([]Section, 0, len(raw))
	seen := make(map[Section]struct{}, len(raw))
	for _, item := range raw {
		s := Section(strings.ToLower(strings.TrimSpace(item)))
		if s == "" {
			continue
		}
		switch s {
		case SectionStatcast, SectionTrends, SectionContext, SectionDiscipline:
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownSection, item)
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// Packet is the intelligence bundle for one player. Each section is present
// only when requested and carries its own error when it degraded.
type Packet struct {
	Name       string             `json:"name"`
	MLBID      *int64             `json:"mlb_id"`
	Statcast   *StatcastSection   `json:"statcast,omitempty"`
	Trends     *TrendsSection     `json:"trends,omitempty"`
	Context    *ContextSection    `json:"context,omitempty"`
	Discipline *DisciplineSection `json:"discipline,omitempty"`
	Error      string             `json:"error,omitempty"`
}
