package intel

import "strings"

// PlayerType selects leaderboards, stat groups and category sets.
type PlayerType string

const (
	Batter  PlayerType = "batter"
	Pitcher PlayerType = "pitcher"
)

// SavantType is the Savant leaderboard "type" parameter.
func (p PlayerType) SavantType() string {
	if p == Pitcher {
		return "pitcher"
	}
	return "batter"
}

// StatGroup is the MLB Stats API "group" parameter.
func (p PlayerType) StatGroup() string {
	if p == Pitcher {
		return "pitching"
	}
	return "hitting"
}

// PosType is the fantasy position-type code, B or P.
func (p PlayerType) PosType() string {
	if p == Pitcher {
		return "P"
	}
	return "B"
}

func (p PlayerType) String() string {
	return string(p)
}

// ParsePosType maps B/P (case-insensitive) to a player type.
func ParsePosType(raw string) (PlayerType, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "B":
		return Batter, true
	case "P":
		return Pitcher, true
	default:
		return "", false
	}
}

// PlayerTypeFromPosition classifies an MLB primary position abbreviation.
func PlayerTypeFromPosition(abbreviation string) PlayerType {
	switch strings.ToUpper(strings.TrimSpace(abbreviation)) {
	case "P", "SP", "RP":
		return Pitcher
	default:
		return Batter
	}
}
