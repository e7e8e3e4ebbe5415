package playerid

import "strings"

// Key is the table key for a display name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Identity is a display name resolved against the table.
type Identity struct {
	DisplayName    string `json:"display_name"`
	NormalizedName string `json:"normalized_name"`
	MLBID          *int64 `json:"mlb_id"`
}
